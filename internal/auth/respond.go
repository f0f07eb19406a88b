package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// timestampLayout matches the error payload format both services expose.
const timestampLayout = "02-01-2006 15:04:05"

// APIError is the uniform error payload for rejected requests. It never
// carries credentials, token material or internal error detail.
type APIError struct {
	Status      int    `json:"status"`
	ErrorTitle  string `json:"errorTitle"`
	Message     string `json:"message"`
	Action      string `json:"action"`
	RequestPath string `json:"requestPath"`
	Timestamp   string `json:"timestamp"`
}

// NewAPIError builds the payload from its inputs alone.
func NewAPIError(status int, title, message, action, path string, now time.Time) APIError {
	return APIError{
		Status:      status,
		ErrorTitle:  title,
		Message:     message,
		Action:      action,
		RequestPath: "uri=" + path,
		Timestamp:   now.Format(timestampLayout),
	}
}

// Unauthenticated writes the "authentication required" rejection. It is the
// single outward signal for every request the policy refuses for lack of an
// identity, whatever the underlying validation failure was.
func Unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(NewAPIError(
		fiber.StatusUnauthorized,
		"Unauthorized",
		"Authentication required to access this resource",
		"Provide valid authentication credentials",
		c.Path(),
		time.Now(),
	))
}

// Forbidden writes the "insufficient permission" rejection for requests that
// carry a valid identity lacking the required role.
func Forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(NewAPIError(
		fiber.StatusForbidden,
		"Forbidden",
		"Access denied - insufficient permissions",
		"Contact an administrator if access is required",
		c.Path(),
		time.Now(),
	))
}
