package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/observability"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorTitles maps domain error codes to the title and remedial action of
// the error payload.
var errorTitles = map[string]struct {
	title  string
	action string
}{
	"VALIDATION_FAILED": {"Bad Request", "Check the request payload and retry"},
	"NOT_FOUND":         {"Resource not found", "Verify the identifier and retry"},
	"CONFLICT":          {"Conflict", "Resolve the conflicting state and retry"},
	"UNAUTHORIZED":      {"Unauthorized", "Provide valid authentication credentials"},
	"FORBIDDEN":         {"Forbidden", "Contact an administrator if access is required"},
	"INTERNAL_ERROR":    {"Internal Server Error", "Retry later or contact support"},
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}

				titles, ok := errorTitles[domainErr.Code]
				if !ok {
					titles = errorTitles["INTERNAL_ERROR"]
				}
				payload := auth.NewAPIError(
					domainErr.HTTPStatus,
					titles.title,
					domainErr.Message,
					titles.action,
					c.Path(),
					time.Now(),
				)
				c.Status(domainErr.HTTPStatus)
				err = c.JSON(payload)
			}
		}()
		return c.Next()
	}
}
