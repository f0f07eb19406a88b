package dto

import (
	"time"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/service"
)

// AuthRequest payload for login and registration.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and its metadata.
type AuthResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse exposes a user without credential material.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUser maps a user to its response payload.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Roles:     auth.RoleNames(user.Roles),
		CreatedAt: user.CreatedAt,
	}
}

// FromLoginResult maps a login outcome to the response payload.
func FromLoginResult(result *service.LoginResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		TokenType: result.TokenType,
		Username:  result.Username,
		Roles:     result.Roles,
		ExpiresAt: result.ExpiresAt,
	}
}
