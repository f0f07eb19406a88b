package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/repository"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// LoginResult is returned to clients after a successful login. The role set
// is informational for UI purposes; only the token itself is trusted by
// downstream services.
type LoginResult struct {
	Token     string
	TokenType string
	Username  string
	Roles     []string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows. Credential checks
// happen here, on the issuing side only; it holds no mutable state beyond
// its collaborators.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.Codec
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, codec *auth.Codec, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, bcryptCost: bcryptCost, logger: logger}
}

// Register creates a new account with the USER role.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if len(username) < 3 || len(username) > 50 {
		return nil, apperrors.NewValidationError("username must be between 3 and 50 characters", nil)
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        []auth.Role{auth.RoleUser},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

// Login verifies a credential pair and issues a signed token carrying the
// account's current role snapshot. Unknown usernames and wrong passwords
// collapse into one outward signal.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, claims, err := s.codec.Issue(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user authenticated", zap.String("username", user.Username))
	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		Username:  user.Username,
		Roles:     auth.RoleNames(user.Roles),
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// SeedAdmin creates the initial ADMIN account from configuration. It no-ops
// when the values are absent or the account already exists.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.logger.Warn("admin seed skipped: ADMIN_USERNAME or ADMIN_PASSWORD not set")
		return nil
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Info("admin seed skipped: admin already exists")
		return nil
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        []auth.Role{auth.RoleAdmin},
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("admin seed completed: admin user created")
	return nil
}

// GetUser looks up an account by username.
func (s *AuthService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account by username.
func (s *AuthService) DeleteUser(ctx context.Context, username string) error {
	deleted, err := s.users.DeleteByUsername(ctx, username)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.NewNotFound("user", map[string]any{"username": username})
	}
	s.logger.Info("user deleted", zap.String("username", username))
	return nil
}

// ListUsernamesByRole pages through account names holding a role.
func (s *AuthService) ListUsernamesByRole(ctx context.Context, role auth.Role, limit, offset int) ([]string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.ListUsernamesByRole(ctx, role, limit, offset)
}
