package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = "id-" + user.Username
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *fakeUserRepo) DeleteByUsername(_ context.Context, username string) (int64, error) {
	if _, ok := r.users[username]; !ok {
		return 0, nil
	}
	delete(r.users, username)
	return 1, nil
}

func (r *fakeUserRepo) ListUsernamesByRole(_ context.Context, role auth.Role, limit, offset int) ([]string, error) {
	var names []string
	for name, user := range r.users {
		if user.HasRole(role) {
			names = append(names, name)
		}
	}
	return names, nil
}

func testCodec(t *testing.T) *auth.Codec {
	t.Helper()
	key, err := auth.LoadKey(base64.StdEncoding.EncodeToString(make([]byte, 32)))
	if err != nil {
		t.Fatalf("LoadKey() error: %v", err)
	}
	codec, err := auth.NewCodec(key, time.Hour)
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}
	return codec
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	return NewAuthService(repo, testCodec(t), bcrypt.MinCost, zap.NewNop()), repo
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %v, want DomainError with code %s", err, code)
	}
	if domainErr.Code != code {
		t.Fatalf("error code = %s, want %s", domainErr.Code, code)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "correct horse battery")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if !user.HasRole(auth.RoleUser) {
		t.Errorf("registered roles = %v, want USER", user.Roles)
	}
	if user.PasswordHash == "correct horse battery" {
		t.Error("password stored in clear")
	}

	result, err := svc.Login(ctx, "alice", "correct horse battery")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if result.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", result.TokenType)
	}

	claims, err := testCodec(t).Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate(issued token) error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("token subject = %q, want alice", claims.Subject)
	}
	if !claims.HasRole(auth.RoleUser) {
		t.Errorf("token roles = %v, want USER", claims.Roles)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ab", "long enough pw"); err == nil {
		t.Error("Register() accepted a two character username")
	}
	if _, err := svc.Register(ctx, "alice", "short"); err == nil {
		t.Error("Register() accepted a short password")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "long enough pw"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "another long pw")
	assertDomainCode(t, err, "CONFLICT")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "long enough pw"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	_, unknownErr := svc.Login(ctx, "nobody", "long enough pw")
	assertDomainCode(t, unknownErr, "UNAUTHORIZED")

	_, wrongPassErr := svc.Login(ctx, "alice", "wrong password!")
	assertDomainCode(t, wrongPassErr, "UNAUTHORIZED")

	// Unknown account and wrong password are indistinguishable to callers.
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Errorf("login failures differ: %q vs %q", unknownErr.Error(), wrongPassErr.Error())
	}
}

func TestSeedAdmin(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.SeedAdmin(ctx, "", ""); err != nil {
		t.Fatalf("SeedAdmin() with empty config error: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatal("SeedAdmin() created an account without configuration")
	}

	if err := svc.SeedAdmin(ctx, "root", "supersecretpw"); err != nil {
		t.Fatalf("SeedAdmin() error: %v", err)
	}
	admin, err := repo.GetByUsername(ctx, "root")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if !admin.HasRole(auth.RoleAdmin) {
		t.Errorf("admin roles = %v, want ADMIN", admin.Roles)
	}

	// Second seed is a no-op.
	if err := svc.SeedAdmin(ctx, "root", "otherpassword"); err != nil {
		t.Fatalf("SeedAdmin() rerun error: %v", err)
	}
	unchanged, _ := repo.GetByUsername(ctx, "root")
	if unchanged.PasswordHash != admin.PasswordHash {
		t.Error("SeedAdmin() rerun overwrote the existing account")
	}
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "long enough pw"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if err := svc.DeleteUser(ctx, "alice"); err != nil {
		t.Fatalf("DeleteUser() error: %v", err)
	}
	assertDomainCode(t, svc.DeleteUser(ctx, "alice"), "NOT_FOUND")
}
