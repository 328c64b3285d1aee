package auth

import (
	"context"
	"testing"

	"github.com/gestipay/paie-backend-go/internal/domain/auth"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/gestipay/paie-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users[u.Email] = u
	return u, nil
}

func strPtr(s string) *string { return &s }

func newService(t *testing.T, users ...user.User) auth.AuthService {
	t.Helper()
	repo := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "1h"))
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func TestLogin(t *testing.T) {
	svc := newService(t, user.User{
		ID:           "u1",
		Email:        "admin@example.com",
		PasswordHash: hashOf(t, "secret123"),
		Role:         user.RoleAdminEntreprise,
		EntrepriseID: strPtr("ent-1"),
		Actif:        true,
	})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "ADMIN_ENTREPRISE", resp.Role)
	assert.Greater(t, resp.ExpiresAt, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newService(t, user.User{
		ID:           "u1",
		Email:        "admin@example.com",
		PasswordHash: hashOf(t, "secret123"),
		Role:         user.RoleAdminEntreprise,
		Actif:        true,
	})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc := newService(t, user.User{
		ID:           "u1",
		Email:        "admin@example.com",
		PasswordHash: hashOf(t, "secret123"),
		Role:         user.RoleAdminEntreprise,
		Actif:        false,
	})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
}

func TestLoginValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "password")
}
