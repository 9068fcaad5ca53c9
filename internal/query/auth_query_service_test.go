package query

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/middleware"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/utils"
)

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) Create(u *models.User) error { return nil }

func (f *fakeUserStore) GetByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserStore) Update(u *models.User) error { return nil }

func (f *fakeUserStore) UpdatePassword(id int64, hash string) error { return nil }

func (f *fakeUserStore) Delete(id int64) error { return nil }

func (f *fakeUserStore) EmailInUse(string, int64) (bool, error) { return false, nil }

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)
	store := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleAdmin, Email: "root@x.com", PasswordHash: hash},
	}}
	svc := NewAuthQueryService(store, time.Hour)

	token, err := svc.Login(cqrs.LoginCommand{Email: "root@x.com", Password: "secret"})
	require.NoError(t, err)

	// The token must verify against the same secret the auth middleware
	// uses, with the caller's identity in the claims.
	claims := &middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return middleware.JWTSecret(), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.Login(cqrs.LoginCommand{Email: "root@x.com", Password: "wrong"})
	assert.Error(t, err)
}

func TestRefreshTokenRereadsUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)
	store := &fakeUserStore{users: map[int64]*models.User{
		2: {ID: 2, Role: models.RoleUser, Email: "bob@x.com", PasswordHash: hash},
	}}
	svc := NewAuthQueryService(store, time.Hour)

	token, err := svc.Login(cqrs.LoginCommand{Email: "bob@x.com", Password: "secret"})
	require.NoError(t, err)

	// Role changes land in the refreshed token.
	store.users[2].Role = models.RoleAdmin
	refreshed, err := svc.RefreshToken(cqrs.RefreshTokenCommand{Token: token})
	require.NoError(t, err)

	claims := &middleware.Claims{}
	_, err = jwt.ParseWithClaims(refreshed, claims, func(*jwt.Token) (any, error) {
		return middleware.JWTSecret(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// A deleted user cannot refresh.
	delete(store.users, 2)
	_, err = svc.RefreshToken(cqrs.RefreshTokenCommand{Token: token})
	assert.Error(t, err)
}
