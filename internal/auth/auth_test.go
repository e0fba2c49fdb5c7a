package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roombooking/internal/application"
	"github.com/example/roombooking/internal/auth"
)

func TestTokenVerifier(t *testing.T) {
	verifier := auth.NewTokenVerifier("s3cret", time.Minute)

	token, err := verifier.Sign(auth.Claims{
		Email: "ada@example.com",
		Roles: []string{"Admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)

	principal, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-7", principal.UserID)
	assert.Equal(t, "ada@example.com", principal.Email)
	assert.True(t, principal.HasRole("admin"))

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other, err := auth.NewTokenVerifier("other", 0).Sign(auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-7"},
		})
		require.NoError(t, err)
		_, err = verifier.Verify(other)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired, err := verifier.Sign(auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}})
		require.NoError(t, err)
		_, err = verifier.Verify(expired)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects tokens without a subject", func(t *testing.T) {
		anonymous, err := verifier.Sign(auth.Claims{Roles: []string{"Admin"}})
		require.NoError(t, err)
		_, err = verifier.Verify(anonymous)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := verifier.Verify("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestRequire(t *testing.T) {
	_, err := auth.Require(context.Background(), application.RoleAdmin)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	viewer := auth.ContextWithPrincipal(context.Background(), application.Principal{UserID: "u1", Roles: []string{"Default User"}})
	_, err = auth.Require(viewer, application.RoleAdmin)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	admin := auth.ContextWithPrincipal(context.Background(), application.Principal{UserID: "u2", Roles: []string{"Admin"}})
	principal, err := auth.Require(admin, application.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "u2", principal.UserID)
}
