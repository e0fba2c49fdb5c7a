// Package auth verifies bearer tokens and gates operations on caller roles.
// Tokens are issued elsewhere; this package only checks them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/roombooking/internal/application"
)

var (
	// ErrUnauthenticated is returned when no principal is attached to the request.
	ErrUnauthenticated = errors.New("auth: authentication required")
	// ErrForbidden is returned when the principal lacks every required role.
	ErrForbidden = errors.New("auth: insufficient role")
	// ErrInvalidToken is returned for malformed, expired, or badly signed tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims is the JWT payload understood by the verifier.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 tokens signed with a shared secret.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenVerifier returns a verifier for the given secret.
func NewTokenVerifier(secret string, leeway time.Duration) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(leeway),
		),
	}
}

// Verify parses token and converts its claims into a principal.
func (v *TokenVerifier) Verify(token string) (application.Principal, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return application.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return application.Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return application.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Roles:  claims.Roles,
	}, nil
}

// Sign issues a token for claims. It exists for tests and local tooling.
func (v *TokenVerifier) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

type principalKey struct{}

// ContextWithPrincipal attaches the caller identity to ctx.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext returns the caller identity, if any.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	if ctx == nil {
		return application.Principal{}, false
	}
	principal, ok := ctx.Value(principalKey{}).(application.Principal)
	return principal, ok
}

// Require succeeds when the caller holds at least one of roles.
func Require(ctx context.Context, roles ...string) (application.Principal, error) {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return application.Principal{}, ErrUnauthenticated
	}
	for _, role := range roles {
		if principal.HasRole(role) {
			return principal, nil
		}
	}
	return principal, fmt.Errorf("%w: requires one of %s", ErrForbidden, strings.Join(roles, ", "))
}
