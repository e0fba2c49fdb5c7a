package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/example/roombooking/internal/application"
	"github.com/example/roombooking/internal/auth"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// TokenVerifier turns a bearer token into a principal.
type TokenVerifier interface {
	Verify(token string) (application.Principal, error)
}

// Authenticate attaches the bearer token's principal to the request context.
// Requests without an Authorization header continue anonymously.
func Authenticate(verifier TokenVerifier, logger *slog.Logger) gin.HandlerFunc {
	responder := newResponder(logger)

	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || verifier == nil {
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			responder.writeError(c, http.StatusUnauthorized, "UNAUTHENTICATED", errMalformedHeader)
			return
		}

		principal, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			responder.loggerFor(c).InfoContext(c.Request.Context(), "token rejected", "error", err)
			responder.writeError(c, http.StatusUnauthorized, "UNAUTHENTICATED", errInvalidToken)
			return
		}

		ctx := auth.ContextWithPrincipal(c.Request.Context(), principal)
		if logger := LoggerFromContext(ctx); logger != nil {
			ctx = ContextWithLogger(ctx, logger.With("principal_id", principal.UserID))
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger tags each request with an identifier and logs its outcome.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	base = defaultLogger(base)

	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		logger := base.With(
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		ctx := ContextWithLogger(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		logger.DebugContext(ctx, "request started")
		c.Next()
		logger.InfoContext(ctx, "request completed",
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Recovery converts panics into a 500 response.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	responder := newResponder(logger)

	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		responder.loggerFor(c).ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered)
		responder.writeError(c, http.StatusInternalServerError, "INTERNAL", nil)
	})
}
