package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errBadRequestBody  = errors.New("request body must be a JSON object with a query")
	errMissingQuery    = errors.New("query is required")
	errBadVariables    = errors.New("variables must be a JSON object")
	errInvalidToken    = errors.New("invalid or expired token")
	errMalformedHeader = errors.New("authorization header must use the Bearer scheme")
	errMutationOverGet = errors.New("mutations must be sent with POST")
)

type errorResponse struct {
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message"`
}

// graphQLErrorResponse mirrors the GraphQL result shape for requests that
// never reach the executor.
type graphQLErrorResponse struct {
	Errors []errorResponse `json:"errors"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	return responder{logger: defaultLogger(logger)}
}

func (r responder) writeError(c *gin.Context, status int, code string, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
	}
	r.loggerFor(c).WarnContext(c.Request.Context(), "request rejected", "status", status, "error", err)
	c.AbortWithStatusJSON(status, graphQLErrorResponse{
		Errors: []errorResponse{{ErrorCode: code, Message: message}},
	})
}

func (r responder) loggerFor(c *gin.Context) *slog.Logger {
	if logger := LoggerFromContext(c.Request.Context()); logger != nil {
		return logger
	}
	return r.logger
}
