package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"github.com/example/roombooking/internal/graph"
)

// GraphQLHandler executes GraphQL requests against a schema.
type GraphQLHandler struct {
	schema    graphql.Schema
	logger    *slog.Logger
	responder responder
}

func NewGraphQLHandler(schema graphql.Schema, logger *slog.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema:    schema,
		logger:    defaultLogger(logger),
		responder: newResponder(logger),
	}
}

// Serve handles both POST bodies and GET query strings. GET only runs
// queries.
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req graph.Request
	switch c.Request.Method {
	case http.MethodGet:
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				h.responder.writeError(c, http.StatusBadRequest, "BAD_REQUEST", errBadVariables)
				return
			}
		}
	default:
		if err := c.ShouldBindJSON(&req); err != nil {
			h.responder.writeError(c, http.StatusBadRequest, "BAD_REQUEST", errBadRequestBody)
			return
		}
	}

	if strings.TrimSpace(req.Query) == "" {
		h.responder.writeError(c, http.StatusBadRequest, "BAD_REQUEST", errMissingQuery)
		return
	}
	if c.Request.Method == http.MethodGet && graph.IsMutation(req) {
		c.Header("Allow", http.MethodPost)
		h.responder.writeError(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", errMutationOverGet)
		return
	}

	ctx := c.Request.Context()
	result := graph.Execute(ctx, h.schema, req)
	if result.HasErrors() {
		handlerLogger(ctx, h.logger, "GraphQLHandler", "operation", req.OperationName).
			DebugContext(ctx, "graphql request returned errors", "error_count", len(result.Errors))
	}
	c.JSON(http.StatusOK, result)
}
