package http

import (
	"log/slog"
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type RouterConfig struct {
	GraphQL  *GraphQLHandler
	Health   *HealthHandler
	Metrics  http.Handler
	Verifier TokenVerifier

	// Playground mounts the GraphQL playground at /playground.
	Playground bool
	// CORSOrigins lists the allowed origins; empty disables CORS headers.
	CORSOrigins []string

	Logger *slog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := defaultLogger(cfg.Logger)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(Recovery(logger), RequestLogger(logger))

	if cfg.Health != nil {
		engine.GET("/healthz", cfg.Health.Check)
	}
	if cfg.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	if cfg.GraphQL != nil {
		api := engine.Group("/graphql", Authenticate(cfg.Verifier, logger))
		api.POST("", cfg.GraphQL.Serve)
		api.GET("", cfg.GraphQL.Serve)

		if cfg.Playground {
			engine.GET("/playground", gin.WrapH(playground.Handler("Room booking", "/graphql")))
		}
	}

	if len(cfg.CORSOrigins) == 0 {
		return engine
	}
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	}).Handler(engine)
}
