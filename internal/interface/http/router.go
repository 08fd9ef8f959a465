package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pikacalc/internal/infra/config"
)

// Stream routes hold the connection open for the whole background load and are never retried.
const (
	streamPath    = "/api/v1/pokemon/remaining/stream"
	websocketPath = "/api/v1/pokemon/remaining/ws"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/types", handler.ListTypes)
		api.GET("/natures", handler.ListNatures)
		api.GET("/spreads", handler.ListSpreads)
	}

	// Everything below may resolve species upstream.
	remote := api.Group("", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		remote.GET("/matchups", handler.Matchups)
		remote.POST("/stats", handler.CalculateStats)
		remote.POST("/stats/target-level", handler.TargetLevel)

		remote.GET("/pokemon", handler.InitialPokemon)
		remote.GET("/pokemon/search", handler.SearchPokemon)
		remote.GET("/pokemon/remaining", handler.RemainingPokemon)
		remote.GET("/pokemon/remaining/stream", handler.StreamRemainingPokemon)
		remote.GET("/pokemon/remaining/ws", handler.WatchRemainingPokemon)
		remote.GET("/pokemon/:ref", handler.PokemonDetails)
		remote.PUT("/session/selected", handler.SelectPokemon)
	}

	sess := api.Group("/session")
	{
		sess.GET("/selected", handler.SelectedPokemon)
		sess.GET("/build", handler.CurrentBuild)
		sess.PUT("/build", handler.UpdateBuild)
		sess.DELETE("/build", handler.ResetBuild)
		sess.GET("/builds", handler.ListBuilds)
		sess.POST("/builds", handler.SaveBuild)
		sess.DELETE("/builds/:id", handler.DeleteBuild)
		sess.GET("/teams", handler.ListTeams)
		sess.POST("/teams", handler.CreateTeam)
		sess.DELETE("/teams/:id", handler.DeleteTeam)
		sess.PUT("/teams/:id/select", handler.SelectTeam)
		sess.PUT("/teams/:id/members/:position", handler.PlaceTeamMember)
		sess.GET("/settings", handler.Settings)
		sess.PUT("/settings", handler.UpdateSettings)
	}

	retryCfg := cfg.HTTP.Retry
	retryCfg.Exclude = append(append([]string(nil), retryCfg.Exclude...), streamPath, websocketPath)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, retryCfg, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
