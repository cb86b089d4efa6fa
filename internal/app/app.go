package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rest-core/restcore/internal/config"
	"github.com/rest-core/restcore/internal/middleware"
	"github.com/rest-core/restcore/internal/ratelimit"
	"github.com/rest-core/restcore/internal/render"
	log "github.com/sirupsen/logrus"
)

// RunServer wires the store manager, throttle inspector, enforcement gate
// and middleware chain, registers the demo routes, and serves until ctx is
// cancelled.
func RunServer(ctx context.Context, cfg config.Config) error {
	store := ratelimit.NewStoreManager(func() ratelimit.StoreConfig {
		return ratelimit.StoreConfig{
			RedisEnabled:  cfg.Redis.Enabled,
			RedisAddr:     cfg.Redis.Addr,
			RedisPassword: cfg.Redis.Password,
			RedisDB:       cfg.Redis.DB,
			RedisPrefix:   cfg.Redis.Prefix,
		}
	}, nil, nil)

	inspector := ratelimit.NewInspector(store)
	gate := ratelimit.NewGate(store)
	renderer := render.NewRenderer(inspector, cfg.Server.DocumentationURL)

	defaultScopes := ratelimit.BuildScopes(cfg.Throttles.DefaultScopes, cfg.Throttles.Rates)
	anonScopes := ratelimit.BuildScopes([]string{ratelimit.ScopeAnon}, cfg.Throttles.Rates)

	engine := NewEngine(renderer, gate, defaultScopes, anonScopes)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
			log.WithError(errShutdown).Warn("server shutdown")
		}
	}()

	log.WithField("port", cfg.Server.Port).Info("server listening")
	if errServe := srv.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
		return errServe
	}
	return nil
}

// NewEngine builds the gin engine with the standard middleware chain and the
// demo routes, in order: recovery, timing, default scopes, error handling.
func NewEngine(renderer *render.Renderer, gate *ratelimit.Gate, defaultScopes, anonScopes []ratelimit.Scope) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.ResponseTime(),
		middleware.DefaultScopes(defaultScopes),
		middleware.ErrorHandler(renderer, gate, anonScopes),
	)

	notes := NewNoteHandler(renderer)
	engine.GET("/healthz", func(c *gin.Context) {
		renderer.Success(c, http.StatusOK, "", gin.H{"status": "ok"})
	})
	api := engine.Group("/api")
	{
		api.GET("/notes", notes.List)
		api.POST("/notes", notes.Create)
		api.GET("/notes/:id", notes.Get)
		api.DELETE("/notes/:id", notes.Delete)
	}
	return engine
}
