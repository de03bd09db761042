package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/zvrva/journeys/api"
	"github.com/zvrva/journeys/config"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, handler *api.JourneyHandler) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, handler),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, handler *api.JourneyHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	handler.Register(router.Group("/"))

	if cfg.HTTP.SwaggerFile != "" {
		router.GET("/swagger/doc.json", func(c *gin.Context) {
			c.File(cfg.HTTP.SwaggerFile)
		})
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		)))
	}

	return router
}
