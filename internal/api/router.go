// api/router.go
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"refbooks/internal/refbook"
)

// NewRouter собирает gin.Engine со всеми маршрутами. metrics может быть nil.
func NewRouter(svc *refbook.Service, logger *slog.Logger, metrics *Metrics) *gin.Engine {
	r := gin.New()
	r.Use(RequestContext(logger), Recovery(), AccessLog())
	if metrics != nil {
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}
	r.NoRoute(notFound)

	r.GET("/healthz", HealthHandler(svc))

	books := r.Group("/refbooks")
	{
		books.GET("/", DirectoryListHandler(svc))
		books.GET("/:id/elements/", ElementListHandler(svc))
		books.GET("/:id/check_element/", CheckElementHandler(svc))
	}
	return r
}

// RunServer обслуживает addr до отмены ctx, затем плавно останавливается.
func RunServer(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
