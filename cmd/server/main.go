package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/hello-playground/internal/greeting"
	"github.com/janisto/hello-playground/internal/http/health"
	"github.com/janisto/hello-playground/internal/http/v1/routes"
	"github.com/janisto/hello-playground/internal/platform/config"
	applog "github.com/janisto/hello-playground/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-playground/internal/platform/middleware"
	"github.com/janisto/hello-playground/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/api-docs"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load(Version)
	if err != nil {
		applog.LogFatal(context.Background(), "config load failed", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		applog.LogError(context.Background(), "server failed", err, zap.String("addr", cfg.Addr()))
		stop()
		os.Exit(1)
	}
}

// newRouter builds the chi router with the middleware stack, the health check and
// every Huma operation.
func newRouter(cfg config.Config, state greeting.State) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only run behind a proxy that sets it.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(cfg.Version))

	humaCfg := huma.DefaultConfig("Hello Playground API", cfg.Version)
	humaCfg.DocsPath = docsPath
	api := humachi.New(router, humaCfg)

	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, advertiseCBOR)

	routes.Register(api, state)
	return router
}

// advertiseCBOR documents application/cbor wherever an operation accepts or returns JSON.
func advertiseCBOR(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg config.Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg, greeting.NewState()),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr), zap.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	applog.LogInfo(context.Background(), "server exited")
	return nil
}
