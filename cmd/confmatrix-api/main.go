// Command confmatrix-api serves batch planning and experiment reports over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"confmatrix/internal/core/version"
	"confmatrix/internal/modkit/repokit"
	"confmatrix/internal/platform/config"
	"confmatrix/internal/platform/logger"
	phttp "confmatrix/internal/platform/net/http"
	"confmatrix/internal/platform/store"

	"confmatrix/internal/services/api"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	l := logger.Named(api.ServiceName)

	// backends are optional, each is enabled by its SERVICE_*_DBURL
	st, err := store.Open(ctx, store.FromEnv(root),
		store.WithLogger(*logger.Named("store")),
		store.WithClient(api.ServiceName, "api", version.Info("").Version),
	)
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// reads CORE_API_PORT and CORE_API_SHUTDOWN_GRACE
	srv := phttp.NewServer(root.Prefix("CORE_"), func(m *chi.Mux) {
		m.Use(chimw.Heartbeat("/ping"))
	})

	if _, err := api.Mount(srv.Router(), api.Options{Config: root, Store: st, Logger: l}); err != nil {
		l.Fatal().Err(err).Msg("api.Mount failed")
	}

	l.Info().Str("addr", srv.Addr()).Msg("listening")
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		stop()
		os.Exit(1)
	}
}
