package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	docscomponent "github.com/goliatone/go-viewkit/components/documents"
	searchcomponent "github.com/goliatone/go-viewkit/components/searchstring"
	"github.com/goliatone/go-viewkit/pkg/routing"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(state *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the filters and items endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if address == "" {
				address = state.cfg.Server.Address
			}

			router, err := state.router(cmd.Context())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, state.logger, address, router)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (defaults to server.address)")
	return cmd
}

// router builds the gorilla/mux router serving the components. Configured
// routes share the route table so generated URLs and served paths agree.
func (a *app) router(ctx context.Context) (*mux.Router, error) {
	router := mux.NewRouter()
	router.Use(requestLogger(a.logger))

	resolver := routing.NewMuxResolver(router)
	catalog, err := a.catalog()
	if err != nil {
		return nil, err
	}
	searchCfg, err := a.searchConfig(ctx)
	if err != nil {
		return nil, err
	}
	builder := a.filterBuilder(searchCfg, catalog, resolver)
	items, err := a.itemsRenderer(catalog, resolver)
	if err != nil {
		return nil, err
	}

	base := a.cfg.Server.BasePath
	filters := searchcomponent.New(
		searchcomponent.WithBuilder(builder),
		searchcomponent.WithDefaultLocale(a.cfg.Locale),
	)
	if _, err := filters.RegisterNamedRoute(router, base); err != nil {
		return nil, err
	}
	table := docscomponent.New(
		docscomponent.WithRenderer(items.AsComponent()),
		docscomponent.WithDefaultLocale(a.cfg.Locale),
	)
	if _, err := table.RegisterNamedRoute(router, base); err != nil {
		return nil, err
	}

	if err := routing.Register(router, a.cfg.Routes); err != nil {
		return nil, fmt.Errorf("viewkit: routes: %w", err)
	}
	a.logger.Debug().Strs("routes", resolver.Names()).Msg("routes registered")
	return router, nil
}

func serve(ctx context.Context, logger zerolog.Logger, address string, handler http.Handler) error {
	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", address).Msg("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info().Msg("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("viewkit: shutdown: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		// URL-only routes from the route table carry no handler.
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
