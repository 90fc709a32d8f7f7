package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	charthandlers "github.com/vedic-tools/jyotish-atlas/pkg/handlers/chart"
	profilehandlers "github.com/vedic-tools/jyotish-atlas/pkg/handlers/profile"
	transithandlers "github.com/vedic-tools/jyotish-atlas/pkg/handlers/transit"
	jyotishmiddleware "github.com/vedic-tools/jyotish-atlas/pkg/server/middleware"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/dasha"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/profile"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/transit"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/history"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Dasha    dasha.Service
	Transits transit.Service
	Profiles profile.Registry
	History  history.Recorder
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	deps := config.Dependencies
	chartHandler := charthandlers.NewHandler(deps.Dasha, deps.Profiles)
	transitHandler := transithandlers.NewHandler(deps.Transits)
	profileHandler := profilehandlers.NewHandler(deps.Profiles, deps.History)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(jyotishmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/nakshatra", chartHandler.GetNakshatra)
		r.Post("/dasha", chartHandler.CalculateDasha)
		r.Post("/transits/sign-changes", transitHandler.SignChanges)
		r.Get("/profiles", profileHandler.ListProfiles)
		r.Get("/history", profileHandler.ListHistory)
	})

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Handler exposes the configured router.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}
