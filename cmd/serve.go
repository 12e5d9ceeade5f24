package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	boardapi "forum/pkg/board/api"
	. "forum/pkg/common"
	"forum/pkg/logger"
	"forum/pkg/middleware"
	userapi "forum/pkg/user/api"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the board HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	a, err := setup(ctx, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer a.Close()

	userHandler := userapi.NewUserHanler(a.users, a.sessions)
	boardHandler := boardapi.NewBoardHandler(a.board)

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteMsg(w, "ok", http.StatusOK)
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", userHandler.Register).Methods("POST")
	api.HandleFunc("/login", userHandler.LogIn).Methods("POST")
	boardHandler.Routes(api)

	logMiddleware := middleware.NewLoggingMiddleware(logger.Log(ctx))
	r.Use(logMiddleware.SetupTracing)
	r.Use(logMiddleware.SetupLogging)
	r.Use(logMiddleware.AccessLog)

	auth := middleware.NewAuthMiddleware(a.sessions, a.users)
	api.Use(auth.Middleware)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Log(ctx).Infof("serving at %s", a.cfg.HTTPAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Log(ctx).Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
