// Package main is the entry point for the reports gateway service.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/google/uuid"

	"github.com/sistema-informes/reports-gateway/graph"
	"github.com/sistema-informes/reports-gateway/internal/auth"
	"github.com/sistema-informes/reports-gateway/internal/config"
	"github.com/sistema-informes/reports-gateway/internal/source"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	// Load configuration
	cfg := config.Load()

	// Source client for the REST reports backend
	src := source.NewClient(cfg.RestBaseURL, cfg.RestToken, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, nil)

	// Revocation cache: synced from the auth service on an interval, checked
	// locally per request.
	revoked := auth.NewRevocations(cfg.AuthServiceURL, time.Duration(cfg.RevokedSyncSeconds)*time.Second, nil)
	revoked.Start(ctx)
	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTAlgorithm, revoked)

	// GraphQL server
	resolver := graph.NewResolver(src)
	srv := handler.NewDefaultServer(graph.NewExecutableSchema(graph.Config{Resolvers: resolver}))

	mux := http.NewServeMux()
	mux.Handle("/", playground.Handler("GraphQL Playground", "/graphql"))
	mux.Handle("/graphql", requestLogger(auth.Middleware(cfg.RequireAuth, verifier)(srv)))
	mux.HandleFunc("/health", healthHandler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			slog.Error("error shutting down server", "error", err)
		}
	}()

	slog.Info("reports gateway listening", "port", cfg.Port, "backend", cfg.RestBaseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// requestLogger tags each query with a correlation id and logs its duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("query handled",
			"request_id", requestID,
			"remote", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"0.1.0"}`))
}
