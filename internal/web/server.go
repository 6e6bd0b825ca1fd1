package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwiesner/snipstash/internal/annotate"
	"github.com/mwiesner/snipstash/internal/config"
	"github.com/mwiesner/snipstash/internal/library"
)

// NewServer creates and configures the HTTP JSON API server.
func NewServer(lib *library.Library, annotator *annotate.Client, cfg *config.Config, log zerolog.Logger) *http.Server {
	h := &Handlers{
		lib:       lib,
		annotator: annotator,
		log:       log.With().Str("component", "web").Logger(),
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("POST /api/annotate", h.HandleAnnotate)

	mux.HandleFunc("GET /api/snippets", h.HandleQuery)
	mux.HandleFunc("POST /api/snippets", h.HandleCreate)
	mux.HandleFunc("GET /api/snippets/{id}", h.HandleGet)
	mux.HandleFunc("PATCH /api/snippets/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /api/snippets/{id}", h.HandleDelete)
	mux.HandleFunc("POST /api/snippets/{id}/favorite", h.HandleToggleFavorite)
	mux.HandleFunc("PUT /api/snippets/{id}/folder", h.HandleAssignFolder)

	mux.HandleFunc("GET /api/folders", h.HandleListFolders)
	mux.HandleFunc("POST /api/folders", h.HandleCreateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.HandleDeleteFolder)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler: securityHeaders(mux),
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, log zerolog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info().Str("addr", srv.Addr).Msg("snipstash API listening")

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn().Msg("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
