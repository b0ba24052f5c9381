// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

const maxBodyBytes = 1 << 20

// NewHTTPHandler exposes registry over HTTP:
//
//	GET  /tools         list tools
//	POST /tools/{name}  call a tool; the body holds its arguments
//
// Tool results are always 200 with the tool's document, including error
// documents; only unknown tools (404) and unreadable bodies (400) use other
// status codes.
func NewHTTPHandler(registry *Registry, logger zerolog.Logger) http.Handler {
	logger = logger.With().Str("component", "http").Logger()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/tools", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, registry.List())
	})

	r.Post("/tools/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		if _, ok := registry.Lookup(name); !ok {
			writeJSON(w, http.StatusNotFound, types.NewErrorDocument(fmt.Sprintf("unknown tool: %s", name)))
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, types.NewErrorDocument(fmt.Sprintf("reading request body: %v", err)))
			return
		}
		writeJSON(w, http.StatusOK, invoke(req.Context(), registry, logger, name, body))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// ServeHTTP listens on addr and serves the registry until ctx is done, then
// shuts down gracefully.
func ServeHTTP(ctx context.Context, addr string, registry *Registry, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(registry, logger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("serving tools over HTTP")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
