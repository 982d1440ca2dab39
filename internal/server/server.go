// Package server exposes the admin HTTP API over a catalog store.
//
// The surface is deliberately small: listing is public, mutations are
// gated by a static bearer token, and every response carries a JSON
// envelope.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

type Server struct {
	store   catalog.Store
	token   string
	version string
	log     *zap.Logger
}

func New(store catalog.Store, token, version string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: store, token: token, version: version, log: log}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects", s.handleList)
	mux.HandleFunc("POST /api/projects", s.requireToken(s.handleCreate))
	mux.HandleFunc("DELETE /api/projects/{title}", s.requireToken(s.handleDelete))
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return s.logRequests(mux)
}

// ListenAndServe runs the API until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("admin API listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.ListAll()
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"projects": cat,
		"count":    len(cat),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var c catalog.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	rec, err := s.store.Append(c)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"project":       rec,
		"totalProjects": s.total(),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")

	rec, err := s.store.DeleteByTitle(title)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"deletedProject": rec,
		"totalProjects":  s.total(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   s.version,
	})
}

// total re-reads the catalog size after a mutation. Best effort: a read
// failure here does not undo a committed write, so it only logs.
func (s *Server) total() int {
	cat, err := s.store.ListAll()
	if err != nil {
		s.log.Warn("counting catalog after mutation", zap.Error(err))
		return 0
	}
	return len(cat)
}

// writeStoreError maps the catalog error taxonomy onto HTTP statuses.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrDuplicateTitle):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("store operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
