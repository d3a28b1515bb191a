// Package rateserver exposes the static rate table over HTTP in the same
// shape the live rate source reads, so the live variant can run offline.
package rateserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jask/tickrate/internal/rates"
)

type latestResponse struct {
	Base  string                 `json:"base"`
	Date  string                 `json:"date"`
	Rates map[string]json.Number `json:"rates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type server struct {
	table  *rates.Static
	logger *slog.Logger
	now    func() time.Time
}

// New returns a router serving GET /latest/{base} and GET /healthz.
func New(table *rates.Static, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &server{table: table, logger: logger, now: time.Now}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/latest/{base}", s.latest)
	return r
}

func (s *server) latest(w http.ResponseWriter, r *http.Request) {
	base := rates.Normalize(chi.URLParam(r, "base"))
	if err := rates.ValidateCode(base); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	quotes, ok := s.table.Quotes(base)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no rates for " + base})
		return
	}
	out := make(map[string]json.Number, len(quotes))
	for code, v := range quotes {
		out[code] = json.Number(v.String())
	}
	writeJSON(w, http.StatusOK, latestResponse{
		Base:  base,
		Date:  s.now().UTC().Format("2006-01-02"),
		Rates: out,
	})
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
