// Package server exposes the stored series and computed analytics over a
// JSON HTTP API.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"finsight/internal/config"
	"finsight/internal/metrics"
	"finsight/internal/model"
	"finsight/internal/series"
	"finsight/internal/store"
)

// Server serves the read-only analytics API.
type Server struct {
	Store *store.Store
	Cfg   *config.Config
}

// New creates a Server backed by the given store and configuration.
func New(st *store.Store, cfg *config.Config) *Server {
	return &Server{Store: st, Cfg: cfg}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/symbols", s.instrument("/api/v1/symbols", s.handleSymbols))
	mux.HandleFunc("/api/v1/prices", s.instrument("/api/v1/prices", s.handlePrices))
	mux.HandleFunc("/api/v1/indicators", s.instrument("/api/v1/indicators", s.handleIndicators))
	mux.HandleFunc("/api/v1/risk", s.instrument("/api/v1/risk", s.handleRisk))
	mux.HandleFunc("/api/v1/analysis", s.instrument("/api/v1/analysis", s.handleAnalysis))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// statusRecorder captures the response code for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(path string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		h(rec, r)
		metrics.HTTPRequests.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
		log.Printf("[INFO] %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSymbols(w http.ResponseWriter, _ *http.Request) {
	symbols, err := s.Store.Symbols()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbols": symbols})
}

// loadSeries resolves the symbol query parameter and loads its price series.
// It writes the error response itself and returns nil when the request
// cannot proceed.
func (s *Server) loadSeries(w http.ResponseWriter, r *http.Request, limit int) *model.PriceSeries {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeErrorMsg(w, http.StatusBadRequest, "missing symbol parameter")
		return nil
	}
	prices, err := s.Store.PriceSeries(symbol, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil
	}
	if prices.Len() == 0 {
		writeErrorMsg(w, http.StatusNotFound, "no data for symbol "+symbol)
		return nil
	}
	return prices
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeErrorMsg(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = n
	}
	prices := s.loadSeries(w, r, limit)
	if prices == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol": prices.Symbol,
		"points": prices.Points,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeErrorMsg(w, status, err.Error())
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// seriesJSON converts a derived series to a JSON-friendly slice where absent
// positions become null.
func seriesJSON(s series.Series) []*float64 {
	out := make([]*float64, len(s))
	for i, v := range s {
		if series.Present(v) {
			f := v
			out[i] = &f
		}
	}
	return out
}
