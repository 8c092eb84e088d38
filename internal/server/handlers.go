package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/darkseeker/internal/catalog"
	"github.com/hyperjump/darkseeker/internal/search"
	"github.com/hyperjump/darkseeker/pkg/utils"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := search.ParseParams(r.URL.Query())
	page, err := s.engine.Search(r.Context(), query)
	if err != nil {
		s.respondEngineError(w, r, "search", err)
		return
	}
	s.respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.engine.Tags(r.Context())
	if err != nil {
		s.respondEngineError(w, r, "tags", err)
		return
	}
	s.respondJSON(w, http.StatusOK, tags)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Stats(r.Context())
	if err != nil {
		s.respondEngineError(w, r, "stats", err)
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.engine.Stats(r.Context()); errors.Is(err, catalog.ErrUnavailable) {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondEngineError maps engine errors to status codes: no catalog is 503, anything else 500.
func (s *Server) respondEngineError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger := utils.LoggerFromContext(r.Context())
	if errors.Is(err, catalog.ErrUnavailable) {
		logger.Warn(op+" without catalog", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	logger.Error(op+" failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
