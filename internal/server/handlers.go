package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/fitclub/internal/catalog"
	"github.com/claude/fitclub/internal/models"
	"github.com/claude/fitclub/internal/similar"
	"github.com/claude/fitclub/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxCatalogBytes bounds an uploaded catalog.
const maxCatalogBytes = 32 << 20

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	page, err := s.store.SearchExercises(r.Context(), parseQuery(r, s.pageSize))
	if err != nil {
		s.log.Error("search exercises", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	ex, ok := s.exerciseForJSON(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

// similarResponse is the JSON form of both related collections.
type similarResponse struct {
	Target    collectionResponse `json:"target"`
	Equipment collectionResponse `json:"equipment"`
}

type collectionResponse struct {
	Status string            `json:"status"`
	Items  []models.Exercise `json:"items"`
	Reason string            `json:"reason,omitempty"`
}

func toCollectionResponse(c models.ExerciseCollection) collectionResponse {
	items := c.Items
	if items == nil {
		items = []models.Exercise{}
	}
	return collectionResponse{Status: c.Status.String(), Items: items, Reason: c.Reason}
}

func (s *Server) handleSimilarExercises(w http.ResponseWriter, r *http.Request) {
	ex, ok := s.exerciseForJSON(w, r)
	if !ok {
		return
	}

	// API clients get complete collections rather than deferred ones.
	writeJSON(w, http.StatusOK, similarResponse{
		Target:    toCollectionResponse(s.finder.FindKind(r.Context(), *ex, similar.KindTarget)),
		Equipment: toCollectionResponse(s.finder.FindKind(r.Context(), *ex, similar.KindEquipment)),
	})
}

func (s *Server) handleBodyParts(w http.ResponseWriter, r *http.Request) {
	parts, err := s.store.ListBodyParts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, append([]string{"all"}, parts...))
}

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := s.store.ListTargets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, targets)
}

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := s.store.ListEquipment(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, equipment)
}

func (s *Server) handleCatalogUpload(w http.ResponseWriter, r *http.Request) {
	if s.importer == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog import is disabled")
		return
	}

	format := catalog.FormatFromContentType(r.Header.Get("Content-Type"))
	body := http.MaxBytesReader(w, r.Body, maxCatalogBytes)

	stats, err := s.importer.ImportReader(r.Context(), body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "catalog too large")
			return
		}
		s.log.Error("catalog upload", "format", format.String(), "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// exerciseForJSON loads the exercise named by the id URL parameter, writing
// the error response itself when that fails.
func (s *Server) exerciseForJSON(w http.ResponseWriter, r *http.Request) (*models.Exercise, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return nil, false
	}
	ex, err := s.store.GetExercise(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "exercise not found")
		return nil, false
	}
	if err != nil {
		s.log.Error("get exercise", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return ex, true
}

// parseQuery reads search parameters shared by the home page and the API.
func parseQuery(r *http.Request, defaultPageSize int) models.ExerciseQuery {
	v := r.URL.Query()
	q := models.ExerciseQuery{
		Search:    v.Get("q"),
		BodyPart:  v.Get("bodyPart"),
		Target:    v.Get("target"),
		Equipment: v.Get("equipment"),
		PageSize:  defaultPageSize,
	}
	if n, err := strconv.Atoi(v.Get("page")); err == nil {
		q.Page = n
	}
	if n, err := strconv.Atoi(v.Get("pageSize")); err == nil {
		q.PageSize = n
	}
	return q.Normalize()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
