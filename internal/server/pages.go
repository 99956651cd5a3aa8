package server

import (
	"errors"
	"net/http"

	"github.com/claude/fitclub/internal/models"
	"github.com/claude/fitclub/internal/similar"
	"github.com/claude/fitclub/internal/storage"
	"github.com/claude/fitclub/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	g "maragu.dev/gomponents"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r, s.pageSize)

	results, err := s.store.SearchExercises(r.Context(), q)
	if err != nil {
		s.log.Error("search exercises", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Exercises are unavailable right now.")
		return
	}
	parts, err := s.store.ListBodyParts(r.Context())
	if err != nil {
		s.log.Error("list body parts", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Exercises are unavailable right now.")
		return
	}

	s.render(w, http.StatusOK, view.HomePage(view.HomeProps{
		Query:     q,
		Results:   *results,
		BodyParts: parts,
	}))
}

func (s *Server) handleExercisePage(w http.ResponseWriter, r *http.Request) {
	ex, ok := s.exerciseForPage(w, r)
	if !ok {
		return
	}

	related := s.finder.Find(r.Context(), *ex)
	s.render(w, http.StatusOK, view.ExerciseDetailPage(view.DetailProps{
		Exercise: *ex,
		Similar: view.SimilarProps{
			Target:    related.Target,
			Equipment: related.Equipment,
		},
	}))
}

// handleSimilarFragment renders one similar section body on its own. Pages
// point deferred loaders here.
func (s *Server) handleSimilarFragment(w http.ResponseWriter, r *http.Request) {
	kind, err := similar.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	ex, err := s.store.GetExercise(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("get exercise", "id", id, "error", err)
		http.Error(w, "exercise unavailable", http.StatusInternalServerError)
		return
	}

	s.render(w, http.StatusOK, view.SectionBody(s.finder.FindKind(r.Context(), *ex, kind)))
}

// exerciseForPage loads the exercise named by the id URL parameter, rendering
// an error page itself when that fails.
func (s *Server) exerciseForPage(w http.ResponseWriter, r *http.Request) (*models.Exercise, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, http.StatusNotFound, "We could not find that exercise.")
		return nil, false
	}
	ex, err := s.store.GetExercise(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.renderError(w, http.StatusNotFound, "We could not find that exercise.")
		return nil, false
	}
	if err != nil {
		s.log.Error("get exercise", "id", id, "error", err)
		s.renderError(w, http.StatusInternalServerError, "This exercise is unavailable right now.")
		return nil, false
	}
	return ex, true
}

func (s *Server) render(w http.ResponseWriter, status int, n g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := n.Render(w); err != nil {
		s.log.Warn("render failed", "error", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.render(w, status, view.ErrorPage(status, message))
}
