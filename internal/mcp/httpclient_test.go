package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/fitclub/internal/models"
	"github.com/claude/fitclub/internal/storage"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestSearchExercises verifies the HTTP client sends the query as URL params
// and parses the page response.
func TestSearchExercises(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("q"); got != "curl" {
				t.Errorf("q=%q, want curl", got)
			}
			if got := q.Get("bodyPart"); got != "upper arms" {
				t.Errorf("bodyPart=%q, want upper arms", got)
			}
			if got := q.Get("pageSize"); got != "5" {
				t.Errorf("pageSize=%q, want 5", got)
			}
			writeTestJSON(t, w, models.ExercisePage{
				Items: []models.Exercise{{ID: models.ExerciseID("barbell curl"), Name: "barbell curl"}},
				Total: 1, Page: 1, PageSize: 5,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/")
	page, err := client.SearchExercises(context.Background(), models.ExerciseQuery{
		Search: "curl", BodyPart: "upper arms", Page: 1, PageSize: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Name != "barbell curl" {
		t.Errorf("page = %+v", page)
	}
}

// TestGetExerciseNotFound verifies a 404 maps onto storage.ErrNotFound so
// tools treat remote and local misses alike.
func TestGetExerciseNotFound(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).GetExercise(context.Background(), id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestGetExerciseServerError verifies other statuses are reported with the body.
func TestGetExerciseServerError(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).GetExercise(context.Background(), id)
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want a non-404 error", err)
	}
}

// TestExercisesByTargetExcludes verifies the client filters by target, drops
// the excluded exercise and honours the limit.
func TestExercisesByTargetExcludes(t *testing.T) {
	self := models.Exercise{ID: models.ExerciseID("barbell curl"), Name: "barbell curl", Target: "biceps"}
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("target"); got != "biceps" {
				t.Errorf("target=%q, want biceps", got)
			}
			if got := r.URL.Query().Get("pageSize"); got != "3" {
				t.Errorf("pageSize=%q, want 3", got)
			}
			writeTestJSON(t, w, models.ExercisePage{Items: []models.Exercise{
				{ID: models.ExerciseID("cable curl"), Name: "cable curl", Target: "biceps"},
				self,
				{ID: models.ExerciseID("hammer curl"), Name: "hammer curl", Target: "biceps"},
			}, Total: 3, Page: 1, PageSize: 3})
		},
	})
	defer ts.Close()

	got, err := NewHTTPClient(ts.URL).ExercisesByTarget(context.Background(), "biceps", self.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "cable curl" || got[1].Name != "hammer curl" {
		t.Errorf("got %+v, want cable curl and hammer curl", got)
	}
}

// TestListBodyPartsDropsAll verifies the "all" filter entry is not reported
// as a body part.
func TestListBodyPartsDropsAll(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/bodyparts": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []string{"all", "back", "chest"})
		},
	})
	defer ts.Close()

	parts, err := NewHTTPClient(ts.URL).ListBodyParts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 2 || parts[0] != "back" || parts[1] != "chest" {
		t.Errorf("parts = %v, want [back chest]", parts)
	}
}
