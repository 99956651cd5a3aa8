package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/claude/fitclub/internal/models"
	"github.com/claude/fitclub/internal/storage"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the FitClub REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the catalog lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("httpclient: %s: %w", path, storage.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func queryParams(q models.ExerciseQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.BodyPart != "" {
		v.Set("bodyPart", q.BodyPart)
	}
	if q.Target != "" {
		v.Set("target", q.Target)
	}
	if q.Equipment != "" {
		v.Set("equipment", q.Equipment)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

func (c *HTTPClient) SearchExercises(ctx context.Context, q models.ExerciseQuery) (*models.ExercisePage, error) {
	body, err := c.get(ctx, "/api/v1/exercises", queryParams(q))
	if err != nil {
		return nil, err
	}

	var page models.ExercisePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return &page, nil
}

func (c *HTTPClient) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var ex models.Exercise
	if err := json.Unmarshal(body, &ex); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise: %w", err)
	}
	return &ex, nil
}

func (c *HTTPClient) ExercisesByTarget(ctx context.Context, target string, exclude uuid.UUID, limit int) ([]models.Exercise, error) {
	return c.exercisesBy(ctx, models.ExerciseQuery{Target: target}, exclude, limit)
}

func (c *HTTPClient) ExercisesByEquipment(ctx context.Context, equipment string, exclude uuid.UUID, limit int) ([]models.Exercise, error) {
	return c.exercisesBy(ctx, models.ExerciseQuery{Equipment: equipment}, exclude, limit)
}

// exercisesBy asks for one more than limit so dropping the excluded exercise
// still leaves a full group.
func (c *HTTPClient) exercisesBy(ctx context.Context, q models.ExerciseQuery, exclude uuid.UUID, limit int) ([]models.Exercise, error) {
	if limit <= 0 || limit >= models.MaxPageSize {
		limit = models.MaxPageSize - 1
	}
	q.Page = 1
	q.PageSize = limit + 1

	page, err := c.SearchExercises(ctx, q)
	if err != nil {
		return nil, err
	}
	items := slices.DeleteFunc(page.Items, func(e models.Exercise) bool { return e.ID == exclude })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *HTTPClient) ListBodyParts(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/v1/bodyparts", nil)
	if err != nil {
		return nil, err
	}

	var parts []string
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, fmt.Errorf("httpclient: decode body parts: %w", err)
	}
	// The API leads with the "all" filter entry, which is not a body part.
	return slices.DeleteFunc(parts, func(p string) bool { return p == "all" }), nil
}
