package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/claude/fitclub/internal/models"
	"github.com/claude/fitclub/internal/similar"
	"github.com/claude/fitclub/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultSimilarLimit = 12

// exerciseRef resolves an exercise given either its UUID or its name.
func exerciseRef(s string) uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return models.ExerciseID(s)
}

// --- Tool definitions ---

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search the exercise catalog. Matches the query against name, body part, target muscle and equipment. Returns one page of exercises and the total match count."),
	mcp.WithString("query", mcp.Description("Free text search (e.g. 'curl', 'biceps', 'dumbbell')")),
	mcp.WithString("body_part", mcp.Description("Only exercises for this body part (see list_body_parts). 'all' means no filter.")),
	mcp.WithString("target", mcp.Description("Only exercises working this target muscle (e.g. 'glutes')")),
	mcp.WithString("equipment", mcp.Description("Only exercises using this equipment (e.g. 'barbell')")),
	mcp.WithNumber("page", mcp.Description("Page number, starting at 1. Defaults to 1.")),
	mcp.WithNumber("page_size", mcp.Description("Exercises per page, at most 100. Defaults to 9.")),
)

var toolGetExercise = mcp.NewTool("get_exercise",
	mcp.WithDescription("Get one exercise with its secondary muscles and step by step instructions."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exercise ID (UUID) or exact exercise name")),
)

var toolSimilarExercises = mcp.NewTool("similar_exercises",
	mcp.WithDescription("Find exercises similar to one exercise: those working the same target muscle and those using the same equipment."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exercise ID (UUID) or exact exercise name")),
	mcp.WithNumber("limit", mcp.Description("Maximum exercises per group. Defaults to 12.")),
)

var toolListBodyParts = mcp.NewTool("list_body_parts",
	mcp.WithDescription("List the body parts present in the catalog."),
)

// --- Tool handlers ---

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := models.ExerciseQuery{
		Search:    req.GetString("query", ""),
		BodyPart:  req.GetString("body_part", ""),
		Target:    req.GetString("target", ""),
		Equipment: req.GetString("equipment", ""),
		Page:      req.GetInt("page", 1),
		PageSize:  req.GetInt("page_size", models.DefaultPageSize),
	}

	page, err := h.ds.SearchExercises(ctx, q.Normalize())
	if err != nil {
		h.log.Error("mcp search_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(page)
}

func (h *handlers) getExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	ex, errResult := h.lookup(ctx, ref)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(ex)
}

// similarResult is one group of similar exercises. Status is "loaded" or
// "failed"; tools never return a group that is still loading.
type similarResult struct {
	Status    string            `json:"status"`
	Exercises []models.Exercise `json:"exercises"`
	Reason    string            `json:"reason,omitempty"`
}

func toSimilarResult(c models.ExerciseCollection) similarResult {
	items := c.Items
	if items == nil {
		items = []models.Exercise{}
	}
	return similarResult{Status: c.Status.String(), Exercises: items, Reason: c.Reason}
}

func (h *handlers) similarExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	limit := req.GetInt("limit", defaultSimilarLimit)
	if limit < 1 || limit > models.MaxPageSize {
		return mcp.NewToolResultError("limit must be between 1 and 100"), nil
	}

	ex, errResult := h.lookup(ctx, ref)
	if errResult != nil {
		return errResult, nil
	}

	f := h.finder(limit)
	return jsonResult(map[string]any{
		"exercise":  ex,
		"target":    toSimilarResult(f.FindKind(ctx, *ex, similar.KindTarget)),
		"equipment": toSimilarResult(f.FindKind(ctx, *ex, similar.KindEquipment)),
	})
}

func (h *handlers) listBodyParts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parts, err := h.ds.ListBodyParts(ctx)
	if err != nil {
		h.log.Error("mcp list_body_parts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(parts)
}

// lookup fetches an exercise, turning failures into tool error results. A
// name that does not map to a derived ID is searched for, since catalogs that
// ship their own UUIDs cannot be found by ExerciseID.
func (h *handlers) lookup(ctx context.Context, ref string) (*models.Exercise, *mcp.CallToolResult) {
	ex, err := h.ds.GetExercise(ctx, exerciseRef(ref))
	if errors.Is(err, storage.ErrNotFound) {
		if _, perr := uuid.Parse(ref); perr == nil {
			return nil, mcp.NewToolResultError("no exercise matches " + ref)
		}
		ex, err = h.findByName(ctx, ref)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, mcp.NewToolResultError("no exercise matches " + ref)
	}
	if err != nil {
		h.log.Error("mcp get exercise", "ref", ref, "error", err)
		return nil, mcp.NewToolResultError("query failed: " + err.Error())
	}
	return ex, nil
}

// findByName pages through the search results for name and returns the
// exercise whose name matches it, ignoring case and spacing.
func (h *handlers) findByName(ctx context.Context, name string) (*models.Exercise, error) {
	want := strings.Join(strings.Fields(name), " ")
	q := models.ExerciseQuery{Search: want, PageSize: models.MaxPageSize}
	for page := 1; ; page++ {
		q.Page = page
		res, err := h.ds.SearchExercises(ctx, q.Normalize())
		if err != nil {
			return nil, err
		}
		for _, e := range res.Items {
			if strings.EqualFold(strings.Join(strings.Fields(e.Name), " "), want) {
				return &e, nil
			}
		}
		if page >= res.Pages() {
			return nil, storage.ErrNotFound
		}
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
