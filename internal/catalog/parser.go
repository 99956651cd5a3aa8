package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/claude/fitclub/internal/models"
	"github.com/google/uuid"
)

// Format is a catalog file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
	}
}

// FormatFromContentType picks the format from an HTTP Content-Type header.
// Anything that is not CSV is treated as JSON.
func FormatFromContentType(contentType string) Format {
	ct := strings.ToLower(contentType)
	if strings.HasPrefix(ct, "text/csv") || strings.HasPrefix(ct, "application/csv") {
		return FormatCSV
	}
	return FormatJSON
}

// record is the ExerciseDB-style JSON shape.
type record struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Target           string   `json:"target"`
	Equipment        string   `json:"equipment"`
	GifURL           string   `json:"gifUrl"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
}

// Parse reads a catalog and returns its exercises in file order. When the same
// exercise appears twice the later entry replaces the earlier one in place.
func Parse(r io.Reader, f Format) ([]models.Exercise, error) {
	var records []record
	var err error
	switch f {
	case FormatJSON:
		records, err = parseJSON(r)
	case FormatCSV:
		records, err = parseCSV(r)
	default:
		return nil, fmt.Errorf("unsupported catalog format %d", f)
	}
	if err != nil {
		return nil, err
	}

	exercises := make([]models.Exercise, 0, len(records))
	index := make(map[uuid.UUID]int, len(records))
	for i, rec := range records {
		ex, err := rec.toExercise()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if pos, ok := index[ex.ID]; ok {
			exercises[pos] = ex
			continue
		}
		index[ex.ID] = len(exercises)
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

func parseJSON(r io.Reader) ([]record, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding JSON catalog: %w", err)
	}
	return records, nil
}

// csvColumns maps accepted header spellings to record fields.
var csvColumns = map[string]string{
	"id":                "id",
	"name":              "name",
	"body_part":         "bodyPart",
	"bodypart":          "bodyPart",
	"target":            "target",
	"equipment":         "equipment",
	"gif_url":           "gifUrl",
	"gifurl":            "gifUrl",
	"secondary_muscles": "secondaryMuscles",
	"secondarymuscles":  "secondaryMuscles",
	"instructions":      "instructions",
}

var requiredCSVColumns = []string{"name", "bodyPart", "target", "equipment"}

func parseCSV(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if field, ok := csvColumns[key]; ok {
			cols[field] = i
		}
	}
	for _, req := range requiredCSVColumns {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("CSV header missing column %q", req)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if isBlank(row) {
			continue
		}
		records = append(records, record{
			ID:               field(row, "id"),
			Name:             field(row, "name"),
			BodyPart:         field(row, "bodyPart"),
			Target:           field(row, "target"),
			Equipment:        field(row, "equipment"),
			GifURL:           field(row, "gifUrl"),
			SecondaryMuscles: splitList(field(row, "secondaryMuscles")),
			Instructions:     splitList(field(row, "instructions")),
		})
	}
	return records, nil
}

func (rec record) toExercise() (models.Exercise, error) {
	name := strings.Join(strings.Fields(rec.Name), " ")
	if name == "" {
		return models.Exercise{}, errors.New("exercise name is required")
	}

	ex := models.Exercise{
		Name:             name,
		BodyPart:         category(rec.BodyPart),
		Target:           category(rec.Target),
		Equipment:        category(rec.Equipment),
		GifURL:           strings.TrimSpace(rec.GifURL),
		SecondaryMuscles: cleanList(rec.SecondaryMuscles, true),
		Instructions:     cleanList(rec.Instructions, false),
	}
	if ex.BodyPart == "" || ex.Target == "" || ex.Equipment == "" {
		return models.Exercise{}, fmt.Errorf("exercise %q needs body part, target and equipment", name)
	}

	if id, err := uuid.Parse(strings.TrimSpace(rec.ID)); err == nil {
		ex.ID = id
	} else {
		ex.ID = models.ExerciseID(name)
	}
	return ex, nil
}

func category(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func cleanList(in []string, lower bool) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if lower {
			s = category(s)
		}
		out = append(out, s)
	}
	return out
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "|")
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
