package similar

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/fitclub/internal/models"
	"github.com/google/uuid"
)

// fakeSource answers each kind independently. A kind set to block waits for
// its context to end, simulating a slow query.
type fakeSource struct {
	target, equipment       []models.Exercise
	targetErr, equipmentErr error
	blockTarget             bool
	blockEquipment          bool

	gotTarget, gotEquipment string
	gotExclude              uuid.UUID
	gotLimit                int
}

func (s *fakeSource) ExercisesByTarget(ctx context.Context, target string, exclude uuid.UUID, limit int) ([]models.Exercise, error) {
	s.gotTarget, s.gotExclude, s.gotLimit = target, exclude, limit
	if s.blockTarget {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.target, s.targetErr
}

func (s *fakeSource) ExercisesByEquipment(ctx context.Context, equipment string, exclude uuid.UUID, limit int) ([]models.Exercise, error) {
	s.gotEquipment = equipment
	if s.blockEquipment {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.equipment, s.equipmentErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var viewed = models.Exercise{
	ID:        uuid.MustParse("11111111-1111-5111-8111-111111111111"),
	Name:      "barbell curl",
	Target:    "biceps",
	Equipment: "barbell",
}

func sourceURL(id uuid.UUID, kind Kind) string {
	return "/exercises/" + id.String() + "/similar/" + string(kind)
}

func TestFindBothLoaded(t *testing.T) {
	src := &fakeSource{
		target:    []models.Exercise{{Name: "hammer curl"}, {Name: "concentration curl"}},
		equipment: []models.Exercise{{Name: "barbell row"}},
	}
	f := NewFinder(src, discardLogger(), WithLimit(5), WithTimeout(time.Second))

	res := f.Find(context.Background(), viewed)

	if res.Target.Status != models.StatusLoaded || len(res.Target.Items) != 2 {
		t.Errorf("target = %+v, want loaded with 2", res.Target)
	}
	if res.Equipment.Status != models.StatusLoaded || len(res.Equipment.Items) != 1 {
		t.Errorf("equipment = %+v, want loaded with 1", res.Equipment)
	}
	if &res.Target.Items[0] != &src.target[0] {
		t.Error("target items were copied instead of passed through")
	}
	if src.gotTarget != "biceps" || src.gotEquipment != "barbell" {
		t.Errorf("queried target=%q equipment=%q", src.gotTarget, src.gotEquipment)
	}
	if src.gotExclude != viewed.ID {
		t.Errorf("exclude = %s, want viewed exercise", src.gotExclude)
	}
	if src.gotLimit != 5 {
		t.Errorf("limit = %d, want 5", src.gotLimit)
	}
}

// TestFindSlowSectionDeferred verifies that a section missing the timeout is
// loading with a source URL while the other section is unaffected.
func TestFindSlowSectionDeferred(t *testing.T) {
	src := &fakeSource{
		blockTarget: true,
		equipment:   []models.Exercise{{Name: "barbell row"}},
	}
	f := NewFinder(src, discardLogger(), WithTimeout(20*time.Millisecond), WithSourceURL(sourceURL))

	res := f.Find(context.Background(), viewed)

	if res.Target.Status != models.StatusLoading {
		t.Fatalf("target status = %v, want loading", res.Target.Status)
	}
	if want := sourceURL(viewed.ID, KindTarget); res.Target.Source != want {
		t.Errorf("target source = %q, want %q", res.Target.Source, want)
	}
	if res.Equipment.Status != models.StatusLoaded {
		t.Errorf("equipment status = %v, want loaded", res.Equipment.Status)
	}
}

// TestFindFailureIsolated verifies a failing section does not affect the other.
func TestFindFailureIsolated(t *testing.T) {
	src := &fakeSource{
		target:       []models.Exercise{{Name: "hammer curl"}},
		equipmentErr: errors.New("connection reset"),
	}
	f := NewFinder(src, discardLogger())

	res := f.Find(context.Background(), viewed)

	if res.Target.Status != models.StatusLoaded {
		t.Errorf("target status = %v, want loaded", res.Target.Status)
	}
	if res.Equipment.Status != models.StatusFailed {
		t.Fatalf("equipment status = %v, want failed", res.Equipment.Status)
	}
	if res.Equipment.Reason == "" {
		t.Error("failed collection has no reason")
	}
}

// TestFindCancelledRequestFails verifies that a caller cancellation is not
// mistaken for a slow section.
func TestFindCancelledRequestFails(t *testing.T) {
	src := &fakeSource{blockTarget: true, blockEquipment: true}
	f := NewFinder(src, discardLogger(), WithTimeout(time.Minute), WithSourceURL(sourceURL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := f.Find(ctx, viewed)

	if res.Target.Status != models.StatusFailed || res.Equipment.Status != models.StatusFailed {
		t.Errorf("statuses = %v/%v, want failed/failed", res.Target.Status, res.Equipment.Status)
	}
}

// TestFindCancelledBeforeStart verifies no query is sent for a request that
// is already gone.
func TestFindCancelledBeforeStart(t *testing.T) {
	src := &fakeSource{target: []models.Exercise{{Name: "hammer curl"}}}
	f := NewFinder(src, discardLogger(), WithSourceURL(sourceURL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := f.Find(ctx, viewed)

	if src.gotTarget != "" || src.gotEquipment != "" {
		t.Errorf("queried %q/%q after cancellation", src.gotTarget, src.gotEquipment)
	}
	if res.Target.Status != models.StatusFailed || res.Equipment.Status != models.StatusFailed {
		t.Errorf("statuses = %v/%v, want failed/failed", res.Target.Status, res.Equipment.Status)
	}
	if res.Target.Reason == "" || res.Equipment.Reason == "" {
		t.Error("skipped sections should carry a reason")
	}
}

func TestFindEmptyIsLoaded(t *testing.T) {
	f := NewFinder(&fakeSource{target: []models.Exercise{}}, discardLogger())
	res := f.Find(context.Background(), viewed)
	if res.Target.Status != models.StatusLoaded || len(res.Target.Items) != 0 {
		t.Errorf("target = %+v, want loaded and empty", res.Target)
	}
}

func TestFindKind(t *testing.T) {
	src := &fakeSource{
		target:       []models.Exercise{{Name: "hammer curl"}},
		equipmentErr: errors.New("boom"),
	}
	f := NewFinder(src, discardLogger(), WithTimeout(time.Nanosecond))

	if c := f.FindKind(context.Background(), viewed, KindTarget); c.Status != models.StatusLoaded {
		t.Errorf("target = %v, want loaded", c.Status)
	}
	if c := f.FindKind(context.Background(), viewed, KindEquipment); c.Status != models.StatusFailed {
		t.Errorf("equipment = %v, want failed", c.Status)
	}
	if c := f.FindKind(context.Background(), viewed, Kind("bogus")); c.Status != models.StatusFailed {
		t.Errorf("bogus kind = %v, want failed", c.Status)
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"target", "equipment"} {
		if k, err := ParseKind(s); err != nil || string(k) != s {
			t.Errorf("ParseKind(%q) = %q, %v", s, k, err)
		}
	}
	for _, s := range []string{"", "Target", "bodypart"} {
		if _, err := ParseKind(s); err == nil {
			t.Errorf("ParseKind(%q) should fail", s)
		}
	}
}
