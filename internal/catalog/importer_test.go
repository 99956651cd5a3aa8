package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/fitclub/internal/models"
)

type fakeStore struct {
	calls   int
	written []models.Exercise
	err     error
}

func (f *fakeStore) UpsertExercises(_ context.Context, exercises []models.Exercise) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	f.written = append(f.written, exercises...)
	return int64(len(exercises)), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestImportFileSkipsUnchanged verifies the state DB prevents re-importing a
// file whose content has not changed, and re-imports after a change.
func TestImportFileSkipsUnchanged(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	store := &fakeStore{}
	imp := NewImporter(store, state, discardLogger(), false)
	path := writeCatalog(t, "catalog.csv", sampleCSV)

	stats, err := imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if stats.FilesProcessed != 1 || stats.Received != 3 || stats.Upserted != 3 {
		t.Errorf("first import stats = %+v", stats)
	}

	stats, err = imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if stats.FilesSkipped != 1 || stats.FilesProcessed != 0 {
		t.Errorf("second import stats = %+v, want skipped", stats)
	}
	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1", store.calls)
	}

	if err := os.WriteFile(path, []byte(sampleCSV+"Push-Up,chest,pectorals,body weight,,,\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stats, err = imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("third import: %v", err)
	}
	if stats.FilesProcessed != 1 || stats.Received != 4 {
		t.Errorf("third import stats = %+v, want 4 received", stats)
	}
}

// TestImportDryRun verifies nothing is written and state is not recorded.
func TestImportDryRun(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	store := &fakeStore{}
	imp := NewImporter(store, state, discardLogger(), true)
	path := writeCatalog(t, "catalog.json", sampleJSON)

	for range 2 {
		stats, err := imp.ImportFile(context.Background(), path)
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if stats.FilesProcessed != 1 || stats.Received != 2 || stats.Upserted != 0 {
			t.Errorf("stats = %+v", stats)
		}
	}
	if store.calls != 0 {
		t.Errorf("store calls = %d, want 0 in dry run", store.calls)
	}
}

func TestImportReaderStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	imp := NewImporter(store, nil, discardLogger(), false)

	_, err := imp.ImportReader(context.Background(), strings.NewReader(sampleJSON), FormatJSON)
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("err = %v, want wrapped store error", err)
	}
}

func TestImportFileUnsupportedExtension(t *testing.T) {
	imp := NewImporter(&fakeStore{}, nil, discardLogger(), false)
	path := writeCatalog(t, "catalog.txt", "x")
	if _, err := imp.ImportFile(context.Background(), path); err == nil {
		t.Error("expected error for .txt catalog")
	}
}

func TestImportSeed(t *testing.T) {
	store := &fakeStore{}
	imp := NewImporter(store, nil, discardLogger(), false)

	stats, err := imp.ImportSeed(context.Background())
	if err != nil {
		t.Fatalf("seed import: %v", err)
	}
	if stats.Received == 0 || int64(stats.Received) != stats.Upserted {
		t.Errorf("stats = %+v", stats)
	}
	if len(store.written) != stats.Received {
		t.Errorf("written = %d, want %d", len(store.written), stats.Received)
	}
}
