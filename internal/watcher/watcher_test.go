package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestWatcher_DebouncesBurstOfWrites(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "data.json")
	if err := writeFile(catalogPath, "[]"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	w := NewWatcher([]string{catalogPath}, rec.record, WithDebounce(150*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		if err := writeFile(catalogPath, `[{"id": 1}]`); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected exactly one debounced callback, got %v", got)
	}
	if got[0] != filepath.Clean(catalogPath) {
		t.Errorf("callback path = %q, want %q", got[0], catalogPath)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "data.json")

	rec := &recorder{}
	w := NewWatcher([]string{catalogPath}, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := writeFile(filepath.Join(dir, "notes.txt"), "hello"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("unexpected callbacks: %v", got)
	}
}

func TestWatcher_SeesAtomicRenameReplace(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "data.json")
	if err := writeFile(catalogPath, "[]"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	w := NewWatcher([]string{catalogPath}, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	tmp := filepath.Join(dir, ".data.json.tmp")
	if err := writeFile(tmp, `[{"id": 2}]`); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, catalogPath); err != nil {
		t.Fatal(err)
	}
	time.Sleep(400 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 1 {
		t.Errorf("expected one callback after rename, got %v", got)
	}
}

func TestWatcher_StopDropsPendingCallbacks(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "data.yaml")

	rec := &recorder{}
	w := NewWatcher([]string{catalogPath}, rec.record, WithDebounce(300*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(catalogPath, "[]"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	w.Stop()
	w.Stop()
	time.Sleep(400 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("callbacks after Stop: %v", got)
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "data.json")
	w := NewWatcher([]string{missing}, nil)
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("expected error for missing directory")
	}
}

func TestWatcher_HandleEventRemoveCancelsPending(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "data.json")
	rec := &recorder{}
	w := NewWatcher([]string{catalogPath}, rec.record, WithDebounce(100*time.Millisecond))
	// mark started without a real fsnotify watcher so handleEvent can be driven directly
	w.started = true

	w.handleEvent(fsnotify.Event{Name: catalogPath, Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: catalogPath, Op: fsnotify.Remove})
	time.Sleep(250 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("remove should cancel the pending callback, got %v", got)
	}

	w.handleEvent(fsnotify.Event{Name: catalogPath, Op: fsnotify.Create})
	time.Sleep(250 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 1 {
		t.Errorf("create should fire once, got %v", got)
	}
}

func TestNewWatcher_dedupesDirectories(t *testing.T) {
	w := NewWatcher([]string{"/srv/a.json", "/srv/./b.yaml", "/other/c.toml"}, nil)
	if len(w.dirs) != 2 {
		t.Errorf("dirs = %v, want 2 entries", w.dirs)
	}
	if len(w.Files()) != 3 {
		t.Errorf("files = %v", w.Files())
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
