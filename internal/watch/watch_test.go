package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	thinglog "github.com/msto63/thing/foundation/core/log"
	"github.com/msto63/thing/pkg/core/logging"
)

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.thing")
	other := filepath.Join(dir, "other.thing")
	if err := os.WriteFile(path, []byte("a;"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var calls int32
	changed := make(chan string, 10)
	w := New(path, 50*time.Millisecond, func(p string) {
		atomic.AddInt32(&calls, 1)
		changed <- p
	}, logging.Wrap(thinglog.Discard(), "test"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// unrelated files are ignored
	if err := os.WriteFile(other, []byte("b;"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("a; b;"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("onChange(%q), want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("onChange not called")
	}

	time.Sleep(200 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("onChange called %d times, want 1", n)
	}

	cancel()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_SeparateBurstsFireOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.thing")
	if err := os.WriteFile(path, []byte("a;"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	changed := make(chan string, 10)
	w := New(path, time.Millisecond, func(p string) { changed <- p }, logging.Wrap(thinglog.Discard(), "test"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for burst := 0; burst < 3; burst++ {
		if err := os.WriteFile(path, []byte("a; b;"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		select {
		case <-changed:
		case <-time.After(5 * time.Second):
			t.Fatalf("burst %d: onChange not called", burst)
		}
		// let trailing events of this burst settle
		time.Sleep(100 * time.Millisecond)
		for len(changed) > 0 {
			<-changed
		}
	}

	// no timer stays armed once the file is quiet
	select {
	case <-changed:
		t.Error("onChange called without a file event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_Stop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.thing")
	w := New(path, 0, func(string) {}, logging.Wrap(thinglog.Discard(), "test"))

	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	w.Stop()
	w.Stop()

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.thing")
	w := New(path, 0, func(string) {}, logging.Wrap(thinglog.Discard(), "test"))

	if err := w.Start(context.Background()); err == nil {
		t.Error("Start() on a missing directory should fail")
	}
}
