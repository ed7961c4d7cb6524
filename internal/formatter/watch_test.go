package formatter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer captures runner output written from the watch goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func (b *syncBuffer) Count(sub string) int {
	return strings.Count(b.String(), sub)
}

// startWatcher runs Watch over the given roots with a fast debounce and a
// zero-exit fake tool, stopping it when the test ends.
func startWatcher(t *testing.T, roots []string) *syncBuffer {
	t.Helper()

	tool := fakeTool(t, 0)
	out := &syncBuffer{}
	runner := NewRunner(tool, nil)
	runner.SetOutput(out, out)

	w := NewWatcher(roots, DefaultExtensions(), runner, nil)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Watch(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop after cancellation")
		}
	})

	return out
}

func waitFor(t *testing.T, out *syncBuffer, condition func() bool) {
	t.Helper()
	require.Eventually(t, func() bool { return condition() }, 5*time.Second, 10*time.Millisecond,
		"watcher output so far:\n%s", out.String())
}

func TestWatch_FormatsInitialTree(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.cpp"), []byte("int a;\n"), 0o644))

	out := startWatcher(t, []string{src})

	waitFor(t, out, func() bool { return out.Count("Formatting 1 file(s)") >= 1 })
	assert.Contains(t, out.String(), "a.cpp")
}

func TestWatch_ReformatsOnChange(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))

	out := startWatcher(t, []string{src})

	// The initial pass over an empty tree reports no files.
	waitFor(t, out, func() bool { return out.Count("No source files found") >= 1 })

	require.NoError(t, os.WriteFile(filepath.Join(src, "b.cpp"), []byte("int b;\n"), 0o644))

	waitFor(t, out, func() bool { return out.Count("Formatting 1 file(s)") >= 1 })
	assert.Contains(t, out.String(), "b.cpp")
}

func TestWatch_DebouncesEventBursts(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))

	out := startWatcher(t, []string{src})
	waitFor(t, out, func() bool { return out.Count("No source files found") >= 1 })

	// A burst of writes inside one debounce window collapses into a
	// single run covering every file.
	for _, name := range []string{"a.cpp", "b.cpp", "c.h", "d.cc", "e.hpp"} {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte("//\n"), 0o644))
	}

	waitFor(t, out, func() bool { return out.Count("Formatting 5 file(s)") >= 1 })
}

func TestWatch_IgnoresUnrecognizedExtensions(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))

	out := startWatcher(t, []string{src})
	waitFor(t, out, func() bool { return out.Count("No source files found") >= 1 })

	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("hi\n"), 0o644))

	// Give the debounce window ample time to fire if it were going to.
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, out.Count("Formatting"))
}

func TestWatch_PicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))

	out := startWatcher(t, []string{src})
	waitFor(t, out, func() bool { return out.Count("No source files found") >= 1 })

	nested := filepath.Join(src, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))

	// Let the watcher pick up the new directory before writing into it.
	time.Sleep(250 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(nested, "deep.cpp"), []byte("int d;\n"), 0o644))

	waitFor(t, out, func() bool {
		return strings.Contains(out.String(), "deep.cpp") && out.Count("Done!") >= 1
	})
}
