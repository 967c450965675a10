// FILE: nsdebug/src/internal/reader/watcher_test.go
package reader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"nsdebug/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu       sync.Mutex
	messages []string
}

func (c *collector) add(e core.LogEntry) {
	c.mu.Lock()
	c.messages = append(c.messages, e.Message)
	c.mu.Unlock()
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func appendTo(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func line(msg string) string {
	return `{"timestamp":"2024-03-01T08:00:00.000Z","namespace":"api","message":"` + msg + `"}` + "\n"
}

func startWatcher(t *testing.T, path string, fromStart bool) (*Watcher, *collector) {
	t.Helper()

	c := &collector{}
	w := NewWatcher(path, 10*time.Millisecond, c.add, log.NewLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, fromStart) }()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return w, c
}

func TestWatcher_FollowsAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	appendTo(t, path, "--- Debug session started at 2024-03-01T08:00:00.000Z ---\n"+line("old"))

	w, c := startWatcher(t, path, false)
	time.Sleep(30 * time.Millisecond)

	appendTo(t, path, line("one")+"garbage\n"+line("two"))

	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"one", "two"}, c.snapshot())
	}, 2*time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 2, w.Info().EntriesRead)
}

func TestWatcher_FromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	appendTo(t, path, line("existing"))

	_, c := startWatcher(t, path, true)

	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"existing"}, c.snapshot())
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_PartialLineWaitsForNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	appendTo(t, path, "")

	_, c := startWatcher(t, path, false)
	time.Sleep(30 * time.Millisecond)

	full := line("split")
	appendTo(t, path, full[:20])
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, c.snapshot())

	appendTo(t, path, full[20:])
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"split"}, c.snapshot())
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_StartsMidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	full := line("split")
	appendTo(t, path, line("old")+full[:20])

	_, c := startWatcher(t, path, false)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, c.snapshot())

	appendTo(t, path, full[20:])
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"split"}, c.snapshot())
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_WatchFromOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	appendTo(t, path, line("seen"))

	_, offset, err := ReadComplete(path)
	require.NoError(t, err)

	// Appended between the read and the start of watching
	appendTo(t, path, line("gap"))

	c := &collector{}
	w := NewWatcher(path, 10*time.Millisecond, c.add, log.NewLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.WatchFrom(ctx, offset) }()

	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"gap"}, c.snapshot())
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestLastLineEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	long := strings.Repeat("x", 10000)

	testCases := []struct {
		name     string
		content  string
		expected int64
	}{
		{"Empty", "", 0},
		{"NoNewline", "partial", 0},
		{"EndsWithNewline", "a\nbc\n", 5},
		{"TrailingPartial", "a\nbc", 2},
		{"NewlineBeyondFirstChunk", "a\n" + long, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))
			got, err := lastLineEnd(path, int64(len(tc.content)))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestWatcher_Truncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	appendTo(t, path, line("first")+line("second"))

	w, c := startWatcher(t, path, true)
	assert.Eventually(t, func() bool { return len(c.snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(line("fresh")), 0o644))

	assert.Eventually(t, func() bool {
		msgs := c.snapshot()
		return len(msgs) == 3 && msgs[2] == "fresh"
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, w.Info().Rotations, 1)
}

func TestWatcher_FileAppearsLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.log")

	_, c := startWatcher(t, path, false)
	time.Sleep(30 * time.Millisecond)
	appendTo(t, path, line("born"))

	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"born"}, c.snapshot())
	}, 2*time.Second, 10*time.Millisecond)
}
