// FILE: nsdebug/src/internal/reader/watcher.go
package reader

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"nsdebug/src/internal/core"

	"github.com/fsnotify/fsnotify"
	"github.com/lixenwraith/log"
)

// DefaultPollInterval is how often a Watcher checks the file for growth
const DefaultPollInterval = 250 * time.Millisecond

// WatcherInfo contains information about a file watcher
type WatcherInfo struct {
	Path         string
	Size         int64
	Position     int64
	ModTime      time.Time
	EntriesRead  uint64
	LastReadTime time.Time
	Rotations    int
}

// Watcher follows a log file the way tail -F does, reporting entries as
// they are appended and starting over when the file is truncated or replaced
type Watcher struct {
	path     string
	interval time.Duration
	callback func(core.LogEntry)
	logger   *log.Logger

	mu          sync.Mutex
	position    int64
	size        int64
	inode       uint64
	modTime     time.Time
	rotationSeq int

	entriesRead  atomic.Uint64
	lastReadTime atomic.Value // time.Time
}

// NewWatcher creates a watcher for path. Interval <= 0 uses DefaultPollInterval.
func NewWatcher(path string, interval time.Duration, callback func(core.LogEntry), logger *log.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	w := &Watcher{
		path:     filepath.Clean(path),
		interval: interval,
		callback: callback,
		position: -1,
		logger:   logger,
	}
	w.lastReadTime.Store(time.Time{})
	return w
}

// FromEnd starts following after the last complete line present when
// watching begins
const FromEnd int64 = -1

// Watch reports entries appended after the call until ctx is done. When
// fromStart is false, existing complete lines are skipped; a line still
// being written is reported once finished.
func (w *Watcher) Watch(ctx context.Context, fromStart bool) error {
	if fromStart {
		return w.WatchFrom(ctx, 0)
	}
	return w.WatchFrom(ctx, FromEnd)
}

// WatchFrom is Watch starting at a byte offset, normally one returned by
// ReadComplete, so that nothing appended in between is missed. FromEnd
// selects the end of the last complete line.
func (w *Watcher) WatchFrom(ctx context.Context, offset int64) error {
	if err := w.initPosition(offset); err != nil {
		return fmt.Errorf("failed to open %s: %w", w.path, err)
	}

	// Content present at start is read immediately
	if err := w.checkFile(); err != nil {
		w.logger.Warn("msg", "Initial read failed",
			"component", "file_watcher",
			"path", w.path,
			"error", err)
	}

	// Change notifications shorten the delay; polling stays as the fallback.
	// Nil channels never fire, so a missing notifier leaves polling alone.
	var events <-chan fsnotify.Event
	var notifyErrs <-chan error
	if notifier := w.startNotifier(); notifier != nil {
		defer notifier.Close()
		events = notifier.Events
		notifyErrs = notifier.Errors
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.check()
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(event.Name) == w.path {
				w.check()
			}
		case err, ok := <-notifyErrs:
			if !ok {
				notifyErrs = nil
				continue
			}
			w.logger.Debug("msg", "File notification error",
				"component", "file_watcher",
				"path", w.path,
				"error", err)
		}
	}
}

// startNotifier watches the parent directory so that creation and
// replacement of the file are seen. Returns nil when notifications are
// unavailable.
func (w *Watcher) startNotifier() *fsnotify.Watcher {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Debug("msg", "File notifications unavailable, polling only",
			"component", "file_watcher",
			"error", err)
		return nil
	}
	if err := notifier.Add(filepath.Dir(w.path)); err != nil {
		w.logger.Debug("msg", "Cannot watch directory, polling only",
			"component", "file_watcher",
			"path", w.path,
			"error", err)
		notifier.Close()
		return nil
	}
	return notifier
}

func (w *Watcher) check() {
	if err := w.checkFile(); err != nil {
		// Log error but continue watching
		w.logger.Warn("msg", "Check file error",
			"component", "file_watcher",
			"path", w.path,
			"error", err)
	}
}

func (w *Watcher) initPosition(offset int64) error {
	info, err := os.Stat(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Not created yet; read from the start once it appears
			w.mu.Lock()
			w.position = 0
			w.mu.Unlock()
			return nil
		}
		return err
	}

	position := offset
	if offset < 0 {
		if position, err = lastLineEnd(w.path, info.Size()); err != nil {
			return err
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// An offset past the end is caught as truncation by the first check
	w.size = info.Size()
	w.modTime = info.ModTime()
	w.inode = inodeOf(info)
	w.position = position
	return nil
}

// lastLineEnd returns the offset just past the last newline before size,
// or 0 when there is none
func lastLineEnd(path string, size int64) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	const chunkSize = 4096
	buf := make([]byte, chunkSize)
	end := size
	for end > 0 {
		start := max(end-chunkSize, 0)
		n, err := file.ReadAt(buf[:end-start], start)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		if i := bytes.LastIndexByte(buf[:n], '\n'); i >= 0 {
			return start + int64(i) + 1, nil
		}
		end = start
	}
	return 0, nil
}

func inodeOf(info os.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return stat.Ino
	}
	return 0
}

func (w *Watcher) checkFile() error {
	file, err := os.Open(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// File doesn't exist yet, keep watching
			return nil
		}
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	w.mu.Lock()
	oldPos := w.position
	oldSize := w.size
	oldInode := w.inode
	w.mu.Unlock()

	currentSize := info.Size()
	currentInode := inodeOf(info)

	rotationReason := ""
	switch {
	case currentSize < oldSize || currentSize < oldPos:
		rotationReason = "size decrease"
	case oldInode != 0 && currentInode != 0 && currentInode != oldInode:
		rotationReason = "inode change"
	}

	startPos := oldPos
	if rotationReason != "" {
		startPos = 0
		w.mu.Lock()
		w.rotationSeq++
		seq := w.rotationSeq
		w.mu.Unlock()

		w.logger.Info("msg", "Log rotation detected",
			"component", "file_watcher",
			"path", w.path,
			"sequence", seq,
			"reason", rotationReason)
	}

	newPos := startPos
	if currentSize > startPos {
		if newPos, err = w.readFrom(file, startPos); err != nil {
			return err
		}
	}

	w.mu.Lock()
	w.position = newPos
	w.size = currentSize
	w.modTime = info.ModTime()
	w.inode = currentInode
	w.mu.Unlock()

	return nil
}

// readFrom reads complete lines from pos and returns the offset after the
// last newline; a trailing partial line is left for the next check
func (w *Watcher) readFrom(file *os.File, pos int64) (int64, error) {
	if _, err := file.Seek(pos, io.SeekStart); err != nil {
		return pos, err
	}

	br := bufio.NewReader(file)
	for {
		line, err := br.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return pos, nil
			}
			return pos, err
		}
		pos += int64(len(line))

		if entry, ok := parseLine(line); ok {
			w.callback(entry)
			w.entriesRead.Add(1)
			w.lastReadTime.Store(time.Now())
		}
	}
}

// Info returns a snapshot of the watcher state
func (w *Watcher) Info() WatcherInfo {
	w.mu.Lock()
	info := WatcherInfo{
		Path:        w.path,
		Size:        w.size,
		Position:    w.position,
		ModTime:     w.modTime,
		EntriesRead: w.entriesRead.Load(),
		Rotations:   w.rotationSeq,
	}
	w.mu.Unlock()

	if lastRead, ok := w.lastReadTime.Load().(time.Time); ok {
		info.LastReadTime = lastRead
	}

	return info
}
