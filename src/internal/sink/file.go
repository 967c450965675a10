// FILE: nsdebug/src/internal/sink/file.go
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"nsdebug/src/internal/config"
	"nsdebug/src/internal/core"
	"nsdebug/src/internal/format"
	"nsdebug/src/internal/mode"
	"nsdebug/src/internal/value"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// Pending entries kept while flushes fail, as a multiple of the buffer size
const maxPendingFactor = 10

// FileSink buffers accepted entries and appends them to a JSON Lines file
type FileSink struct {
	config    *config.OutputConfig
	policy    mode.Policy
	formatter *format.JSONFormatter
	logger    *log.Logger
	limiter   *rate.Limiter
	threshold int
	now       func() time.Time

	// Guards buffer, target and requestID; held for the whole flush
	mu        sync.Mutex
	buffer    []core.LogEntry
	target    io.WriteCloser
	requestID string
	closed    bool

	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
	startTime time.Time

	// Statistics
	totalAccepted   atomic.Uint64
	totalRejected   atomic.Uint64
	totalWritten    atomic.Uint64
	totalDropped    atomic.Uint64
	flushErrors     atomic.Uint64
	suppressedCount atomic.Uint64
	lastProcessed   atomic.Value // time.Time
	lastFlush       atomic.Value // time.Time
}

// NewFileSink opens the target file and writes a session marker. A target
// that cannot be opened is reported to the logger; the sink then keeps
// accepting entries and discards them on flush.
func NewFileSink(opts *config.OutputConfig, policy mode.Policy, logger *log.Logger) *FileSink {
	threshold := int(opts.BufferSize)
	if threshold <= 0 {
		threshold = core.DefaultBufferSize
	}

	var limiter *rate.Limiter
	if opts.ErrorReportsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.ErrorReportsPerSec), 1)
	}

	// JSON formatter has no failure mode for a nil options struct
	formatter, _ := format.NewJSONFormatter(nil, logger)

	fs := &FileSink{
		config:    opts,
		policy:    policy,
		formatter: formatter,
		logger:    logger,
		limiter:   limiter,
		threshold: threshold,
		now:       time.Now,
		buffer:    make([]core.LogEntry, 0, threshold),
		done:      make(chan struct{}),
		startTime: time.Now(),
	}
	fs.lastProcessed.Store(time.Time{})
	fs.lastFlush.Store(time.Time{})

	if err := fs.open(opts.Path); err != nil {
		logger.Error("msg", "Failed to initialize debug log file, file output disabled",
			"component", "file_sink",
			"path", opts.Path,
			"error", err)
	}

	return fs
}

func (fs *FileSink) open(path string) error {
	if path == "" {
		return errors.New("empty path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	marker := fmt.Sprintf(core.SessionMarkerFormat, core.FormatTimestamp(fs.now()))
	if _, err := file.WriteString(marker); err != nil {
		file.Close()
		return fmt.Errorf("failed to write session marker: %w", err)
	}

	fs.target = file
	return nil
}

// Start launches the periodic flush loop
func (fs *FileSink) Start(ctx context.Context) error {
	fs.startOnce.Do(func() {
		fs.wg.Add(1)
		go fs.flushLoop(ctx)
	})

	fs.logger.Info("msg", "File sink started",
		"component", "file_sink",
		"path", fs.config.Path,
		"mode", fs.policy.Name(),
		"buffer_size", fs.threshold)
	return nil
}

// Stop ends the flush loop, performs a final flush and closes the file.
// Calls after the first are no-ops.
func (fs *FileSink) Stop() error {
	var err error

	fs.stopOnce.Do(func() {
		close(fs.done)
		fs.wg.Wait()

		fs.mu.Lock()
		defer fs.mu.Unlock()

		flushErr := fs.flushLocked()
		if flushErr != nil {
			fs.totalDropped.Add(uint64(len(fs.buffer)))
			clear(fs.buffer)
			fs.buffer = fs.buffer[:0]
		}
		fs.closed = true

		var closeErr error
		if fs.target != nil {
			if cerr := fs.target.Close(); cerr != nil {
				closeErr = fmt.Errorf("failed to close log file: %w", cerr)
				fs.logger.Error("msg", "Error closing debug log file",
					"component", "file_sink",
					"path", fs.config.Path,
					"error", cerr)
			}
			fs.target = nil
		}

		err = errors.Join(flushErr, closeErr)
		fs.logger.Info("msg", "File sink stopped",
			"component", "file_sink",
			"written", fs.totalWritten.Load(),
			"dropped", fs.totalDropped.Load())
	})

	return err
}

// Write offers an event to the mode policy and buffers it when accepted.
// The correlation id comes from ctx, falling back to SetCorrelationID.
func (fs *FileSink) Write(ctx context.Context, namespace, message string, data *value.Value) bool {
	if !fs.policy.Accept(namespace, data) {
		fs.totalRejected.Add(1)
		return false
	}

	var shaped *value.Value
	if data != nil {
		if v, ok := fs.policy.Shape(*data); ok {
			shaped = &v
		}
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		fs.totalDropped.Add(1)
		return false
	}

	requestID, ok := core.RequestIDFrom(ctx)
	if !ok {
		requestID = fs.requestID
	}

	fs.buffer = append(fs.buffer, core.NewLogEntry(fs.now(), namespace, message, shaped, requestID))
	fs.totalAccepted.Add(1)
	fs.lastProcessed.Store(time.Now())

	if len(fs.buffer) >= fs.threshold {
		if err := fs.flushLocked(); err != nil {
			fs.trimPendingLocked()
		}
	}

	return true
}

// Flush appends all buffered entries to the file
func (fs *FileSink) Flush() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.flushLocked()
}

// flushLocked requires fs.mu. The buffer is cleared only after the batch
// was written in full; a failed write leaves it for the next attempt.
func (fs *FileSink) flushLocked() error {
	if len(fs.buffer) == 0 {
		return nil
	}

	if fs.target == nil {
		fs.totalDropped.Add(uint64(len(fs.buffer)))
		clear(fs.buffer)
		fs.buffer = fs.buffer[:0]
		return nil
	}

	batch, skipped, err := fs.formatter.FormatBatch(fs.buffer)
	if err != nil {
		fs.totalDropped.Add(uint64(len(fs.buffer)))
		fs.reportError("Failed to encode buffered entries", err, len(fs.buffer))
		clear(fs.buffer)
		fs.buffer = fs.buffer[:0]
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	if _, err := fs.target.Write(batch); err != nil {
		fs.flushErrors.Add(1)
		fs.reportError("Failed to flush debug log entries", err, len(fs.buffer))
		return fmt.Errorf("failed to flush %d entries: %w", len(fs.buffer), err)
	}

	fs.totalWritten.Add(uint64(len(fs.buffer) - skipped))
	fs.totalDropped.Add(uint64(skipped))
	fs.lastFlush.Store(time.Now())
	clear(fs.buffer)
	fs.buffer = fs.buffer[:0]
	return nil
}

// trimPendingLocked drops the oldest entries once failed flushes let the
// buffer grow past its ceiling
func (fs *FileSink) trimPendingLocked() {
	limit := fs.threshold * maxPendingFactor
	if excess := len(fs.buffer) - limit; excess > 0 {
		fs.totalDropped.Add(uint64(excess))
		fs.buffer = append(fs.buffer[:0], fs.buffer[excess:]...)
	}
}

func (fs *FileSink) reportError(msg string, err error, pending int) {
	if fs.limiter != nil && !fs.limiter.Allow() {
		fs.suppressedCount.Add(1)
		return
	}

	fs.logger.Error("msg", msg,
		"component", "file_sink",
		"path", fs.config.Path,
		"pending", pending,
		"suppressed_reports", fs.suppressedCount.Swap(0),
		"error", err)
}

func (fs *FileSink) flushLoop(ctx context.Context) {
	defer fs.wg.Done()

	ticker := time.NewTicker(fs.config.FlushInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Failures are reported inside flushLocked
			_ = fs.Flush()
		case <-ctx.Done():
			return
		case <-fs.done:
			return
		}
	}
}

// SetCorrelationID sets the request id attached to later writes that carry
// none in their context. Buffered entries keep their value.
func (fs *FileSink) SetCorrelationID(id string) {
	fs.mu.Lock()
	fs.requestID = id
	fs.mu.Unlock()
}

// ClearCorrelationID removes the default request id
func (fs *FileSink) ClearCorrelationID() {
	fs.SetCorrelationID("")
}

// Available reports whether the target file is open
func (fs *FileSink) Available() bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.target != nil
}

// Pending returns the number of buffered entries
func (fs *FileSink) Pending() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.buffer)
}

func (fs *FileSink) GetStats() SinkStats {
	lastProc, _ := fs.lastProcessed.Load().(time.Time)
	lastFlush, _ := fs.lastFlush.Load().(time.Time)

	return SinkStats{
		Type:           "file",
		TotalProcessed: fs.totalAccepted.Load(),
		StartTime:      fs.startTime,
		LastProcessed:  lastProc,
		LastFlush:      lastFlush,
		Details: map[string]any{
			"path":         fs.config.Path,
			"mode":         fs.policy.Name(),
			"available":    fs.Available(),
			"pending":      fs.Pending(),
			"rejected":     fs.totalRejected.Load(),
			"written":      fs.totalWritten.Load(),
			"dropped":      fs.totalDropped.Load(),
			"flush_errors": fs.flushErrors.Load(),
		},
	}
}
