// FILE: nsdebug/src/internal/reader/reader.go
package reader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"nsdebug/src/internal/core"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrNotFound is returned when the log file does not exist
var ErrNotFound = errors.New("log file not found")

// Scan streams r line by line and calls fn for every line that decodes as an
// entry. Lines not starting with '{' (session markers) and lines that fail to
// decode are skipped. An error returned by fn stops the scan and is returned
// unchanged.
func Scan(r io.Reader, fn func(core.LogEntry) error) error {
	_, err := scan(r, fn, true)
	return err
}

// scan returns the offset just past the last newline it consumed. With
// trailing set, a final line lacking its newline is decoded as well.
func scan(r io.Reader, fn func(core.LogEntry) error, trailing bool) (int64, error) {
	br := bufio.NewReader(r)
	var offset int64

	for {
		line, readErr := br.ReadBytes('\n')
		complete := readErr == nil
		if len(line) > 0 && (complete || trailing) {
			if entry, ok := parseLine(line); ok {
				if err := fn(entry); err != nil {
					return offset, err
				}
			}
		}
		if complete {
			offset += int64(len(line))
			continue
		}

		if errors.Is(readErr, io.EOF) {
			return offset, nil
		}
		return offset, fmt.Errorf("failed to read log: %w", readErr)
	}
}

func parseLine(line []byte) (core.LogEntry, bool) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return core.LogEntry{}, false
	}

	var entry core.LogEntry
	if err := json.Unmarshal(trimmed, &entry); err != nil {
		return core.LogEntry{}, false
	}
	return entry, true
}

// Open returns a reader over the file's decoded content. Files ending in .gz
// or .zst are decompressed; "-" reads standard input.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return &stackedCloser{Reader: gz, closers: []io.Closer{gz, file}}, nil

	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return &stackedCloser{Reader: dec, closers: []io.Closer{zstdCloser{dec}, file}}, nil
	}

	return file, nil
}

// ReadAll returns every entry in the file, in file order
func ReadAll(path string) ([]core.LogEntry, error) {
	entries, _, err := readAll(path, true)
	return entries, err
}

// ReadComplete returns the entries on complete lines and the byte offset
// just past the last of them, where following the file should resume. A
// line still being written is left out.
func ReadComplete(path string) ([]core.LogEntry, int64, error) {
	return readAll(path, false)
}

func readAll(path string, trailing bool) ([]core.LogEntry, int64, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	entries := make([]core.LogEntry, 0)
	offset, err := scan(rc, func(entry core.LogEntry) error {
		entries = append(entries, entry)
		return nil
	}, trailing)
	if err != nil {
		return nil, 0, err
	}
	return entries, offset, nil
}

// IsCompressed reports whether Open decompresses path
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".gz") || strings.HasSuffix(path, ".zst")
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// zstd.Decoder.Close returns nothing
type zstdCloser struct {
	dec *zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.dec.Close()
	return nil
}
