// FILE: nsdebug/src/internal/core/const.go
package core

import "time"

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Writer defaults
const (
	DefaultBufferSize    = 100
	DefaultFlushInterval = time.Second
	DefaultMode          = "minimal"
	DefaultFileName      = "debug.log"
	DefaultDirName       = "nsdebug"
)

// Analysis defaults
const (
	DefaultFilterLimit = 50
	DefaultTailLines   = 50
)

// SessionMarkerFormat is the non-JSON line written when a file is opened
const SessionMarkerFormat = "--- Debug session started at %s ---\n"
