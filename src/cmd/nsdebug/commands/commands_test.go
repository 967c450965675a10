// FILE: nsdebug/src/cmd/nsdebug/commands/commands_test.go
package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"nsdebug/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureLog = `--- Debug session started at 2024-03-01T08:00:00.000Z ---
{"timestamp":"2024-03-01T08:00:01.000Z","namespace":"performance","message":"render","data":{"duration":10}}
{"timestamp":"2024-03-01T08:00:02.000Z","namespace":"api","message":"Request failed","metadata":{"requestId":"r1"}}
{"timestamp":"2024-03-01T08:00:03.000Z","namespace":"performance","message":"render","data":{"duration":20}}
broken line
{"timestamp":"2024-03-01T08:00:04.000Z","namespace":"db","message":"query","data":{"error":"timeout"}}
{"timestamp":"2024-03-01T08:00:05.000Z","namespace":"performance","message":"render","data":{"duration":30}}
`

type testEnv struct {
	env    *Env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	router *CommandRouter
}

func newTestEnv() *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Env{
		Stdout: stdout,
		Stderr: stderr,
		Config: config.Default(),
		Logger: log.NewLogger(),
	}
	return &testEnv{env: env, stdout: stdout, stderr: stderr, router: NewCommandRouter(env)}
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte(fixtureLog), 0o644))
	return path
}

func TestRoute_ExitCodes(t *testing.T) {
	path := writeFixture(t)

	testCases := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"Success", []string{"analyze", path}, ExitOK, ""},
		{"NoCommand", nil, ExitFailure, "no command"},
		{"UnknownCommand", []string{"explode", path}, ExitUnknownCommand, "unknown command: explode"},
		{"MissingFile", []string{"stats"}, ExitFailure, "missing log file"},
		{"NonexistentFile", []string{"perf", filepath.Join(t.TempDir(), "nope.log")}, ExitFailure, "log file not found"},
		{"TooManyArgs", []string{"errors", path, path}, ExitFailure, "expected one log file"},
		{"BadFlag", []string{"tail", path, "--bogus"}, ExitFailure, "unknown flag"},
		{"BadFlagValue", []string{"tail", path, "--lines", "many"}, ExitFailure, "invalid argument"},
		{"BadTime", []string{"filter", path, "--after", "yesterday"}, ExitFailure, "invalid --after"},
		{"BadFormat", []string{"errors", path, "-f", "yaml"}, ExitFailure, "unknown formatter type"},
		{"FollowCompressed", []string{"tail", path + ".gz", "--follow"}, ExitFailure, "cannot read compressed"},
		{"HelpFlag", []string{"filter", "--help"}, ExitOK, ""},
		{"HelpUnknown", []string{"help", "explode"}, ExitUnknownCommand, "unknown command"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			te := newTestEnv()
			err := te.router.Route(tc.args)

			assert.Equal(t, tc.wantCode, ExitCode(err))
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRoute_UnknownCommandPrintsHelp(t *testing.T) {
	te := newTestEnv()
	_ = te.router.Route([]string{"explode"})

	assert.Contains(t, te.stderr.String(), "Unknown command: explode")
	assert.Contains(t, te.stderr.String(), "Commands:")
	assert.Contains(t, te.stderr.String(), "analyze")
}

func TestPerfCommand(t *testing.T) {
	te := newTestEnv()
	require.NoError(t, te.router.Route([]string{"perf", writeFixture(t)}))

	out := te.stdout.String()
	assert.Contains(t, out, "Performance entries: 3")
	assert.Contains(t, out, "render")
	assert.Contains(t, out, "20.00ms")
	assert.Contains(t, out, "10.00ms")
	assert.Contains(t, out, "30.00ms")
}

func TestErrorsCommand_FileOrder(t *testing.T) {
	te := newTestEnv()
	require.NoError(t, te.router.Route([]string{"errors", writeFixture(t), "--format", "raw"}))

	out := te.stdout.String()
	assert.Contains(t, out, "Errors (2)")
	first := strings.Index(out, "Request failed")
	second := strings.Index(out, "query")
	require.True(t, first >= 0 && second >= 0)
	assert.Less(t, first, second)
}

func TestFilterCommand(t *testing.T) {
	te := newTestEnv()
	err := te.router.Route([]string{
		"filter", writeFixture(t),
		"--namespace", "performance",
		"--after", "2024-03-01T08:00:01Z",
		"-f", "json",
	})
	require.NoError(t, err)

	out := te.stdout.String()
	assert.Contains(t, out, "Filtered entries (2)")
	assert.Equal(t, 2, strings.Count(out, `"namespace":"performance"`))
	assert.NotContains(t, out, `"duration":10}`)
}

func TestTailCommand(t *testing.T) {
	te := newTestEnv()
	require.NoError(t, te.router.Route([]string{"tail", writeFixture(t), "-n", "2"}))

	out := te.stdout.String()
	assert.Contains(t, out, "Last entries (2)")
	assert.Contains(t, out, "db: query")
	assert.NotContains(t, out, "Request failed")
}

func TestTailCommand_ShortFile(t *testing.T) {
	te := newTestEnv()
	require.NoError(t, te.router.Route([]string{"tail", writeFixture(t), "--lines", "100"}))
	assert.Contains(t, te.stdout.String(), "Last entries (5)")
}

func TestTailCommand_FollowStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	te := newTestEnv()
	te.env.Context = ctx
	require.NoError(t, te.router.Route([]string{"tail", writeFixture(t), "--follow", "-n", "1"}))
	assert.Contains(t, te.stdout.String(), "Last entries (1)")

	err := te.router.Route([]string{"tail", "-", "--follow"})
	assert.Equal(t, ExitFailure, ExitCode(err))
}

// syncBuffer lets the test read output while a follow is still writing it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
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

func TestTailCommand_FollowResumesAfterLastCompleteLine(t *testing.T) {
	late := `{"timestamp":"2024-03-01T08:00:06.000Z","namespace":"api","message":"late arrival"}` + "\n"
	path := filepath.Join(t.TempDir(), "debug.log")
	// The sink is halfway through writing the last line
	require.NoError(t, os.WriteFile(path, []byte(fixtureLog+late[:25]), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	te := newTestEnv()
	te.env.Context = ctx
	te.env.Stdout = out

	done := make(chan error, 1)
	go func() { done <- te.router.Route([]string{"tail", path, "--follow", "-n", "1"}) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Last entries (1)")
	}, 2*time.Second, 10*time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(late[25:] + `{"timestamp":"2024-03-01T08:00:07.000Z","namespace":"api","message":"next"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "api: next")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, strings.Count(out.String(), "api: late arrival"))

	cancel()
	assert.NoError(t, <-done)
}

func TestAnalyzeAndStats(t *testing.T) {
	path := writeFixture(t)

	te := newTestEnv()
	require.NoError(t, te.router.Route([]string{"analyze", path}))
	assert.Contains(t, te.stdout.String(), "Total entries: 5")
	assert.Contains(t, te.stdout.String(), "Errors (2)")

	te = newTestEnv()
	require.NoError(t, te.router.Route([]string{"stats", path}))
	assert.Contains(t, te.stdout.String(), "Unique requests: 1")
}

func TestHelpAndVersion(t *testing.T) {
	te := newTestEnv()
	require.NoError(t, te.router.Route([]string{"help", "tail"}))
	assert.Contains(t, te.stdout.String(), "nsdebug tail <file>")

	te = newTestEnv()
	require.NoError(t, te.router.Route([]string{"--version"}))
	assert.Contains(t, te.stdout.String(), "nsdebug")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nsdebug.toml")

	te := newTestEnv()
	require.NoError(t, te.router.Route([]string{"config", "init", "--path", path}))
	assert.FileExists(t, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "buffer_size")

	err = te.router.Route([]string{"config", "init", "--path", path})
	assert.Equal(t, ExitFailure, ExitCode(err))
	require.NoError(t, te.router.Route([]string{"config", "init", "--path", path, "--force"}))
}
