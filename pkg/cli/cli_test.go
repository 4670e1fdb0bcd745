package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/getmockd/bookstore/pkg/cliconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for use by a running command and the test.
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

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		cliconfig.EnvConfig, cliconfig.EnvHost, cliconfig.EnvPort, cliconfig.EnvMetricsPort,
		cliconfig.EnvReadTimeout, cliconfig.EnvWriteTimeout, cliconfig.EnvShutdownTimeout,
		cliconfig.EnvLogLevel, cliconfig.EnvLogFormat, cliconfig.EnvSeed,
	} {
		t.Setenv(key, "")
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "bookstore "), out)

	out, err = runCommand(t, "version", "--json")
	require.NoError(t, err)

	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.NotEmpty(t, v.Go)
	assert.NotEmpty(t, v.OS)
}

func TestConfigCommand_Defaults(t *testing.T) {
	clearEnv(t)

	out, err := runCommand(t, "config", "--json")
	require.NoError(t, err)

	var got ConfigOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, cliconfig.DefaultPort, got.Config.Port)
	assert.True(t, got.Config.Seed)
	assert.Equal(t, cliconfig.SourceDefault, got.Sources["port"])
}

func TestConfigCommand_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bookstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 4000\nlogLevel: warn\nseed: false\n"), 0o600))
	t.Setenv(cliconfig.EnvLogLevel, "debug")

	out, err := runCommand(t, "config", "--json", "-c", path, "--port", "5000")
	require.NoError(t, err)

	var got ConfigOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 5000, got.Config.Port)
	assert.Equal(t, cliconfig.SourceFlag, got.Sources["port"])
	assert.Equal(t, "debug", got.Config.LogLevel)
	assert.Equal(t, cliconfig.SourceEnv, got.Sources["logLevel"])
	assert.False(t, got.Config.Seed)
	assert.Equal(t, cliconfig.SourceFile, got.Sources["seed"])
}

func TestConfigCommand_YAML(t *testing.T) {
	clearEnv(t)

	out, err := runCommand(t, "config", "--log-format", "json")
	require.NoError(t, err)

	assert.Contains(t, out, "# Effective configuration")
	assert.Contains(t, out, "port: 3000")
	assert.Contains(t, out, "logFormat: json")
	assert.Regexp(t, regexp.MustCompile(`# logFormat\s+flag`), out)
}

func TestConfigCommand_Invalid(t *testing.T) {
	clearEnv(t)

	_, err := runCommand(t, "config", "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = runCommand(t, "config", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigWarnings(t *testing.T) {
	cfg := cliconfig.NewDefault()
	assert.Empty(t, configWarnings(cfg))

	cfg.LogLevel = "WARNING"
	cfg.LogFormat = "JSON"
	assert.Empty(t, configWarnings(cfg))

	cfg.LogLevel = "verbose"
	cfg.LogFormat = "logfmt"
	cfg.Sources["logLevel"] = cliconfig.SourceEnv
	cfg.Sources["logFormat"] = cliconfig.SourceFlag
	assert.Equal(t, []string{
		`unknown log level "verbose" (from env), using info`,
		`unknown log format "logfmt" (from flag), using text`,
	}, configWarnings(cfg))
}

func TestConfigCommand_WarnsOnUnknownLogLevel(t *testing.T) {
	clearEnv(t)

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"config", "--log-level", "verbose"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Warning: unknown log level \"verbose\" (from flag), using info\n", errOut.String())
	assert.Contains(t, out.String(), "logLevel: verbose")
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	_, err := runCommand(t, "extra")
	assert.Error(t, err)
}

func TestServeCommand(t *testing.T) {
	for _, args := range [][]string{
		{"serve", "--host", "127.0.0.1", "--port", "0"},
		{"--host", "127.0.0.1", "--port", "0"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			clearEnv(t)

			cmd := NewRootCommand()
			out := &syncBuffer{}
			cmd.SetOut(out)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(args)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			done := make(chan error, 1)
			go func() { done <- cmd.ExecuteContext(ctx) }()

			re := regexp.MustCompile(`running on http://localhost:(\d+)`)
			var port string
			require.Eventually(t, func() bool {
				if m := re.FindStringSubmatch(out.String()); m != nil {
					port = m[1]
					return true
				}
				return false
			}, 5*time.Second, 10*time.Millisecond)

			assert.Contains(t, out.String(), "Available endpoints:")
			assert.Contains(t, out.String(), "DELETE /books/:id - Delete book")

			resp, err := http.Get("http://127.0.0.1:" + port + "/books")
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), `"count":3`)

			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("serve did not shut down")
			}
			assert.Contains(t, out.String(), "Shutting down...")
		})
	}
}

func TestPrintStartupMessage(t *testing.T) {
	var buf bytes.Buffer
	printStartupMessage(&buf, "[::]:3000", "")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Books API server is running on http://localhost:3000", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "Available endpoints:", lines[2])
	assert.Equal(t, "GET    /books     - Get all books", lines[3])

	buf.Reset()
	printStartupMessage(&buf, "127.0.0.1:3000", "127.0.0.1:9090")
	assert.Contains(t, buf.String(), "Metrics available on http://localhost:9090/metrics")
}
