package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/confjson/internal/app"
	"github.com/specialistvlad/confjson/internal/ctxlog"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a background context carrying a logger that discards
// everything unless CONFJSON_TEST_LOGS=true, in which case records go to the
// test log.
func Context(t *testing.T) context.Context {
	t.Helper()
	if os.Getenv("CONFJSON_TEST_LOGS") == "true" {
		return ctxlog.WithLogger(context.Background(), ctxlog.New("debug", "text", testWriter{t}))
	}
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// WriteFiles writes files (relative path → content) under a fresh temporary
// directory and returns its path.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return root
}

// HarnessResult holds the outcome of starting an App in a test.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// NewTestApp writes the manifest files to a temporary directory and starts an
// App over it with debug logging captured. configure may adjust the config
// before the App is built.
func NewTestApp(t *testing.T, files map[string]string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	cfg := app.Config{
		ManifestPaths: []string{WriteFiles(t, files)},
		LogLevel:      "debug",
		LogFormat:     "text",
	}
	if configure != nil {
		configure(&cfg)
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp, err := app.New(logBuffer, validated)

	if os.Getenv("CONFJSON_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       err,
		App:       testApp,
	}
}
