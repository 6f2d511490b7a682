package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command against an isolated config
// directory and returns the combined output. Flag state is reset so
// tests do not leak into each other.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	uploadDryRun = false
	uploadThreshold = 0

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", testConfigDir(t)}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// testConfigDir returns a fresh config directory.
func testConfigDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.MkdirAll(dir, 0700))
	return dir
}

// writeConfig writes a config.toml into a fresh config directory and
// returns the directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := testConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))
	return dir
}

// executeWithConfig is executeCommand against a prepared config dir.
func executeWithConfig(t *testing.T, configDir, stdin string, args ...string) (string, error) {
	t.Helper()

	uploadDryRun = false
	uploadThreshold = 0

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", configDir}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// writePayload writes an OCR payload file and returns its path.
func writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
