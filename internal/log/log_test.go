package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { _ = Close() })
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestInfo_WritesCategoryAndFields(t *testing.T) {
	buf := captureJSON(t)

	Info(CatGit, "Created release branch", "branch", "release/1.4.0", "commits", 3)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	require.Equal(t, "info", lines[0]["level"])
	require.Equal(t, "git", lines[0]["cat"])
	require.Equal(t, "Created release branch", lines[0]["message"])
	require.Equal(t, "release/1.4.0", lines[0]["branch"])
	require.EqualValues(t, 3, lines[0]["commits"])
}

func TestErrorErr_AttachesError(t *testing.T) {
	buf := captureJSON(t)

	ErrorErr(CatBuild, "Image build failed", errors.New("exit status 1"), "image", "kiln/data-collector:1.4.0")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	require.Equal(t, "error", lines[0]["level"])
	require.Equal(t, "exit status 1", lines[0]["error"])
	require.Equal(t, "kiln/data-collector:1.4.0", lines[0]["image"])
}

func TestOddKeyValues_MarksMissing(t *testing.T) {
	buf := captureJSON(t)

	Warn(CatConfig, "dangling key", "orphan")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	require.Equal(t, "(MISSING)", lines[0]["orphan"])
}

func TestBeforeInit_Discards(t *testing.T) {
	require.NoError(t, Close())
	// Must not panic and must not write anywhere observable.
	Debug(CatPipeline, "nothing")
	Error(CatPipeline, "nothing either")
}

func TestInit_LevelAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "release.log")
	var console bytes.Buffer

	require.NoError(t, Init(Options{Level: "warn", File: path, Console: &console, NoColor: true}))
	Info(CatPipeline, "filtered out")
	Warn(CatPipeline, "kept", "step", "Tagged")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "filtered out")
	require.Contains(t, string(data), `"step":"Tagged"`)
	require.Contains(t, console.String(), "kept")
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	err := Init(Options{Level: "loud"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "loud")
}
