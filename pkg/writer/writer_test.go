package writer

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/entrypoint/pkg/core"
)

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteNewFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, &bytes.Buffer{})

	written, err := w.Write("/out/app.conf", "content", false)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "content", readFile(t, fs, "/out/app.conf"))
}

func TestWriteSkipsExistingWithoutOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/app.conf", []byte("original"), 0644))
	w := NewWriter(fs, &bytes.Buffer{})

	written, err := w.Write("/out/app.conf", "new content", false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, "original", readFile(t, fs, "/out/app.conf"))
}

func TestWriteOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/app.conf", []byte("original"), 0644))
	w := NewWriter(fs, &bytes.Buffer{})

	written, err := w.Write("/out/app.conf", "new content", true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "new content", readFile(t, fs, "/out/app.conf"))
}

func newOutput(files ...core.RenderedFile) *core.RenderedOutput {
	output := core.NewRenderedOutput()
	for _, f := range files {
		output.Set(f.Path, f.Content)
	}
	return output
}

func TestWriteAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	var report bytes.Buffer
	w := NewWriter(fs, &report)

	err := w.WriteAll(newOutput(
		core.RenderedFile{Path: "/out/one.conf", Content: "one"},
		core.RenderedFile{Path: "/out/two.conf", Content: "two"},
	), false, false)
	require.NoError(t, err)

	assert.Equal(t, "one", readFile(t, fs, "/out/one.conf"))
	assert.Equal(t, "two", readFile(t, fs, "/out/two.conf"))
	assert.Equal(t, "Rendering templates\n/out/one.conf: OK\n/out/two.conf: OK\n", report.String())
}

func TestWriteAllReportsSkipped(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/one.conf", []byte("keep me"), 0644))
	var report bytes.Buffer
	w := NewWriter(fs, &report)

	err := w.WriteAll(newOutput(
		core.RenderedFile{Path: "/out/one.conf", Content: "one"},
		core.RenderedFile{Path: "/out/two.conf", Content: "two"},
	), false, false)
	require.NoError(t, err)

	assert.Equal(t, "keep me", readFile(t, fs, "/out/one.conf"))
	assert.Equal(t, "two", readFile(t, fs, "/out/two.conf"))
	assert.Contains(t, report.String(), "/out/one.conf: Skipped")
	assert.Contains(t, report.String(), "/out/two.conf: OK")
}

func TestWriteAllDryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	var report bytes.Buffer
	w := NewWriter(fs, &report)

	err := w.WriteAll(newOutput(
		core.RenderedFile{Path: "/out/app.conf", Content: "line one\nline two"},
	), true, false)
	require.NoError(t, err)

	// Nothing written in dry-run mode
	exists, err := afero.Exists(fs, "/out/app.conf")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Equal(t, "Rendering templates\n/out/app.conf: \n  line one\n  line two\n\n", report.String())
}

func TestWriteAllIdempotentWithoutOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	output := newOutput(core.RenderedFile{Path: "/out/app.conf", Content: "first run"})

	first := NewWriter(fs, &bytes.Buffer{})
	require.NoError(t, first.WriteAll(output, false, false))

	// Second run renders different content but must not clobber
	var report bytes.Buffer
	second := NewWriter(fs, &report)
	require.NoError(t, second.WriteAll(
		newOutput(core.RenderedFile{Path: "/out/app.conf", Content: "second run"}), false, false))

	assert.Equal(t, "first run", readFile(t, fs, "/out/app.conf"))
	assert.Contains(t, report.String(), "/out/app.conf: Skipped")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", indent("a\n\nb", "  "))
	assert.Equal(t, "", indent("", "  "))
}
