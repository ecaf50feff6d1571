// Package writer persists rendered output to destination files and
// produces the human-readable report of what happened to each one.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/entrypoint/pkg/core"
	"github.com/arthur-debert/entrypoint/pkg/errors"
	"github.com/arthur-debert/entrypoint/pkg/logging"
)

// Writer writes rendered files through fs and reports to out.
type Writer struct {
	fs  afero.Fs
	out io.Writer
}

// NewWriter creates a Writer. The report goes to out, one line per
// destination, so it reads naturally in container logs.
func NewWriter(fs afero.Fs, out io.Writer) *Writer {
	return &Writer{fs: fs, out: out}
}

// Write writes content to destPath. When the destination already exists
// and overwrite is off the write is skipped and Write reports false; this
// is a defined outcome, not an error.
func (w *Writer) Write(destPath, content string, overwrite bool) (bool, error) {
	if !overwrite {
		exists, err := afero.Exists(w.fs, destPath)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrFileWrite,
				"cannot stat destination %s", destPath)
		}
		if exists {
			return false, nil
		}
	}

	if err := afero.WriteFile(w.fs, destPath, []byte(content), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite,
			"cannot write destination %s", destPath)
	}
	return true, nil
}

// WriteAll processes every rendered file in order. In dry-run mode nothing
// touches the filesystem and each destination is printed with its content
// indented; otherwise each file is written via Write and reported as OK or
// Skipped.
func (w *Writer) WriteAll(output *core.RenderedOutput, dryRun, overwrite bool) error {
	logger := logging.GetLogger("writer")

	fmt.Fprintln(w.out, "Rendering templates")

	for _, file := range output.Files() {
		fmt.Fprintf(w.out, "%s: ", file.Path)

		if dryRun {
			fmt.Fprintf(w.out, "\n%s\n\n", indent(file.Content, "  "))
			continue
		}

		written, err := w.Write(file.Path, file.Content, overwrite)
		if err != nil {
			fmt.Fprintln(w.out, "Failed")
			return err
		}

		if written {
			fmt.Fprintln(w.out, "OK")
			logger.Debug().Str("path", file.Path).Int("bytes", len(file.Content)).Msg("wrote destination")
		} else {
			fmt.Fprintln(w.out, "Skipped")
			logger.Debug().Str("path", file.Path).Msg("destination exists, skipped")
		}
	}

	return nil
}

// indent prefixes every non-empty line of text with prefix.
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
