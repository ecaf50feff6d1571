//go:build unix

package launch

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/arthur-debert/entrypoint/pkg/errors"
)

// execProcess replaces the current process image. It only returns on
// failure.
func execProcess(path string, argv []string) error {
	err := unix.Exec(path, argv, os.Environ())
	return errors.Wrapf(err, errors.ErrLaunch, "cannot exec %s", path)
}
