// Package launch hands the process over to the replacement command once
// rendering is done. On unix the process image is replaced outright, so a
// successful Exec never returns and the launched program owns the pid,
// the file descriptors and the exit status from then on.
package launch

import (
	"os/exec"

	"github.com/arthur-debert/entrypoint/pkg/errors"
	"github.com/arthur-debert/entrypoint/pkg/logging"
)

// Exec launches argv[0] with the full argv, inheriting the current
// environment. It returns an error only when the command cannot be
// located or executed.
func Exec(argv []string) error {
	if len(argv) == 0 {
		return errors.New(errors.ErrLaunch, "no command to launch")
	}

	logger := logging.GetLogger("launch")

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return errors.Wrapf(err, errors.ErrLaunch, "cannot locate command %s", argv[0])
	}

	logger.Debug().Str("path", path).Strs("argv", argv).Msg("replacing process")

	return execProcess(path, argv)
}
