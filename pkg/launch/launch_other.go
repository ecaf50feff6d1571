//go:build !unix

package launch

import (
	"os"
	"os/exec"

	"github.com/arthur-debert/entrypoint/pkg/errors"
)

// execProcess approximates process replacement on platforms without an
// exec primitive: the command runs as a child with inherited stdio and
// environment, and its exit status becomes ours.
func execProcess(path string, argv []string) error {
	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrLaunch, "cannot run %s", path)
	}

	os.Exit(0)
	return nil
}
