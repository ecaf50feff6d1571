// Package environment provides a read-only snapshot of the process
// environment. Templates see the snapshot under the "env" binding, and
// tests substitute a fixed one instead of mutating the real environment.
package environment

import (
	"os"
	"strings"
)

// Snapshot is a point-in-time copy of environment variables. It is never
// written back to the process environment.
type Snapshot map[string]string

// Capture snapshots the current process environment.
func Capture() Snapshot {
	environ := os.Environ()
	snapshot := make(Snapshot, len(environ))
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		snapshot[name] = value
	}
	return snapshot
}

// Get returns the value of a variable, or "" when unset.
func (s Snapshot) Get(name string) string {
	return s[name]
}
