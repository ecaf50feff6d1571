// Package paths resolves template paths declared in a configuration file
// to absolute filesystem locations. Declared paths are relative to the
// directory containing the configuration file, unless they are absolute,
// in which case they are used as-is.
//
// Resolution is pure path arithmetic: no filesystem access happens here,
// and there are no error conditions.
package paths

import (
	"path/filepath"
	"strings"
)

// Resolve returns the absolute path for templatePath as declared in
// configFile. Absolute template paths are returned unchanged; relative
// ones are joined onto the absolute directory of configFile.
func Resolve(configFile, templatePath string) string {
	return ResolveWithPrefix(configFile, templatePath, "")
}

// ResolveWithPrefix behaves like Resolve, but when prefix is non-empty the
// base directory becomes prefix joined with the configuration file's
// directory stripped of its filesystem root. This lets a configuration
// tree rooted at / be addressed as if it lived under prefix instead.
//
//	ResolveWithPrefix("/etc/app/config.yml", "app.conf.j2", "/opt")
//	  -> /opt/etc/app/app.conf.j2
func ResolveWithPrefix(configFile, templatePath, prefix string) string {
	if filepath.IsAbs(templatePath) {
		return templatePath
	}

	var basedir string
	if prefix != "" {
		basedir = filepath.Join(prefix, stripRoot(filepath.Dir(configFile)))
	} else {
		abs, err := filepath.Abs(filepath.Dir(configFile))
		if err != nil {
			// Abs only fails when the working directory is gone;
			// keep the relative directory and let downstream I/O
			// report the real problem.
			abs = filepath.Dir(configFile)
		}
		basedir = abs
	}

	return filepath.Join(basedir, templatePath)
}

// stripRoot removes the filesystem anchor (root separator and, on Windows,
// the volume name) from an absolute path. Relative paths pass through.
func stripRoot(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	path = strings.TrimPrefix(path, filepath.VolumeName(path))
	return strings.TrimLeft(path, string(filepath.Separator))
}
