// Package config loads the template configuration file: a YAML document
// whose top level is a mapping of template source path to destination path.
// Source paths are resolved relative to the configuration file itself, so a
// config can travel with its templates.
package config

import (
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/entrypoint/pkg/errors"
	"github.com/arthur-debert/entrypoint/pkg/logging"
	"github.com/arthur-debert/entrypoint/pkg/paths"
)

// Entry is one template declaration: a resolved absolute source path and
// the destination the rendered output goes to.
type Entry struct {
	Source string
	Dest   string
}

// TemplateMapping holds the config file's declarations in declaration
// order. It is built once per invocation and not mutated afterwards.
type TemplateMapping []Entry

// Load reads and parses configFile, resolving every source path against
// the configuration file's directory.
func Load(fs afero.Fs, configFile string) (TemplateMapping, error) {
	return LoadWithPrefix(fs, configFile, "")
}

// LoadWithPrefix is Load with a root-prefix override fed through to path
// resolution (see paths.ResolveWithPrefix).
//
// The top level of the file must be a mapping of string to string. The
// shape is validated eagerly, at load time, so a bad config fails before
// any template is touched.
func LoadWithPrefix(fs afero.Fs, configFile, prefix string) (TemplateMapping, error) {
	logger := logging.GetLogger("config")

	data, err := afero.ReadFile(fs, configFile)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"cannot read config file %s", configFile)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"cannot parse config file %s", configFile)
	}

	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrConfigShape,
			"config file %s must contain a mapping of template path to destination path", configFile)
	}

	root := doc.Content[0]
	mapping := make(TemplateMapping, 0, len(root.Content)/2)
	seen := make(map[string]int)

	// Mapping nodes store keys and values as alternating children.
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Tag == "!!str" && value.Tag == "!!str" {
			source := paths.ResolveWithPrefix(configFile, key.Value, prefix)
			if at, dup := seen[source]; dup {
				// Same source declared twice: later destination wins,
				// declaration position stays that of the first.
				mapping[at].Dest = value.Value
				continue
			}
			seen[source] = len(mapping)
			mapping = append(mapping, Entry{Source: source, Dest: value.Value})
			continue
		}
		return nil, errors.Newf(errors.ErrConfigShape,
			"config file %s must map string template paths to string destinations (line %d)",
			configFile, key.Line)
	}

	logger.Debug().
		Str("configFile", configFile).
		Str("prefix", prefix).
		Int("templates", len(mapping)).
		Msg("loaded template configuration")

	return mapping, nil
}
