// Package properties loads and merges property files for template
// rendering. Files are merged left to right: a key set by a later file
// replaces the earlier value outright, even when both values are mappings.
//
// Files are parsed by extension: .toml as TOML, everything else as YAML.
package properties

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"

	"github.com/arthur-debert/entrypoint/pkg/errors"
	"github.com/arthur-debert/entrypoint/pkg/logging"
)

// Bag is the merged property data handed to every template under the
// "props" binding. Values are whatever the structured-data parser
// produced: scalars, lists or nested mappings.
type Bag map[string]interface{}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load parses every file in order and merges the results. Zero files
// yields an empty Bag. Any unreadable or unparseable file aborts the
// whole load.
func Load(fs afero.Fs, files ...string) (Bag, error) {
	logger := logging.GetLogger("properties")

	k := koanf.New(".")
	for _, file := range files {
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPropertyParse,
				"cannot read property file %s", file)
		}

		if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(file),
			koanf.WithMergeFunc(topLevelMerge)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrPropertyParse,
				"cannot parse property file %s", file)
		}

		logger.Debug().Str("file", file).Msg("merged property file")
	}

	bag := Bag(k.Raw())
	logger.Debug().Int("files", len(files)).Int("keys", len(bag)).Msg("properties loaded")
	return bag, nil
}

// topLevelMerge replaces keys wholesale instead of koanf's default deep
// merge, matching last-write-wins semantics across property files.
func topLevelMerge(src, dest map[string]interface{}) error {
	for key, value := range src {
		dest[key] = value
	}
	return nil
}

func parserFor(file string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(file), ".toml") {
		return toml.Parser()
	}
	return yaml.Parser()
}
