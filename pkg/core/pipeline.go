// Package core orchestrates the rendering pipeline: load the template
// configuration, merge the property files, render every template and
// collect the output per destination.
package core

import (
	"github.com/spf13/afero"

	"github.com/arthur-debert/entrypoint/pkg/config"
	"github.com/arthur-debert/entrypoint/pkg/environment"
	"github.com/arthur-debert/entrypoint/pkg/logging"
	"github.com/arthur-debert/entrypoint/pkg/properties"
	"github.com/arthur-debert/entrypoint/pkg/template"
)

// Options describes one pipeline invocation.
type Options struct {
	// ConfigFile is the template configuration file.
	ConfigFile string

	// PropertyFiles are merged left to right into the property bag.
	PropertyFiles []string

	// ExtraProps are merged on top of the loaded property files, so they
	// override any file-supplied key.
	ExtraProps properties.Bag

	// RootPrefix optionally rebases template resolution, see
	// paths.ResolveWithPrefix.
	RootPrefix string
}

// Pipeline renders all templates declared by a configuration file.
type Pipeline struct {
	fs  afero.Fs
	env environment.Snapshot
}

// NewPipeline creates a Pipeline reading and rendering through fs with the
// given environment snapshot exposed to templates.
func NewPipeline(fs afero.Fs, env environment.Snapshot) *Pipeline {
	return &Pipeline{fs: fs, env: env}
}

// Run loads the configuration and properties, renders every template in
// declaration order and returns the collected output. The first failure
// aborts the run; nothing is written here, writing is the caller's step.
func (p *Pipeline) Run(opts Options) (*RenderedOutput, error) {
	logger := logging.GetLogger("core")

	mapping, err := config.LoadWithPrefix(p.fs, opts.ConfigFile, opts.RootPrefix)
	if err != nil {
		return nil, err
	}

	bag, err := properties.Load(p.fs, opts.PropertyFiles...)
	if err != nil {
		return nil, err
	}
	for key, value := range opts.ExtraProps {
		bag[key] = value
	}

	renderer := template.NewRenderer(p.fs, p.env)
	output := NewRenderedOutput()

	// Two sources mapping to one destination: the later render wins,
	// same last-write-wins rule as the property merge.
	for _, entry := range mapping {
		text, err := renderer.Render(entry.Source, bag)
		if err != nil {
			return nil, err
		}
		output.Set(entry.Dest, text)
	}

	logger.Info().
		Str("configFile", opts.ConfigFile).
		Int("templates", len(mapping)).
		Int("destinations", output.Len()).
		Msg("rendering pipeline completed")

	return output, nil
}
