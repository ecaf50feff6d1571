// Package template renders template files with Django/Jinja2 syntax via
// pongo2. Every template sees exactly two bindings: "env", the process
// environment snapshot, and "props", the merged property bag. A variable
// that is not defined renders as empty text, which is pongo2's default;
// templates that want a fallback use the default filter, e.g.
// {{ env.PORT | default:"8080" }}.
package template

import (
	"os"

	"github.com/flosch/pongo2/v6"
	"github.com/spf13/afero"

	"github.com/arthur-debert/entrypoint/pkg/environment"
	"github.com/arthur-debert/entrypoint/pkg/errors"
	"github.com/arthur-debert/entrypoint/pkg/logging"
	"github.com/arthur-debert/entrypoint/pkg/properties"
)

// Renderer renders template files against a fixed environment snapshot.
type Renderer struct {
	fs  afero.Fs
	env environment.Snapshot
}

// NewRenderer creates a Renderer reading templates from fs and exposing
// env to every template.
func NewRenderer(fs afero.Fs, env environment.Snapshot) *Renderer {
	return &Renderer{fs: fs, env: env}
}

// Render loads the template at templatePath and renders it with the given
// properties.
func (r *Renderer) Render(templatePath string, props properties.Bag) (string, error) {
	logger := logging.GetLogger("template")

	data, err := afero.ReadFile(r.fs, templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrTemplateNotFound,
				"template %s does not exist", templatePath)
		}
		return "", errors.Wrapf(err, errors.ErrTemplateNotFound,
			"cannot read template %s", templatePath)
	}

	tpl, err := pongo2.FromBytes(data)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateSyntax,
			"cannot parse template %s", templatePath)
	}

	if props == nil {
		props = properties.Bag{}
	}

	out, err := tpl.Execute(pongo2.Context{
		"env":   r.env,
		"props": props,
	})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateSyntax,
			"cannot render template %s", templatePath)
	}

	logger.Debug().
		Str("template", templatePath).
		Int("bytes", len(out)).
		Msg("rendered template")

	return out, nil
}
