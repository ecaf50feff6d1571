package template

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/entrypoint/pkg/environment"
	"github.com/arthur-debert/entrypoint/pkg/errors"
	"github.com/arthur-debert/entrypoint/pkg/properties"
)

const exampleTemplate = `This is an example template

Environment variable ENV1: {{ env.ENV1 }}
Environment variable ENV2: {{ env.ENV2 | default:"MISSING" }}

Property prop1: {{ props.prop1 }}
Property prop2: {{ props.prop2 | default:"prop2 DEFAULT" }}`

const exampleRendered = `This is an example template

Environment variable ENV1: ENV1 SET
Environment variable ENV2: MISSING

Property prop1: prop1 SET
Property prop2: prop2 DEFAULT`

func newTestRenderer(t *testing.T, templates map[string]string) *Renderer {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range templates {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return NewRenderer(fs, environment.Snapshot{"ENV1": "ENV1 SET"})
}

func TestRender(t *testing.T) {
	r := newTestRenderer(t, map[string]string{"/templates/example.conf.j2": exampleTemplate})

	out, err := r.Render("/templates/example.conf.j2", properties.Bag{"prop1": "prop1 SET"})
	require.NoError(t, err)
	assert.Equal(t, exampleRendered, out)
}

func TestRenderSubstitutesVerbatim(t *testing.T) {
	r := newTestRenderer(t, map[string]string{"/t.j2": "Hello, {{ props.name }}"})

	out, err := r.Render("/t.j2", properties.Bag{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Alice", out)
}

func TestRenderUndefinedVariableIsEmpty(t *testing.T) {
	r := newTestRenderer(t, map[string]string{"/t.j2": "before[{{ props.missing }}]after[{{ env.ALSO_MISSING }}]"})

	out, err := r.Render("/t.j2", properties.Bag{})
	require.NoError(t, err)
	assert.Equal(t, "before[]after[]", out)
}

func TestRenderNilProperties(t *testing.T) {
	r := newTestRenderer(t, map[string]string{"/t.j2": "env says {{ env.ENV1 }}{{ props.anything }}"})

	out, err := r.Render("/t.j2", nil)
	require.NoError(t, err)
	assert.Equal(t, "env says ENV1 SET", out)
}

func TestRenderFilters(t *testing.T) {
	r := newTestRenderer(t, map[string]string{"/t.j2": "Property prop1: {{ props.prop1 | lower }}"})

	out, err := r.Render("/t.j2", properties.Bag{"prop1": "prop1 SET"})
	require.NoError(t, err)
	assert.Equal(t, "Property prop1: prop1 set", out)
}

func TestRenderTemplateNotFound(t *testing.T) {
	r := newTestRenderer(t, nil)

	_, err := r.Render("/nope.j2", properties.Bag{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
}

func TestRenderSyntaxError(t *testing.T) {
	r := newTestRenderer(t, map[string]string{"/t.j2": "{% if unclosed %}no endif"})

	_, err := r.Render("/t.j2", properties.Bag{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateSyntax))
}
