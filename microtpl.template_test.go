package microtpl

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRender(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		data     map[string]any
		expected string
	}{
		{
			name:     "literal round-trip",
			source:   "nothing to substitute",
			data:     nil,
			expected: "nothing to substitute",
		},
		{
			name:     "substitution with surrounding whitespace preserved",
			source:   " {{.a}} {{.b}} {{.a}} ",
			data:     map[string]any{"a": "foo321", "b": "bar123"},
			expected: " foo321 bar123 foo321 ",
		},
		{
			name:   "nested path",
			source: "city: {{ .user.address.city }}",
			data: map[string]any{
				"user": map[string]any{
					"address": map[string]any{"city": "potat"},
				},
			},
			expected: "city: potat",
		},
		{
			name:   "range over maps",
			source: "{{range .foo}}- {{.bar}}\n{{end}}",
			data: map[string]any{
				"foo": []any{
					map[string]any{"bar": "a"},
					map[string]any{"bar": "b"},
					map[string]any{"bar": "c"},
				},
			},
			expected: "- a\n- b\n- c\n",
		},
		{
			name:     "conditional true",
			source:   "{{if .debug}}[debug] {{end}}message",
			data:     map[string]any{"debug": true},
			expected: "[debug] message",
		},
		{
			name:     "conditional false",
			source:   "{{if .debug}}[debug] {{end}}message",
			data:     map[string]any{"debug": false},
			expected: "message",
		},
		{
			name:     "conditional absent field",
			source:   "{{if .debug}}[debug] {{end}}message",
			data:     map[string]any{},
			expected: "message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := MustCompile(tt.source)
			output, err := tmpl.RenderString(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, output)
		})
	}
}

func TestTemplateRenderToSink(t *testing.T) {
	tmpl := MustCompile("hello {{.name}}")

	var sb strings.Builder
	require.NoError(t, tmpl.Render(map[string]any{"name": "sink"}, &sb))
	assert.Equal(t, "hello sink", sb.String())
}

func TestTemplateRenderNilData(t *testing.T) {
	// Directive-free templates render without a context.
	tmpl := MustCompile("static output")
	output, err := tmpl.RenderString(nil)
	require.NoError(t, err)
	assert.Equal(t, "static output", output)

	// Directives against nil data fail like any missing field.
	tmpl = MustCompile("{{.name}}")
	_, err = tmpl.RenderString(nil)
	require.Error(t, err)
	assert.True(t, IsFieldNotFound(err))
}

func TestTemplateRenderManyTimes(t *testing.T) {
	// Compile once, render many: each render sees only its own data.
	tmpl := MustCompile("{{.greeting}}, {{.name}}!")

	first, err := tmpl.RenderString(map[string]any{"greeting": "hello", "name": "one"})
	require.NoError(t, err)
	second, err := tmpl.RenderString(map[string]any{"greeting": "goodbye", "name": "two"})
	require.NoError(t, err)

	assert.Equal(t, "hello, one!", first)
	assert.Equal(t, "goodbye, two!", second)
}

func TestTemplateConcurrentRender(t *testing.T) {
	tmpl := MustCompile("{{range .items}}{{.n}};{{end}}")
	data := map[string]any{
		"items": []any{
			map[string]any{"n": "1"},
			map[string]any{"n": "2"},
		},
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			output, err := tmpl.RenderString(data)
			assert.NoError(t, err)
			assert.Equal(t, "1;2;", output)
		}()
	}
	wg.Wait()
}

func TestTemplatePartialOutputOnFailure(t *testing.T) {
	// Fail-fast rendering may leave a prefix of the output in the sink.
	tmpl := MustCompile("before {{.missing}} after")

	var sb strings.Builder
	err := tmpl.Render(map[string]any{}, &sb)
	require.Error(t, err)
	assert.Equal(t, "before ", sb.String())
	assert.NotContains(t, sb.String(), "after")
}
