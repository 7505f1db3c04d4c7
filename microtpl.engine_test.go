package microtpl

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewEngine(t *testing.T) {
	t.Run("default options", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		require.NotNil(t, engine)
		assert.Equal(t, 0, engine.TemplateCount())
	})

	t.Run("with options", func(t *testing.T) {
		engine, err := New(
			WithMaxDepth(10),
			WithLogger(zap.NewNop()),
		)
		require.NoError(t, err)
		require.NotNil(t, engine)
	})

	t.Run("MustNew returns engine", func(t *testing.T) {
		assert.NotPanics(t, func() {
			engine := MustNew()
			require.NotNil(t, engine)
		})
	})
}

func TestEngineCompile(t *testing.T) {
	engine := MustNew()

	t.Run("valid template", func(t *testing.T) {
		tmpl, err := engine.Compile("hello {{.name}}")
		require.NoError(t, err)
		require.NotNil(t, tmpl)
		assert.Equal(t, "hello {{.name}}", tmpl.Source())
		assert.Equal(t, 1, tmpl.DeclCount())
	})

	t.Run("literal-only template", func(t *testing.T) {
		tmpl, err := engine.Compile("plain text")
		require.NoError(t, err)
		assert.Equal(t, 0, tmpl.DeclCount())
	})

	t.Run("invalid template", func(t *testing.T) {
		tmpl, err := engine.Compile("{{if .ok}}never closed")
		require.Error(t, err)
		assert.Nil(t, tmpl)
		assert.True(t, IsCompileError(err))
	})

	t.Run("MustCompile panics on invalid source", func(t *testing.T) {
		assert.Panics(t, func() {
			engine.MustCompile("{{ .broken")
		})
	})

	t.Run("compile is deterministic", func(t *testing.T) {
		first, err := engine.Compile("{{range .xs}}{{.y}}{{end}}")
		require.NoError(t, err)
		second, err := engine.Compile("{{range .xs}}{{.y}}{{end}}")
		require.NoError(t, err)
		assert.Equal(t, first.DeclCount(), second.DeclCount())
		assert.Equal(t, first.Source(), second.Source())
	})
}

func TestEngineTemplateRegistry(t *testing.T) {
	engine := MustNew()

	require.NoError(t, engine.RegisterTemplate("greeting", "hello {{.name}}"))
	require.NoError(t, engine.RegisterTemplate("farewell", "bye {{.name}}"))

	t.Run("get registered template", func(t *testing.T) {
		tmpl, ok := engine.GetTemplate("greeting")
		assert.True(t, ok)
		require.NotNil(t, tmpl)
		assert.Equal(t, "hello {{.name}}", tmpl.Source())
	})

	t.Run("has template", func(t *testing.T) {
		assert.True(t, engine.HasTemplate("greeting"))
		assert.False(t, engine.HasTemplate("unknown"))
	})

	t.Run("list is sorted", func(t *testing.T) {
		assert.Equal(t, []string{"farewell", "greeting"}, engine.ListTemplates())
	})

	t.Run("count", func(t *testing.T) {
		assert.Equal(t, 2, engine.TemplateCount())
	})

	t.Run("render by name", func(t *testing.T) {
		output, err := engine.RenderTemplate("greeting", map[string]any{"name": "world"})
		require.NoError(t, err)
		assert.Equal(t, "hello world", output)
	})

	t.Run("unregister", func(t *testing.T) {
		assert.True(t, engine.UnregisterTemplate("farewell"))
		assert.False(t, engine.UnregisterTemplate("farewell"))
		assert.False(t, engine.HasTemplate("farewell"))
	})

	t.Run("invalid source not registered", func(t *testing.T) {
		err := engine.RegisterTemplate("broken", "{{ .oops")
		require.Error(t, err)
		assert.False(t, engine.HasTemplate("broken"))
	})
}

func TestEngineConcurrentRegistry(t *testing.T) {
	engine := MustNew()
	require.NoError(t, engine.RegisterTemplate("shared", "v={{.v}}"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			output, err := engine.RenderTemplate("shared", map[string]any{"v": n})
			assert.NoError(t, err)
			assert.True(t, strings.HasPrefix(output, "v="))
		}(i)
	}
	wg.Wait()
}

func TestPackageLevelCompile(t *testing.T) {
	tmpl, err := Compile("{{.greeting}}, {{.name}}!")
	require.NoError(t, err)

	output, err := tmpl.RenderString(map[string]any{
		"greeting": "hello",
		"name":     "world",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello, world!", output)
}
