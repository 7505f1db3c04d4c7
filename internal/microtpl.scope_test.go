package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeResolve(t *testing.T) {
	data := map[string]any{
		"name": "world",
		"user": map[string]any{
			"address": map[string]any{
				"city": "potat",
			},
		},
		"labels": map[string]string{
			"env": "prod",
		},
		"count": 42,
	}
	scope := NewScope(data)

	tests := []struct {
		name     string
		path     string
		expected any
	}{
		{
			name:     "top-level field",
			path:     "name",
			expected: "world",
		},
		{
			name:     "nested path",
			path:     "user.address.city",
			expected: "potat",
		},
		{
			name:     "string map field",
			path:     "labels.env",
			expected: "prod",
		},
		{
			name:     "non-string leaf",
			path:     "count",
			expected: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := scope.Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestScopeResolveFailures(t *testing.T) {
	scope := NewScope(map[string]any{
		"name": "world",
		"user": map[string]any{"id": 1},
	})

	tests := []struct {
		name string
		path string
	}{
		{name: "missing top-level field", path: "missing"},
		{name: "missing nested field", path: "user.missing"},
		{name: "descending into a leaf", path: "name.deeper"},
		{name: "empty segment", path: "user..id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scope.Resolve(tt.path)
			require.Error(t, err)

			var fieldErr *FieldNotFoundError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.path, fieldErr.Path)
		})
	}
}

func TestScopeResolveText(t *testing.T) {
	scope := NewScope(map[string]any{
		"str":   "hello",
		"yes":   true,
		"no":    false,
		"num":   7,
		"big":   int64(1234567890123),
		"ratio": 2.5,
		"empty": nil,
	})

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "string as-is", path: "str", expected: "hello"},
		{name: "true", path: "yes", expected: "true"},
		{name: "false", path: "no", expected: "false"},
		{name: "int", path: "num", expected: "7"},
		{name: "int64", path: "big", expected: "1234567890123"},
		{name: "float", path: "ratio", expected: "2.5"},
		{name: "nil renders empty", path: "empty", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := scope.ResolveText(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestScopeResolveBool(t *testing.T) {
	scope := NewScope(map[string]any{
		"yes":      true,
		"no":       false,
		"zero":     0,
		"nonzero":  3,
		"empty":    "",
		"nonempty": "x",
		"items":    []any{"a"},
		"none":     []any{},
	})

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "true bool", path: "yes", expected: true},
		{name: "false bool", path: "no", expected: false},
		{name: "zero int", path: "zero", expected: false},
		{name: "nonzero int", path: "nonzero", expected: true},
		{name: "empty string", path: "empty", expected: false},
		{name: "nonempty string", path: "nonempty", expected: true},
		{name: "nonempty sequence", path: "items", expected: true},
		{name: "empty sequence", path: "none", expected: false},
		{name: "absent field counts as false", path: "missing", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scope.ResolveBool(tt.path))
		})
	}
}

func TestScopeResolveSequence(t *testing.T) {
	scope := NewScope(map[string]any{
		"any":     []any{map[string]any{"n": 1}, map[string]any{"n": 2}},
		"maps":    []map[string]any{{"n": 1}},
		"strings": []string{"a", "b"},
		"empty":   []any{},
		"scalar":  "not a sequence",
	})

	t.Run("any sequence", func(t *testing.T) {
		elems, err := scope.ResolveSequence("any")
		require.NoError(t, err)
		require.Len(t, elems, 2)

		val, err := elems[1].Resolve("n")
		require.NoError(t, err)
		assert.Equal(t, 2, val)
	})

	t.Run("map sequence", func(t *testing.T) {
		elems, err := scope.ResolveSequence("maps")
		require.NoError(t, err)
		assert.Len(t, elems, 1)
	})

	t.Run("string sequence", func(t *testing.T) {
		elems, err := scope.ResolveSequence("strings")
		require.NoError(t, err)
		require.Len(t, elems, 2)
		assert.Equal(t, "a", elems[0].Value())
	})

	t.Run("empty sequence", func(t *testing.T) {
		elems, err := scope.ResolveSequence("empty")
		require.NoError(t, err)
		assert.Empty(t, elems)
	})

	t.Run("scalar fails", func(t *testing.T) {
		_, err := scope.ResolveSequence("scalar")
		require.Error(t, err)

		var seqErr *NotSequenceError
		require.ErrorAs(t, err, &seqErr)
		assert.Equal(t, "scalar", seqErr.Path)
	})

	t.Run("absent path fails", func(t *testing.T) {
		_, err := scope.ResolveSequence("missing")
		require.Error(t, err)

		var fieldErr *FieldNotFoundError
		require.ErrorAs(t, err, &fieldErr)
	})
}

func TestScopeElementScopeHasNoParentFallback(t *testing.T) {
	// Inside a range body, lookups see only the element, never the
	// enclosing context.
	parent := NewScope(map[string]any{
		"title": "outer",
		"items": []any{map[string]any{"name": "inner"}},
	})

	elems, err := parent.ResolveSequence("items")
	require.NoError(t, err)
	require.Len(t, elems, 1)

	val, err := elems[0].Resolve("name")
	require.NoError(t, err)
	assert.Equal(t, "inner", val)

	_, err = elems[0].Resolve("title")
	require.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "text", FormatValue("text"))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "-5", FormatValue(-5))
	assert.Equal(t, "0.125", FormatValue(0.125))
	assert.Equal(t, "", FormatValue(nil))
}
