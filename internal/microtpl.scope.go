package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldNotFoundError reports a path that could not be resolved against the
// current scope.
type FieldNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *FieldNotFoundError) Error() string {
	return ErrMsgFieldNotFound + ": ." + e.Path
}

// NotSequenceError reports a range path that resolved to a non-sequence value.
type NotSequenceError struct {
	Path string
}

// Error implements the error interface.
func (e *NotSequenceError) Error() string {
	return ErrMsgNotSequence + ": ." + e.Path
}

// Resolver error message constants.
const (
	ErrMsgFieldNotFound = "field not found"
	ErrMsgNotSequence   = "value is not a sequence"
)

// Scope is the context value in effect for resolving field paths in a
// region of the declaration tree. The engine only borrows the underlying
// value for the duration of a render call and never mutates it.
//
// Field lookup supports map[string]any and map[string]string values.
// Sequences for range bodies may be []any, []map[string]any, or []string.
type Scope struct {
	value any
}

// NewScope creates a scope over the given context value.
func NewScope(value any) Scope {
	return Scope{value: value}
}

// Value returns the underlying context value.
func (s Scope) Value() any {
	return s.value
}

// Resolve descends into the scope one dotted segment at a time, looking up
// each segment as a named field of the current value. It fails with
// FieldNotFoundError if any segment is absent or the current value has no
// named fields. There is no fallback to any enclosing scope.
func (s Scope) Resolve(path string) (any, error) {
	current := s.value
	for _, segment := range strings.Split(path, PathSeparator) {
		if segment == StringValueEmpty {
			return nil, &FieldNotFoundError{Path: path}
		}

		switch v := current.(type) {
		case map[string]any:
			val, ok := v[segment]
			if !ok {
				return nil, &FieldNotFoundError{Path: path}
			}
			current = val
		case map[string]string:
			val, ok := v[segment]
			if !ok {
				return nil, &FieldNotFoundError{Path: path}
			}
			current = val
		default:
			return nil, &FieldNotFoundError{Path: path}
		}
	}
	return current, nil
}

// ResolveText resolves a path and renders the value in its natural text
// form. No escaping of any kind is performed.
func (s Scope) ResolveText(path string) (string, error) {
	val, err := s.Resolve(path)
	if err != nil {
		return StringValueEmpty, err
	}
	return FormatValue(val), nil
}

// ResolveBool resolves a path to a truthy/falsy value. An unresolvable
// path counts as false: conditionals treat absent fields as false rather
// than failing the render.
func (s Scope) ResolveBool(path string) bool {
	val, err := s.Resolve(path)
	if err != nil {
		return false
	}
	return IsTruthy(val)
}

// ResolveSequence resolves a path to an ordered sequence of element
// scopes for range iteration. Resolution failure is fatal, as is a value
// that is not a sequence.
func (s Scope) ResolveSequence(path string) ([]Scope, error) {
	val, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}

	switch seq := val.(type) {
	case []any:
		elems := make([]Scope, len(seq))
		for i, e := range seq {
			elems[i] = NewScope(e)
		}
		return elems, nil
	case []map[string]any:
		elems := make([]Scope, len(seq))
		for i, e := range seq {
			elems[i] = NewScope(e)
		}
		return elems, nil
	case []string:
		elems := make([]Scope, len(seq))
		for i, e := range seq {
			elems[i] = NewScope(e)
		}
		return elems, nil
	default:
		return nil, &NotSequenceError{Path: path}
	}
}

// FormatValue renders a leaf value in its natural text form.
func FormatValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return StringValueEmpty
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsTruthy reports whether a resolved value counts as true for an if block.
// Nil, false, zero numbers, and empty strings, sequences, and maps are
// false; everything else is true.
func IsTruthy(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != StringValueEmpty
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case []map[string]any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case map[string]string:
		return len(v) > 0
	default:
		return true
	}
}
