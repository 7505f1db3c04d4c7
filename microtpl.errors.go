package microtpl

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-microtpl/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Compile errors
	ErrMsgCompileFailed = "template compilation failed"

	// Render errors
	ErrMsgRenderFailed  = "template rendering failed"
	ErrMsgFieldNotFound = "field not found in render context"
	ErrMsgNotSequence   = "range field is not a sequence"
	ErrMsgSinkWrite     = "failed to write to output sink"

	// Registry errors
	ErrMsgTemplateExists    = "template already registered"
	ErrMsgTemplateNotFound  = "template not found"
	ErrMsgEmptyTemplateName = "template name cannot be empty"
)

// NewCompileError wraps an internal parser error with position metadata:
// 1-based line and column, byte offset, the offending source line, and the
// structural error kind.
func NewCompileError(cause error) error {
	err := cuserr.WrapStdError(cause, ErrCodeCompile, ErrMsgCompileFailed)

	var parserErr *internal.ParserError
	if errors.As(cause, &parserErr) {
		err = err.
			WithMetadata(MetaKeyKind, parserErr.Kind.String()).
			WithMetadata(MetaKeyLine, strconv.Itoa(parserErr.Position.Line)).
			WithMetadata(MetaKeyColumn, strconv.Itoa(parserErr.Position.Column)).
			WithMetadata(MetaKeyOffset, strconv.Itoa(parserErr.Position.Offset)).
			WithMetadata(MetaKeySourceLine, parserErr.SourceLine)
	}
	return err
}

// NewRenderError wraps a render-time failure. Field-not-found and
// non-sequence causes carry the failing path in metadata.
func NewRenderError(cause error) error {
	var fieldErr *internal.FieldNotFoundError
	if errors.As(cause, &fieldErr) {
		return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgFieldNotFound).
			WithMetadata(MetaKeyPath, fieldErr.Path)
	}

	var seqErr *internal.NotSequenceError
	if errors.As(cause, &seqErr) {
		return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgNotSequence).
			WithMetadata(MetaKeyPath, seqErr.Path)
	}

	return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgSinkWrite)
}

// NewTemplateExistsError creates a registry collision error.
func NewTemplateExistsError(name string) error {
	return cuserr.NewValidationError(ErrCodeCompile, ErrMsgTemplateExists).
		WithMetadata(MetaKeyTemplate, name)
}

// NewTemplateNotFoundError creates a template lookup error.
func NewTemplateNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyTemplate, ErrMsgTemplateNotFound).
		WithMetadata(MetaKeyTemplate, name)
}

// NewEmptyTemplateNameError creates an error for an empty template name.
func NewEmptyTemplateNameError() error {
	return cuserr.NewValidationError(ErrCodeCompile, ErrMsgEmptyTemplateName)
}

// IsFieldNotFound reports whether err was caused by an unresolvable field path.
func IsFieldNotFound(err error) bool {
	var fieldErr *internal.FieldNotFoundError
	return errors.As(err, &fieldErr)
}

// IsCompileError reports whether err was caused by a structural parse failure.
func IsCompileError(err error) bool {
	var parserErr *internal.ParserError
	return errors.As(err, &parserErr)
}
