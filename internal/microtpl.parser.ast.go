package internal

import (
	"fmt"
	"strings"
)

// DeclType identifies the kind of a declaration node.
type DeclType int

const (
	// DeclTypeIdent is a field-substitution directive.
	DeclTypeIdent DeclType = iota
	// DeclTypeCond is an if block.
	DeclTypeCond
	// DeclTypeRange is a range block.
	DeclTypeRange
	// DeclTypeEnd is a closing marker.
	DeclTypeEnd
)

// String returns a human-readable name for the declaration type.
func (t DeclType) String() string {
	switch t {
	case DeclTypeIdent:
		return "IDENT"
	case DeclTypeCond:
		return "COND"
	case DeclTypeRange:
		return "RANGE"
	case DeclTypeEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Span marks a complete "{{ ... }}" construct in the source: Start is the
// byte offset of the first opening brace, End the offset just past the
// second closing brace. For block declarations, End covers the whole block
// up to and including its closing "{{ end }}".
type Span struct {
	Start int
	End   int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Decl is the interface all declaration nodes implement. A declaration
// tree, together with the source it was parsed from, is immutable and
// independent of any rendering context: it can be parsed once and rendered
// many times. Nodes keep offsets into the source rather than copied
// substrings, so literal text is sliced, never duplicated.
type Decl interface {
	// Type returns the declaration type identifier.
	Type() DeclType
	// Span returns the source span this declaration covers.
	DeclSpan() Span
	// String returns a human-readable representation.
	String() string
}

// IdentDecl is a field-substitution directive such as "{{ .user.name }}".
type IdentDecl struct {
	span Span
	Path string // Dotted field path, without the leading dot
}

// Type returns DeclTypeIdent.
func (d *IdentDecl) Type() DeclType {
	return DeclTypeIdent
}

// DeclSpan returns the source span.
func (d *IdentDecl) DeclSpan() Span {
	return d.span
}

// String returns a human-readable representation.
func (d *IdentDecl) String() string {
	return fmt.Sprintf("IdentDecl{.%s @ %s}", d.Path, d.span)
}

// NewIdentDecl creates a new field-substitution declaration.
func NewIdentDecl(span Span, path string) *IdentDecl {
	return &IdentDecl{span: span, Path: path}
}

// CondDecl is an if block. Body holds the child declarations in document
// order, ending with the EndDecl that closes this block. HeaderEnd is the
// offset just past the header's "}}", where the body's literal text begins.
type CondDecl struct {
	span      Span
	Path      string
	Body      []Decl
	HeaderEnd int
}

// Type returns DeclTypeCond.
func (d *CondDecl) Type() DeclType {
	return DeclTypeCond
}

// DeclSpan returns the source span of the whole block.
func (d *CondDecl) DeclSpan() Span {
	return d.span
}

// String returns a human-readable representation.
func (d *CondDecl) String() string {
	return fmt.Sprintf("CondDecl{.%s, body=%d @ %s}", d.Path, len(d.Body), d.span)
}

// NewCondDecl creates a new if-block declaration.
func NewCondDecl(span Span, path string, body []Decl, headerEnd int) *CondDecl {
	return &CondDecl{span: span, Path: path, Body: body, HeaderEnd: headerEnd}
}

// RangeDecl is a range block with the same shape as CondDecl.
type RangeDecl struct {
	span      Span
	Path      string
	Body      []Decl
	HeaderEnd int
}

// Type returns DeclTypeRange.
func (d *RangeDecl) Type() DeclType {
	return DeclTypeRange
}

// DeclSpan returns the source span of the whole block.
func (d *RangeDecl) DeclSpan() Span {
	return d.span
}

// String returns a human-readable representation.
func (d *RangeDecl) String() string {
	return fmt.Sprintf("RangeDecl{.%s, body=%d @ %s}", d.Path, len(d.Body), d.span)
}

// NewRangeDecl creates a new range-block declaration.
func NewRangeDecl(span Span, path string, body []Decl, headerEnd int) *RangeDecl {
	return &RangeDecl{span: span, Path: path, Body: body, HeaderEnd: headerEnd}
}

// EndDecl is a "{{ end }}" closing marker. It terminates exactly one
// enclosing block; nested blocks own their own EndDecl and never consume
// an outer one.
type EndDecl struct {
	span Span
}

// Type returns DeclTypeEnd.
func (d *EndDecl) Type() DeclType {
	return DeclTypeEnd
}

// DeclSpan returns the source span.
func (d *EndDecl) DeclSpan() Span {
	return d.span
}

// String returns a human-readable representation.
func (d *EndDecl) String() string {
	return fmt.Sprintf("EndDecl{@ %s}", d.span)
}

// NewEndDecl creates a new closing-marker declaration.
func NewEndDecl(span Span) *EndDecl {
	return &EndDecl{span: span}
}

// DumpDecls returns a multi-line representation of a declaration sequence,
// useful in test failure output.
func DumpDecls(decls []Decl) string {
	var sb strings.Builder
	for i, d := range decls {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i, d.String()))
	}
	return sb.String()
}
