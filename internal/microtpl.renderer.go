package internal

import (
	"io"

	"go.uber.org/zap"
)

// Renderer walks a declaration tree against a scope and a sink, emitting
// the template's literal text byte-for-byte with every directive's source
// span replaced by its resolved rendering. Literal text is sliced straight
// out of the retained source by offset; nothing is copied up front.
//
// A Renderer holds no per-render state, so one instance may render the
// same declaration tree concurrently against independent scopes and sinks.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a new renderer.
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRendererCreated)
	return &Renderer{logger: logger}
}

// Render renders the declaration sequence in document order and finishes
// with the trailing literal run. Rendering fails fast: the first failed
// lookup or sink write aborts the call, possibly leaving a partial prefix
// in the sink.
func (r *Renderer) Render(decls []Decl, source string, scope Scope, sink io.Writer) error {
	r.logger.Debug(LogMsgRendererStart, zap.Int(LogFieldDecls, len(decls)))

	last, err := r.renderSiblings(decls, source, scope, sink, 0)
	if err != nil {
		return err
	}

	if err := r.emit(sink, source, last, len(source)); err != nil {
		return err
	}

	r.logger.Debug(LogMsgRendererEnd)
	return nil
}

// renderSiblings renders a sequence of sibling declarations, carrying the
// literal-text cursor across them. It returns the cursor position after
// the last declaration (the end of its span).
func (r *Renderer) renderSiblings(decls []Decl, source string, scope Scope, sink io.Writer, start int) (int, error) {
	last := start

	for _, decl := range decls {
		var err error
		switch d := decl.(type) {
		case *IdentDecl:
			last, err = r.renderIdent(d, source, scope, sink, last)
		case *CondDecl:
			last, err = r.renderCond(d, source, scope, sink, last)
		case *RangeDecl:
			last, err = r.renderRange(d, source, scope, sink, last)
		case *EndDecl:
			// A dangling end marker rendered as a sibling: emit the run
			// before it and skip over it.
			err = r.emit(sink, source, last, d.DeclSpan().Start)
			last = d.DeclSpan().End
		}
		if err != nil {
			return last, err
		}
	}

	return last, nil
}

// renderIdent substitutes a field directive, resolved against the current
// scope. Resolution failure is fatal to the render.
func (r *Renderer) renderIdent(d *IdentDecl, source string, scope Scope, sink io.Writer, last int) (int, error) {
	if err := r.emit(sink, source, last, d.DeclSpan().Start); err != nil {
		return last, err
	}

	text, err := scope.ResolveText(d.Path)
	if err != nil {
		return last, err
	}
	if _, err := io.WriteString(sink, text); err != nil {
		return last, err
	}

	return d.DeclSpan().End, nil
}

// renderCond renders an if block. Conditionals do not change scope. When
// the condition is falsy (or its path absent), the whole region between
// the header and its end marker is elided, interior literal text included.
func (r *Renderer) renderCond(d *CondDecl, source string, scope Scope, sink io.Writer, last int) (int, error) {
	if err := r.emit(sink, source, last, d.DeclSpan().Start); err != nil {
		return last, err
	}

	if scope.ResolveBool(d.Path) {
		// The trailing end marker in Body emits the interior literal run
		// up to itself, so the body renders completely.
		if _, err := r.renderSiblings(d.Body, source, scope, sink, d.HeaderEnd); err != nil {
			return last, err
		}
	} else {
		r.logger.Debug(LogMsgBlockSkipped, zap.String(LogFieldPath, d.Path))
	}

	return d.DeclSpan().End, nil
}

// renderRange renders a range block once per sequence element. Inside the
// body, field resolution uses only the iteration element as scope; there
// is no fallback to the enclosing scope.
func (r *Renderer) renderRange(d *RangeDecl, source string, scope Scope, sink io.Writer, last int) (int, error) {
	if err := r.emit(sink, source, last, d.DeclSpan().Start); err != nil {
		return last, err
	}

	elems, err := scope.ResolveSequence(d.Path)
	if err != nil {
		return last, err
	}

	// Body always ends with the closing end marker; iterate everything
	// before it, then re-emit the interior trailing literal run each pass.
	endSpan := d.Body[len(d.Body)-1].DeclSpan()
	body := d.Body[:len(d.Body)-1]

	for i, elem := range elems {
		r.logger.Debug(LogMsgRangeIteration, zap.String(LogFieldPath, d.Path), zap.Int(LogFieldCount, i))
		cursor, err := r.renderSiblings(body, source, elem, sink, d.HeaderEnd)
		if err != nil {
			return last, err
		}
		if err := r.emit(sink, source, cursor, endSpan.Start); err != nil {
			return last, err
		}
	}

	return d.DeclSpan().End, nil
}

// emit writes the literal source run [from, to) to the sink. Sink failures
// propagate verbatim.
func (r *Renderer) emit(sink io.Writer, source string, from, to int) error {
	if from >= to {
		return nil
	}
	_, err := io.WriteString(sink, source[from:to])
	return err
}
