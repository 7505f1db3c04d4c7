package microtpl

import (
	"io"
	"strings"

	"github.com/itsatony/go-microtpl/internal"
	"go.uber.org/zap"
)

// Template is a compiled template that can be rendered multiple times.
// The declaration tree and retained source are immutable after
// compilation, so a Template is safe for concurrent use by multiple
// goroutines rendering against independent data and sinks.
type Template struct {
	source   string
	decls    []internal.Decl
	renderer *internal.Renderer
	logger   *zap.Logger
}

// newTemplate creates a compiled template (internal use).
func newTemplate(source string, decls []internal.Decl, renderer *internal.Renderer, logger *zap.Logger) *Template {
	return &Template{
		source:   source,
		decls:    decls,
		renderer: renderer,
		logger:   logger,
	}
}

// Render renders the template against the given data, writing output to
// the sink. It fails on the first unresolvable field path or sink write
// failure; on failure the sink may hold a partial prefix of the output.
func (t *Template) Render(data map[string]any, sink io.Writer) error {
	t.logger.Debug(LogMsgRenderStart, zap.Int(LogFieldDecls, len(t.decls)))

	scope := internal.NewScope(normalizeData(data))
	if err := t.renderer.Render(t.decls, t.source, scope, sink); err != nil {
		return NewRenderError(err)
	}

	t.logger.Debug(LogMsgRenderComplete)
	return nil
}

// RenderString renders the template and returns the output as a string.
func (t *Template) RenderString(data map[string]any) (string, error) {
	var sb strings.Builder
	if err := t.Render(data, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Source returns the original template source string.
func (t *Template) Source() string {
	return t.source
}

// DeclCount returns the number of top-level declarations in the template.
func (t *Template) DeclCount() int {
	return len(t.decls)
}

// normalizeData guards against a nil data map so directive-free templates
// render without a context.
func normalizeData(data map[string]any) map[string]any {
	if data == nil {
		return make(map[string]any)
	}
	return data
}
