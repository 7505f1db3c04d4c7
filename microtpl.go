// Package microtpl is a minimal text-templating engine.
//
// Templates are plain text interspersed with {{ }}-delimited directives:
// field substitutions, conditionals, and iteration. Literal text is
// preserved byte-for-byte; directives are resolved against a data context
// supplied per render call.
//
// # Basic Usage
//
// Compile a template once and render it many times:
//
//	tmpl, err := microtpl.Compile("Hello, {{ .name }}!")
//	if err != nil {
//	    // compile error with line/column diagnostics
//	}
//	out, err := tmpl.RenderString(map[string]any{"name": "Alice"})
//	// out: "Hello, Alice!"
//
// # Template Syntax
//
// Field substitution resolves a dotted path against the context:
//
//	{{ .user.name }}
//
// Conditionals render their body only when the field is truthy; the whole
// region is elided otherwise, interior literal text included:
//
//	{{ if .admin }}You have admin rights.{{ end }}
//
// Iteration renders the body once per element of a sequence field. Inside
// the body, paths resolve against the current element only:
//
//	{{ range .items }}- {{ .title }}
//	{{ end }}
//
// Blocks nest to arbitrary depth. Anything outside a directive, including
// lone braces, is literal text.
//
// # Engines and Sinks
//
// An Engine carries configuration (logging, nesting limits) and a named
// template registry. Compiled templates are immutable and safe to render
// concurrently from multiple goroutines against independent contexts and
// sinks. Render writes to any io.Writer and fails fast: the first failed
// field lookup or sink write aborts the call.
//
//	engine := microtpl.MustNew(microtpl.WithLogger(logger))
//	tmpl, err := engine.Compile(source)
//	err = tmpl.Render(data, os.Stdout)
//
// # Storage
//
// Template sources can be kept in pluggable storage backends (memory,
// filesystem, PostgreSQL) and compiled on retrieval:
//
//	storage, err := microtpl.OpenStorage("filesystem", "/var/lib/templates")
//	tmpl, err := engine.CompileStored(ctx, storage, "welcome-email")
//
// # Error Handling
//
// Compilation stops at the first structural error and reports a 1-based
// line and column plus the offending source line. Rendering a path that is
// absent from the context fails with a field-not-found error rather than
// emitting empty text; conditionals are the one exception, treating absent
// fields as false.
package microtpl
