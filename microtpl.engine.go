package microtpl

import (
	"sort"
	"sync"

	"github.com/itsatony/go-microtpl/internal"
	"go.uber.org/zap"
)

// Engine is the main entry point for the microtpl templating system.
// It manages compilation, rendering configuration, and a named template
// registry for compile-once/render-many use.
type Engine struct {
	templates map[string]*Template
	tmplMu    sync.RWMutex // Protects templates map
	config    *engineConfig
	renderer  *internal.Renderer
	logger    *zap.Logger
}

// New creates a new microtpl Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgEngineCreated)

	return &Engine{
		templates: make(map[string]*Template),
		config:    config,
		renderer:  internal.NewRenderer(logger),
		logger:    logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Compile tokenizes and parses a template source string and returns a
// Template. The returned Template is immutable and can be rendered many
// times with different data, concurrently.
func (e *Engine) Compile(source string) (*Template, error) {
	lexer := internal.NewLexer(source, e.logger)
	tokens := lexer.Tokenize()

	parser := internal.NewParser(tokens, source, e.config.maxDepth, e.logger)
	decls, err := parser.Parse()
	if err != nil {
		return nil, NewCompileError(err)
	}

	e.logger.Debug(LogMsgTemplateCompiled,
		zap.Int(LogFieldSourceLen, len(source)),
		zap.Int(LogFieldDecls, len(decls)))

	return newTemplate(source, decls, e.renderer, e.logger), nil
}

// MustCompile compiles a template and panics on error.
func (e *Engine) MustCompile(source string) *Template {
	tmpl, err := e.Compile(source)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// RegisterTemplate compiles a template source and stores it under a name
// for later retrieval. Returns an error if the name is empty or taken.
func (e *Engine) RegisterTemplate(name string, source string) error {
	if name == "" {
		return NewEmptyTemplateNameError()
	}

	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		return NewTemplateExistsError(name)
	}

	tmpl, err := e.Compile(source)
	if err != nil {
		return err
	}

	e.templates[name] = tmpl
	e.logger.Debug(LogMsgTemplateStored, zap.String(LogFieldName, name))
	return nil
}

// MustRegisterTemplate registers a template and panics on error.
func (e *Engine) MustRegisterTemplate(name string, source string) {
	if err := e.RegisterTemplate(name, source); err != nil {
		panic(err)
	}
}

// UnregisterTemplate removes a registered template by name.
// Returns true if the template existed and was removed, false otherwise.
func (e *Engine) UnregisterTemplate(name string) bool {
	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		delete(e.templates, name)
		return true
	}
	return false
}

// GetTemplate retrieves a registered template by name.
// Returns the template and true if found, or nil and false if not.
func (e *Engine) GetTemplate(name string) (*Template, bool) {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	tmpl, ok := e.templates[name]
	return tmpl, ok
}

// HasTemplate checks if a template is registered with the given name.
func (e *Engine) HasTemplate(name string) bool {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	_, ok := e.templates[name]
	return ok
}

// ListTemplates returns all registered template names in sorted order.
func (e *Engine) ListTemplates() []string {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateCount returns the number of registered templates.
func (e *Engine) TemplateCount() int {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	return len(e.templates)
}

// RenderTemplate renders a registered template by name with the given data.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	tmpl, ok := e.GetTemplate(name)
	if !ok {
		return "", NewTemplateNotFoundError(name)
	}
	return tmpl.RenderString(data)
}

// defaultEngine backs the package-level convenience functions.
var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

func getDefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = MustNew()
	})
	return defaultEngine
}

// Compile compiles a template source with a default engine.
// For configured engines (logging, depth limits), use New.
func Compile(source string) (*Template, error) {
	return getDefaultEngine().Compile(source)
}

// MustCompile compiles a template with a default engine and panics on error.
func MustCompile(source string) *Template {
	return getDefaultEngine().MustCompile(source)
}
