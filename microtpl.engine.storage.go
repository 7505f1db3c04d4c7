package microtpl

import (
	"context"

	"go.uber.org/zap"
)

// CompileStored loads a template source from storage by name and compiles
// it. Storage holds raw source only, so every call re-compiles; callers
// that render the same stored template repeatedly should keep the returned
// Template or register it with RegisterTemplate.
func (e *Engine) CompileStored(ctx context.Context, storage TemplateStorage, name string) (*Template, error) {
	stored, err := storage.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	tmpl, err := e.Compile(stored.Source)
	if err != nil {
		return nil, err
	}

	e.logger.Debug(LogMsgStoredTemplateCompiled,
		zap.String(LogFieldName, stored.Name),
		zap.String(LogFieldTemplateID, string(stored.ID)))
	return tmpl, nil
}

// RegisterStored loads a template from storage, compiles it, and registers
// it in the engine's template registry under its stored name.
func (e *Engine) RegisterStored(ctx context.Context, storage TemplateStorage, name string) error {
	stored, err := storage.Get(ctx, name)
	if err != nil {
		return err
	}
	return e.RegisterTemplate(stored.Name, stored.Source)
}

// SaveTemplate validates a template source by compiling it, then saves it
// to storage under the given name. Sources that fail to compile are
// rejected before touching storage.
func (e *Engine) SaveTemplate(ctx context.Context, storage TemplateStorage, name string, source string) error {
	if name == "" {
		return NewEmptyTemplateNameError()
	}
	if _, err := e.Compile(source); err != nil {
		return err
	}
	return storage.Save(ctx, &StoredTemplate{Name: name, Source: source})
}
