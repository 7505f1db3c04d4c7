package microtpl

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of TemplateStorage.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu        sync.RWMutex
	templates map[string]*StoredTemplate
	closed    bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// StorageDriverNameMemory is the registry name of the memory driver.
const StorageDriverNameMemory = "memory"

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (TemplateStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory template storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		templates: make(map[string]*StoredTemplate),
	}
}

// Get retrieves a template by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	tmpl, ok := s.templates[name]
	if !ok {
		return nil, NewStoredTemplateNotFoundError(name)
	}

	return copyStoredTemplate(tmpl), nil
}

// Save stores a template, overwriting any existing template of the same name.
func (s *MemoryStorage) Save(ctx context.Context, tmpl *StoredTemplate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if tmpl.Name == "" {
		return &StorageError{Message: ErrMsgStoredTemplateNoName}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now().UTC()
	if existing, ok := s.templates[tmpl.Name]; ok {
		tmpl.ID = existing.ID
		tmpl.CreatedAt = existing.CreatedAt
	} else {
		tmpl.ID = newTemplateID()
		tmpl.CreatedAt = now
	}
	tmpl.UpdatedAt = now

	s.templates[tmpl.Name] = copyStoredTemplate(tmpl)
	return nil
}

// Delete removes a template by name.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.templates[name]; !ok {
		return NewStoredTemplateNotFoundError(name)
	}

	delete(s.templates, name)
	return nil
}

// List returns templates matching the query, ordered by name.
func (s *MemoryStorage) List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	if query == nil {
		query = &TemplateQuery{}
	}

	var results []*StoredTemplate
	for _, tmpl := range s.templates {
		if matchesQuery(tmpl, query) {
			results = append(results, copyStoredTemplate(tmpl))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	return paginate(results, query), nil
}

// Exists checks if a template with the given name exists.
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, ok := s.templates[name]
	return ok, nil
}

// Close releases the storage. Further operations fail.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.templates = nil
	return nil
}

// matchesQuery applies query filters to a stored template.
func matchesQuery(tmpl *StoredTemplate, query *TemplateQuery) bool {
	if query.NamePrefix != "" && !strings.HasPrefix(tmpl.Name, query.NamePrefix) {
		return false
	}
	for _, want := range query.Tags {
		found := false
		for _, tag := range tmpl.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// paginate applies the query's offset and limit.
func paginate(results []*StoredTemplate, query *TemplateQuery) []*StoredTemplate {
	if query.Offset > 0 {
		if query.Offset >= len(results) {
			return nil
		}
		results = results[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}
	return results
}

// copyStoredTemplate makes a deep copy so callers can't mutate stored state.
func copyStoredTemplate(tmpl *StoredTemplate) *StoredTemplate {
	cp := *tmpl
	if tmpl.Metadata != nil {
		cp.Metadata = make(map[string]string, len(tmpl.Metadata))
		for k, v := range tmpl.Metadata {
			cp.Metadata[k] = v
		}
	}
	if tmpl.Tags != nil {
		cp.Tags = append([]string(nil), tmpl.Tags...)
	}
	return &cp
}
