package microtpl

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FilesystemStorage keeps each template as a YAML document in a directory,
// one file per template, named "<template-name>.yaml". The YAML document
// carries the template source together with its metadata, so a template
// directory can be inspected and edited by hand or kept under version
// control.
type FilesystemStorage struct {
	root   string
	mu     sync.RWMutex
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Filesystem storage constants.
const (
	StorageDriverNameFilesystem = "filesystem"

	templateFileExt  = ".yaml"
	templateDirPerm  = 0o755
	templateFilePerm = 0o644
)

// Filesystem storage error message constants.
const (
	ErrMsgStorageRootEmpty    = "storage root directory cannot be empty"
	ErrMsgStorageRootCreate   = "failed to create storage root directory"
	ErrMsgTemplateNameInvalid = "template name contains invalid characters"
	ErrMsgTemplateRead        = "failed to read template file"
	ErrMsgTemplateWrite       = "failed to write template file"
	ErrMsgTemplateDecode      = "failed to decode template file"
	ErrMsgTemplateEncode      = "failed to encode template"
)

// Open creates a new FilesystemStorage rooted at the connection string path.
func (d *FilesystemStorageDriver) Open(connectionString string) (TemplateStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a filesystem template storage rooted at dir,
// creating the directory if needed.
func NewFilesystemStorage(dir string) (*FilesystemStorage, error) {
	if dir == "" {
		return nil, &StorageError{Message: ErrMsgStorageRootEmpty}
	}
	if err := os.MkdirAll(dir, templateDirPerm); err != nil {
		return nil, &StorageError{Message: ErrMsgStorageRootCreate, Name: dir, Cause: err}
	}
	return &FilesystemStorage{root: dir}, nil
}

// Get retrieves a template by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	path, err := s.templatePath(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStoredTemplateNotFoundError(name)
		}
		return nil, &StorageError{Message: ErrMsgTemplateRead, Name: name, Cause: err}
	}

	var tmpl StoredTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, &StorageError{Message: ErrMsgTemplateDecode, Name: name, Cause: err}
	}

	return &tmpl, nil
}

// Save stores a template, overwriting any existing file of the same name.
func (s *FilesystemStorage) Save(ctx context.Context, tmpl *StoredTemplate) error {
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

	path, err := s.templatePath(tmpl.Name)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if existing, err := s.readTemplate(path); err == nil {
		tmpl.ID = existing.ID
		tmpl.CreatedAt = existing.CreatedAt
	} else {
		tmpl.ID = newTemplateID()
		tmpl.CreatedAt = now
	}
	tmpl.UpdatedAt = now

	data, err := yaml.Marshal(tmpl)
	if err != nil {
		return &StorageError{Message: ErrMsgTemplateEncode, Name: tmpl.Name, Cause: err}
	}

	if err := os.WriteFile(path, data, templateFilePerm); err != nil {
		return &StorageError{Message: ErrMsgTemplateWrite, Name: tmpl.Name, Cause: err}
	}
	return nil
}

// Delete removes a template by name.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	path, err := s.templatePath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return NewStoredTemplateNotFoundError(name)
		}
		return &StorageError{Message: ErrMsgTemplateWrite, Name: name, Cause: err}
	}
	return nil
}

// List returns templates matching the query, ordered by name.
func (s *FilesystemStorage) List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error) {
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

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgTemplateRead, Name: s.root, Cause: err}
	}

	var results []*StoredTemplate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateFileExt) {
			continue
		}
		tmpl, err := s.readTemplate(filepath.Join(s.root, entry.Name()))
		if err != nil {
			// Skip files that are not valid template documents.
			continue
		}
		if matchesQuery(tmpl, query) {
			results = append(results, tmpl)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	return paginate(results, query), nil
}

// Exists checks if a template with the given name exists.
func (s *FilesystemStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	path, err := s.templatePath(name)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &StorageError{Message: ErrMsgTemplateRead, Name: name, Cause: err}
	}
	return true, nil
}

// Close marks the storage closed. Further operations fail.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Root returns the storage root directory.
func (s *FilesystemStorage) Root() string {
	return s.root
}

// templatePath maps a template name to its file path, rejecting names
// that would escape the storage root.
func (s *FilesystemStorage) templatePath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", &StorageError{Message: ErrMsgTemplateNameInvalid, Name: name}
	}
	return filepath.Join(s.root, name+templateFileExt), nil
}

// readTemplate loads and decodes a template file.
func (s *FilesystemStorage) readTemplate(path string) (*StoredTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tmpl StoredTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}
