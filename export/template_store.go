package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTemplateID is the template used when a requested id cannot be
// resolved.
const DefaultTemplateID = "ocean_gradient"

// TemplateNotFoundError means neither the requested template nor the default
// could be resolved. This is a deployment defect, never retried.
type TemplateNotFoundError struct {
	ID   string
	Path string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found at %s", e.ID, e.Path)
}

// TemplateStore resolves template ids to artifact files under a read-only
// templates directory.
type TemplateStore struct {
	dir string
}

// NewTemplateStore creates a store over dir.
func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

// Dir returns the templates directory.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// Path returns the file path a template id maps to, whether or not the file
// exists.
func (s *TemplateStore) Path(id string) string {
	return filepath.Join(s.dir, id+".pptx")
}

// Resolve maps id to an existing template file, falling back to the default
// template when id is absent. The second return reports whether the fallback
// was taken. Missing default is a TemplateNotFoundError.
func (s *TemplateStore) Resolve(id string) (string, bool, error) {
	path := s.Path(id)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	defaultPath := s.Path(DefaultTemplateID)
	if _, err := os.Stat(defaultPath); err != nil {
		return "", false, &TemplateNotFoundError{ID: DefaultTemplateID, Path: defaultPath}
	}
	return defaultPath, id != DefaultTemplateID, nil
}

// EnsureDefault writes the generated default template into the store when no
// file for it exists yet. Called once at startup so a fresh deployment can
// serve template renders without any bundled assets.
func (s *TemplateStore) EnsureDefault() error {
	path := s.Path(DefaultTemplateID)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := BuildDefaultTemplate()
	if err != nil {
		return fmt.Errorf("failed to build default template: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create templates directory %s: %w", s.dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write default template %s: %w", path, err)
	}
	return nil
}

// Load resolves id and reads the template package.
func (s *TemplateStore) Load(id string) (*templatePackage, bool, error) {
	path, fellBack, err := s.Resolve(id)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	pkg, err := openTemplatePackage(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open template %s: %w", path, err)
	}
	return pkg, fellBack, nil
}
