// Package artifact stores generated decks and resolves download requests.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// filenamePattern matches the names Save hands out. Download requests must
// match it exactly, which also rules out path traversal.
var filenamePattern = regexp.MustCompile(`^presentation_[0-9a-f]{8}\.pptx$`)

// Store writes deck files into a single output directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes data under a fresh random name and returns the filename.
func (s *Store) Save(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", s.dir, err)
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	filename := fmt.Sprintf("presentation_%s.pptx", token)
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return filename, nil
}

// Resolve maps a previously issued filename to its path. Unknown or malformed
// names return os.ErrNotExist.
func (s *Store) Resolve(filename string) (string, error) {
	if !filenamePattern.MatchString(filename) {
		return "", fmt.Errorf("invalid artifact name %q: %w", filename, os.ErrNotExist)
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact %s: %w", filename, os.ErrNotExist)
	}
	return path, nil
}
