package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EvidenceStore keeps downloaded photo evidence on disk. The returned
// reference (the stored file name) is what goes into the submission row.
type EvidenceStore struct {
	dir string
}

func NewEvidenceStore(dir string) (*EvidenceStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create evidence dir: %w", err)
	}
	return &EvidenceStore{dir: dir}, nil
}

// Save writes one evidence blob under a fresh uuid name and returns the
// reference.
func (s *EvidenceStore) Save(data []byte, ext string) (string, error) {
	if ext == "" {
		ext = ".bin"
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write evidence file: %w", err)
	}
	return name, nil
}
