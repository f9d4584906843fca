package storage

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	apperrors "go-landing-scout/internal/errors"
)

// OutputStore is the single shared slot holding the latest annotated image.
// Every Save replaces the previous image; the last writer wins.
type OutputStore interface {
	Save(img image.Image) error
	Load() ([]byte, error)
	Path() string
}

type fileOutputStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileOutputStore creates the slot at path, creating its directory
func NewFileOutputStore(path string) (OutputStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &fileOutputStore{path: path}, nil
}

// Save PNG-encodes img to a temporary file and renames it over the slot,
// so readers never observe a partially written image.
func (s *fileOutputStore) Save(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".processed-*.png")
	if err != nil {
		return apperrors.NewInternalError("Failed to save the processed image.", err)
	}
	tmpName := tmp.Name()

	if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewInternalError("Failed to save the processed image.", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("Failed to save the processed image.", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("Failed to save the processed image.", err)
	}
	return nil
}

// Load returns the PNG bytes currently in the slot
func (s *fileOutputStore) Load() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("Processed image not found.", err)
		}
		return nil, apperrors.NewInternalError("Failed to read the processed image.", err)
	}
	return data, nil
}

// Path returns the slot location on disk
func (s *fileOutputStore) Path() string {
	return s.path
}
