package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredFile is what the document domain keeps about an upload.
type StoredFile struct {
	FileName  string
	MimeType  string
	SizeBytes int64
}

//go:generate mockgen -source=disk.go -destination=mock/store_mock.go -package=mock
type Store interface {
	Save(originalName, mimeType string, r io.Reader) (StoredFile, error)
	Open(fileName string) (io.ReadCloser, error)
	Remove(fileName string) error
}

type diskStore struct {
	dir string
}

func NewDiskStore(dir string) (Store, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &diskStore{dir: dir}, nil
}

// Save writes under a generated name; the original name survives only
// in its extension so callers cannot traverse paths.
func (s *diskStore) Save(originalName, mimeType string, r io.Reader) (StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return StoredFile{}, err
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return StoredFile{}, err
	}

	return StoredFile{
		FileName:  name,
		MimeType:  mimeType,
		SizeBytes: size,
	}, nil
}

func (s *diskStore) Open(fileName string) (io.ReadCloser, error) {
	clean := filepath.Base(fileName)
	if clean != fileName {
		return nil, fmt.Errorf("invalid file name: %s", fileName)
	}
	return os.Open(filepath.Join(s.dir, clean))
}

func (s *diskStore) Remove(fileName string) error {
	clean := filepath.Base(fileName)
	if clean != fileName {
		return fmt.Errorf("invalid file name: %s", fileName)
	}
	return os.Remove(filepath.Join(s.dir, clean))
}
