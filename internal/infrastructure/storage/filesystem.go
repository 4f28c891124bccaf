package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/application/interfaces"
)

// FileStore keeps uploaded documents on the local filesystem and hands
// out stable reference paths. The core only ever stores the reference.
type FileStore struct {
	root    string
	baseURL string
}

func NewFileStore(root, baseURL string) (*FileStore, error) {
	if root == "" {
		return nil, errors.New("empty document storage root")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create document storage root: %w", err)
	}

	return &FileStore{root: root, baseURL: baseURL}, nil
}

var _ interfaces.DocumentStore = (*FileStore)(nil)

func (s *FileStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	key := uuid.New().String() + filepath.Ext(name)

	f, err := os.Create(filepath.Join(s.root, key))
	if err != nil {
		return "", fmt.Errorf("create document file: %w", err)
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write document file: %w", err)
	}

	if err = f.Close(); err != nil {
		return "", fmt.Errorf("close document file: %w", err)
	}

	return path.Join(s.baseURL, key), nil
}
