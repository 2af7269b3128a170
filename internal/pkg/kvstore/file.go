package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/qmc/portal/internal/pkg/logger"
)

const fileExt = ".json"

// FileStore keeps one <key>.json file per document under a directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates a FileStore rooted at basePath, creating the directory if needed.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create store directory")
		return nil, fmt.Errorf("failed to create store directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("File store directory ensured")

	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.basePath, key+fileExt)
}

func (s *FileStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set writes to a temporary file in the same directory and renames it over
// the target, so readers never observe a half-written document.
func (s *FileStore) Set(_ context.Context, key string, value json.RawMessage) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	tmpPath := filepath.Join(s.basePath, "."+key+"-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, value, 0o644); err != nil {
		logger.Error().Err(err).Str("path", tmpPath).Msg("Failed to write document")
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("key", key).Msg("Failed to replace document")
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error().Err(err).Str("key", key).Msg("Failed to delete document")
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}
