package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lshigami/analyquiz/config"
	"github.com/rs/zerolog/log"
)

// LocalStore keeps uploaded files on local disk. The configured primary
// directory is probed for writability at construction time; serverless
// platforms often mount the project directory read-only while keeping /tmp
// writable, so an unwritable primary falls back to the configured fallback
// directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(cfg *config.Config) (*LocalStore, error) {
	dir, err := resolveWritableDir(cfg.Upload.Dir, cfg.Upload.FallbackDir)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", dir).Msg("Upload store ready")
	return &LocalStore{dir: dir}, nil
}

func resolveWritableDir(primary, fallback string) (string, error) {
	if err := probeWritable(primary); err == nil {
		return primary, nil
	} else {
		log.Warn().Err(err).Str("dir", primary).Msg("Primary upload directory not writable, using fallback")
	}
	if err := probeWritable(fallback); err != nil {
		return "", fmt.Errorf("no writable upload directory (tried %s and %s): %w", primary, fallback, err)
	}
	return fallback, nil
}

func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".permcheck")
	f, err := os.Create(probe)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(probe)
}

// Save writes src under a timestamped name and returns the stored path.
func (s *LocalStore) Save(originalName string, src io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102_150405"), filepath.Base(originalName))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *LocalStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory files are stored in.
func (s *LocalStore) Dir() string {
	return s.dir
}
