// Package archive persists downloads produced by a deployment: the
// generated app zip and the container deploy script.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DownloadsDirEnv is the env var override for the downloads directory
// (also used by tests).
const DownloadsDirEnv = "FLOWDEPLOY_DOWNLOADS_DIR"

// Store writes downloads into a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. When dir is empty it falls back
// to the env override, then ~/Downloads, then the working directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.Getenv(DownloadsDirEnv)
	}
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, "Downloads")
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				dir = candidate
			}
		}
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: create downloads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the downloads directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveArchive writes a binary download and returns the written path.
func (s *Store) SaveArchive(filename string, data []byte) (string, error) {
	return s.write(filename, data, 0o644)
}

// SaveScript writes an executable script and returns the written path.
func (s *Store) SaveScript(filename, content string) (string, error) {
	return s.write(filename, []byte(content), 0o755)
}

func (s *Store) write(filename string, data []byte, mode os.FileMode) (string, error) {
	if err := validFilename(filename); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, mode); err != nil {
		return "", fmt.Errorf("archive: write %s: %w", filename, err)
	}
	return path, nil
}

// validFilename rejects names that would escape the downloads directory.
// Flow ids are opaque strings from the server, so they are not trusted.
func validFilename(name string) error {
	if name == "" {
		return fmt.Errorf("archive: empty filename")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("archive: unsafe filename %q", name)
	}
	return nil
}
