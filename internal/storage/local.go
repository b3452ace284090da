package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage serves assets from a directory on the local filesystem.
type LocalStorage struct {
	baseDir   string // ディスク上のルートディレクトリ (例: "./static")
	urlPrefix string // HTTP で配信する際の URL プレフィックス (例: "/static")
}

// Ensure LocalStorage implements Storage at compile time.
var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage は LocalStorage を生成する。
func NewLocalStorage(baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// cleanKey rejects keys that would escape the storage root.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." || strings.Contains(key, "..") {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return k, nil
}

func (s *LocalStorage) Open(_ context.Context, key string) (File, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(k)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: open: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("storage: stat: %w", err)
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *LocalStorage) Path(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}

func (s *LocalStorage) URL(key string) string {
	return s.urlPrefix + "/" + strings.TrimPrefix(key, "/")
}

func (s *LocalStorage) FS() fs.FS {
	return os.DirFS(s.baseDir)
}
