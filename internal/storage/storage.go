package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"time"
)

// ErrNotFound is returned when the requested asset does not exist.
var ErrNotFound = errors.New("storage: not found")

// File is an opened asset. *os.File satisfies it.
type File interface {
	io.ReadSeekCloser
	Stat() (fs.FileInfo, error)
}

// Storage resolves the static assets the site serves (resume, project
// images). Keys are slash-separated paths relative to the storage root,
// e.g. "assets/resume.pdf".
type Storage interface {
	// Open returns the asset at key, or ErrNotFound.
	Open(ctx context.Context, key string) (File, error)

	// Path returns the on-disk location of key.
	Path(key string) string

	// URL returns the public URL path of key.
	URL(key string) string

	// FS exposes the storage root for http.FileServerFS.
	FS() fs.FS
}

// ModTime returns the modification time of f, or the zero time.
func ModTime(f File) time.Time {
	fi, err := f.Stat()
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}
