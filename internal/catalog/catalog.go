// Package catalog builds the project list shown on the portfolio page by
// scanning the projects directory and merging it with projects.json.
// Nothing is cached: every List call reads the filesystem again.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/portfolio/backend/internal/model"
)

const (
	DefaultCategory = "all"
	DefaultGitHub   = "https://github.com"
)

// imageExtensions is the set of file extensions listed as projects,
// compared case-insensitively.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ErrAggregation is matched by errors.Is for any *AggregationError.
var ErrAggregation = errors.New("project aggregation failed")

// AggregationError is returned when the projects directory cannot be
// enumerated.
type AggregationError struct {
	Dir string
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("list projects in %s: %v", e.Dir, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

func (e *AggregationError) Is(target error) bool { return target == ErrAggregation }

// Config holds the locations the Aggregator reads from.
type Config struct {
	// Dir is the projects directory on disk.
	Dir string
	// MetadataPath is the projects.json file. Empty disables metadata.
	MetadataPath string
	// URLPrefix is the public path under which Dir is served,
	// e.g. "/static/assets/projects".
	URLPrefix string
	Logger    *slog.Logger
}

// Aggregator produces the ordered project list. It is stateless and safe
// for concurrent use.
type Aggregator struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Aggregator.
func New(cfg Config) *Aggregator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg.URLPrefix = strings.TrimSuffix(cfg.URLPrefix, "/")
	return &Aggregator{cfg: cfg, logger: logger}
}

// List returns the projects sorted by title. A missing directory yields an
// empty list and no error; a directory that cannot be read yields an
// *AggregationError. Metadata problems are logged and otherwise ignored.
func (a *Aggregator) List(ctx context.Context) ([]model.ProjectEntry, error) {
	projects := []model.ProjectEntry{}

	if _, err := os.Stat(a.cfg.Dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.WarnContext(ctx, "projects directory not found", "dir", a.cfg.Dir)
			return projects, nil
		}
		return nil, &AggregationError{Dir: a.cfg.Dir, Err: err}
	}

	meta, outcome := LoadMetadata(a.cfg.MetadataPath)
	switch outcome.Status {
	case MetadataLoaded:
		a.logger.InfoContext(ctx, "loaded project metadata", "count", outcome.Count, "skipped", outcome.Skipped)
	case MetadataInvalid:
		a.logger.ErrorContext(ctx, "error loading project metadata", "path", a.cfg.MetadataPath, "error", outcome.Err)
	}

	entries, err := os.ReadDir(a.cfg.Dir)
	if err != nil {
		return nil, &AggregationError{Dir: a.cfg.Dir, Err: err}
	}

	for _, e := range entries {
		name := e.Name()
		md, hasMeta := meta.Lookup(name)

		if a.isDir(e) {
			if !hasMeta {
				continue
			}
			projects = append(projects, a.entry(name, name, fmt.Sprintf("Project: %s", name), md))
			continue
		}

		stem, ext := splitExt(name)
		if !imageExtensions[strings.ToLower(ext)] {
			continue
		}
		projects = append(projects, a.entry(name, stem, "", md))
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Title < projects[j].Title
	})

	a.logger.InfoContext(ctx, "listed projects", "count", len(projects))
	return projects, nil
}

// entry fills every field md omits with its default. titleBase is the name
// the default title is derived from.
func (a *Aggregator) entry(name, titleBase, defaultDescription string, md model.ProjectMetadata) model.ProjectEntry {
	p := model.ProjectEntry{
		Title:       defaultTitle(titleBase),
		Image:       a.publicPath(name),
		Description: defaultDescription,
		Tags:        []string{},
		Category:    DefaultCategory,
		GitHub:      DefaultGitHub,
	}
	if md.Title != nil {
		p.Title = *md.Title
	}
	if md.Description != nil {
		p.Description = *md.Description
	}
	if md.Tags != nil {
		p.Tags = append([]string{}, md.Tags...)
	}
	if md.Category != nil {
		p.Category = *md.Category
	}
	if md.GitHub != nil {
		p.GitHub = *md.GitHub
	}
	return p
}

func (a *Aggregator) publicPath(name string) string {
	return a.cfg.URLPrefix + "/" + name
}

// isDir reports whether e is a directory, following symlinks.
func (a *Aggregator) isDir(e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	fi, err := os.Stat(filepath.Join(a.cfg.Dir, e.Name()))
	return err == nil && fi.IsDir()
}
