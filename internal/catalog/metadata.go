package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/portfolio/backend/internal/model"
)

// MetadataStatus describes how a metadata load ended.
type MetadataStatus string

const (
	MetadataLoaded  MetadataStatus = "loaded"
	MetadataAbsent  MetadataStatus = "absent"
	MetadataInvalid MetadataStatus = "invalid"
)

// MetadataOutcome reports the result of LoadMetadata. Err is set only when
// Status is MetadataInvalid; Skipped counts entries without a filename.
type MetadataOutcome struct {
	Status  MetadataStatus
	Count   int
	Skipped int
	Err     error
}

// Metadata maps an exact file or directory name to its curated fields.
type Metadata map[string]model.ProjectMetadata

// Lookup returns the metadata for name, if any.
func (m Metadata) Lookup(name string) (model.ProjectMetadata, bool) {
	md, ok := m[name]
	return md, ok
}

type metadataDocument struct {
	Projects []model.ProjectMetadata `json:"projects"`
}

// LoadMetadata reads the projects.json document at path. It never fails:
// a missing file yields an empty lookup with MetadataAbsent, unreadable or
// malformed content an empty lookup with MetadataInvalid.
func LoadMetadata(path string) (Metadata, MetadataOutcome) {
	if path == "" {
		return Metadata{}, MetadataOutcome{Status: MetadataAbsent}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Metadata{}, MetadataOutcome{Status: MetadataAbsent}
		}
		return Metadata{}, MetadataOutcome{Status: MetadataInvalid, Err: fmt.Errorf("read metadata: %w", err)}
	}

	return ParseMetadata(data)
}

// ParseMetadata decodes a metadata document. Entries with an empty
// filename cannot be looked up and are skipped; a later entry with the
// same filename replaces an earlier one.
func ParseMetadata(data []byte) (Metadata, MetadataOutcome) {
	var doc metadataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Metadata{}, MetadataOutcome{Status: MetadataInvalid, Err: fmt.Errorf("parse metadata: %w", err)}
	}

	md := make(Metadata, len(doc.Projects))
	out := MetadataOutcome{Status: MetadataLoaded}
	for _, p := range doc.Projects {
		if p.Filename == "" {
			out.Skipped++
			continue
		}
		md[p.Filename] = p
	}
	out.Count = len(md)
	return md, out
}
