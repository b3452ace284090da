package model

// ProjectEntry is one item of the project catalog. It is derived from the
// projects directory on every request and never persisted.
type ProjectEntry struct {
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	GitHub      string   `json:"github"`
}

// ProjectMetadata is one element of the "projects" array in projects.json.
// Pointer fields are nil when the key is absent so that defaults only
// apply to omitted keys, not to keys set to an empty value.
type ProjectMetadata struct {
	Filename    string   `json:"filename"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    *string  `json:"category,omitempty"`
	GitHub      *string  `json:"github,omitempty"`
}
