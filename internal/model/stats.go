package model

// Stats holds the counters returned by GET /api/stats.
// RecentContacts is always <= TotalContacts.
type Stats struct {
	TotalContacts  int64 `json:"total_contacts"`
	TotalDownloads int64 `json:"total_downloads"`
	RecentContacts int64 `json:"recent_contacts"`
}
