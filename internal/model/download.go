package model

import "time"

// ResumeDownload records a single resume download.
// IPAddress and UserAgent are nil when the client did not provide them.
type ResumeDownload struct {
	ID           int64     `json:"id"`
	DownloadedAt time.Time `json:"downloaded_at"`
	IPAddress    *string   `json:"ip_address,omitempty"`
	UserAgent    *string   `json:"user_agent,omitempty"`
}
