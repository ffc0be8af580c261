package domain

import "time"

// CatalogBook is a title in the shared catalogue. Only public-domain
// titles can be downloaded.
type CatalogBook struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Genre          string    `json:"genre,omitempty"`
	Year           int       `json:"year,omitempty"`
	IsRead         bool      `json:"isRead"`
	IsPublicDomain bool      `json:"isPublicDomain"`
	DownloadCount  int       `json:"downloadCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Download records a simulated download of a catalogue book.
type Download struct {
	ID           string    `json:"id"`
	BookID       int64     `json:"bookId"`
	MemberID     *int64    `json:"memberId,omitempty"`
	DownloadedAt time.Time `json:"downloadedAt"`
}
