package domain

import "time"

// ShareRecord publishes a personal entry to the community.
// At most one share exists per entry.
type ShareRecord struct {
	ID             int64      `json:"id"`
	EntryID        int64      `json:"entryId"`
	SharerID       int64      `json:"sharerId"`
	IsPublic       bool       `json:"isPublic"`
	AllowDownloads bool       `json:"allowDownloads"`
	Token          string     `json:"token"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// IsExpired reports whether the share has an expiry at or before now.
func (s *ShareRecord) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}

// ShareView is a share resolved through its token, with the entry it exposes.
type ShareView struct {
	Share  ShareRecord   `json:"share"`
	Entry  BookEntry     `json:"entry"`
	Sharer MemberSummary `json:"sharer"`
}
