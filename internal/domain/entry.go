package domain

import "time"

// MaxRating is the highest rating a member can give an entry.
const MaxRating = 5

// BookEntry is a book in a member's personal collection.
// Visibility only moves from private to shared; IsShared is never set directly.
type BookEntry struct {
	ID             int64     `json:"id"`
	MemberID       int64     `json:"memberId"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Genre          string    `json:"genre,omitempty"`
	Year           int       `json:"year,omitempty"`
	IsPublicDomain bool      `json:"isPublicDomain"`
	IsRead         bool      `json:"isRead"`
	IsShared       bool      `json:"isShared"`
	Notes          string    `json:"notes,omitempty"`
	Rating         int       `json:"rating"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OwnedBy reports whether the entry belongs to memberID.
func (e *BookEntry) OwnedBy(memberID int64) bool {
	return e.MemberID == memberID
}

// EntryUpdate carries the mutable fields of an entry. Nil fields are left unchanged.
type EntryUpdate struct {
	IsRead *bool
	Notes  *string
	Rating *int
}
