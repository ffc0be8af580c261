package domain

import "time"

// FeedItem is a public share in the community feed with live interaction counts.
type FeedItem struct {
	ShareID        int64         `json:"shareId"`
	EntryID        int64         `json:"entryId"`
	Title          string        `json:"title"`
	Author         string        `json:"author"`
	Genre          string        `json:"genre,omitempty"`
	Year           int           `json:"year,omitempty"`
	IsPublicDomain bool          `json:"isPublicDomain"`
	AllowDownloads bool          `json:"allowDownloads"`
	Sharer         MemberSummary `json:"sharer"`
	LikeCount      int           `json:"likeCount"`
	CommentCount   int           `json:"commentCount"`
	SharedAt       time.Time     `json:"sharedAt"`
}

// Category groups shared entries by genre.
type Category struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// CategoryEntry is a shared entry listed under a category.
type CategoryEntry struct {
	EntryID  int64         `json:"entryId"`
	ShareID  int64         `json:"shareId"`
	Title    string        `json:"title"`
	Author   string        `json:"author"`
	Genre    string        `json:"genre"`
	Year     int           `json:"year,omitempty"`
	Sharer   MemberSummary `json:"sharer"`
	SharedAt time.Time     `json:"sharedAt"`
}
