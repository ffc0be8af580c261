// Package domain contains the core entities of the BookCircle community:
// members, their personal book entries, shares and the interactions around them.
package domain

import "time"

// Member is a registered community member.
type Member struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Name returns the display name, falling back to the username.
func (m *Member) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Username
}

// Summary returns the public identity of the member.
func (m *Member) Summary() MemberSummary {
	return MemberSummary{
		ID:          m.ID,
		Username:    m.Username,
		DisplayName: m.Name(),
		AvatarURL:   m.AvatarURL,
	}
}

// MemberSummary is the identity shown next to shares, comments and follow lists.
type MemberSummary struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}
