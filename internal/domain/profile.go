package domain

import "time"

// Profile is a member's public identity with derived social counts.
type Profile struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	FollowerCount  int       `json:"followerCount"`
	FollowingCount int       `json:"followingCount"`
	BookCount      int       `json:"bookCount"`
	SharedCount    int       `json:"sharedCount"`
}
