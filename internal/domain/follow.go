package domain

import "time"

// FollowEdge is a directed follow relation. A member never follows themself.
type FollowEdge struct {
	FollowerID int64     `json:"followerId"`
	FolloweeID int64     `json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}
