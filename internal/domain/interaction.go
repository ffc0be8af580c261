package domain

import "time"

// MaxCommentLength is the longest comment accepted, in runes.
const MaxCommentLength = 2000

// InteractionKind distinguishes likes from comments.
type InteractionKind string

// Interaction kinds.
const (
	InteractionLike    InteractionKind = "like"
	InteractionComment InteractionKind = "comment"
)

// Valid reports whether k is a known kind.
func (k InteractionKind) Valid() bool {
	return k == InteractionLike || k == InteractionComment
}

// Interaction is a like or comment left by a member on a share.
// Text is set only for comments.
type Interaction struct {
	ID        int64           `json:"id"`
	MemberID  int64           `json:"memberId"`
	ShareID   int64           `json:"shareId"`
	Kind      InteractionKind `json:"kind"`
	Text      string          `json:"text,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Comment is a comment interaction joined with its author.
type Comment struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"memberId"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}
