package model

// TempCommentPrefix marks comment ids synthesized locally for records that
// arrived without one.
const TempCommentPrefix = "temp-"

// Comment is the canonical ticket comment. Body and Author are the single
// source of truth; legacy field aliases are produced by the transform
// package's versioned encoder, never stored here.
type Comment struct {
	ID               string `json:"id"`
	Body             string `json:"body"`
	Author           string `json:"author"`
	CreatedTime      string `json:"createdTime"`
	CreatedTimestamp int64  `json:"createdTimestamp"`
	TicketID         string `json:"ticketId"`
	IsPublic         bool   `json:"isPublic"`
}

// CommentDraft is the payload for posting a comment.
type CommentDraft struct {
	Body     string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}
