package transform

import (
	"strconv"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
)

var (
	commentIDKeys     = []string{"id", "commentId"}
	commentBodyKeys   = []string{"comment", "content", "text", "body"}
	commentAuthorKeys = []string{"author", "authorName", "userName", "createdBy"}
)

// Comment maps a raw comment record onto the canonical model. Either of the
// historical naming schemes (comment/author or content/createdBy) is
// accepted. A record without an id gets a temp-<ms> id derived from now.
func Comment(raw Record, now time.Time) model.Comment {
	c := model.Comment{
		ID:       String(raw, commentIDKeys...),
		Body:     String(raw, commentBodyKeys...),
		Author:   commentAuthor(raw),
		TicketID: String(raw, "ticketId"),
		IsPublic: Bool(raw, true, "isPublic", "public"),
	}

	iso, ms, ok := timePair(raw,
		[]string{"createdTime", "commentedTime", "createdAt"},
		[]string{"createdTimestamp"})
	if !ok {
		iso, ms = FormatTime(now), now.UnixMilli()
	}
	c.CreatedTime = iso
	c.CreatedTimestamp = ms

	if c.ID == "" {
		c.ID = model.TempCommentPrefix + strconv.FormatInt(now.UnixMilli(), 10)
	}
	return c
}

// commentAuthor flattens author objects ({"name": ...}) that some
// integrations send in place of a display name.
func commentAuthor(raw Record) string {
	if name := String(raw, commentAuthorKeys...); name != "" {
		return name
	}
	for _, key := range commentAuthorKeys {
		if obj, ok := raw[key].(map[string]any); ok {
			if name := String(obj, "name", "displayName", "fullName", "email"); name != "" {
				return name
			}
		}
	}
	return ""
}

// Comments transforms every object in raw, preserving order. Temp ids in a
// list carry the element index so they stay unique within the ticket.
func Comments(raw []Record, now time.Time) []model.Comment {
	out := make([]model.Comment, 0, len(raw))
	for i, r := range raw {
		c := Comment(r, now)
		if String(r, commentIDKeys...) == "" {
			c.ID += "-" + strconv.Itoa(i)
		}
		out = append(out, c)
	}
	return out
}

// IsTempID reports whether id was synthesized by Comment.
func IsTempID(id string) bool {
	return len(id) > len(model.TempCommentPrefix) && id[:len(model.TempCommentPrefix)] == model.TempCommentPrefix
}
