package transform

import (
	"github.com/godilite/helpdesk-portal/internal/model"
)

// APIVersion selects the wire form produced for a consumer.
type APIVersion string

const (
	// APIVersionLegacy duplicates comment/content and author/createdBy for
	// consumers written against the older field names.
	APIVersionLegacy APIVersion = "v1"
	// APIVersionCurrent emits each comment field once.
	APIVersionCurrent APIVersion = "v2"
)

// ParseAPIVersion maps a request hint to a version, defaulting to current.
func ParseAPIVersion(s string) APIVersion {
	if APIVersion(s) == APIVersionLegacy {
		return APIVersionLegacy
	}
	return APIVersionCurrent
}

// EncodeComment renders c for the given consumer version.
func EncodeComment(c model.Comment, v APIVersion) map[string]any {
	out := map[string]any{
		"id":               c.ID,
		"author":           c.Author,
		"createdTime":      c.CreatedTime,
		"createdTimestamp": c.CreatedTimestamp,
		"ticketId":         c.TicketID,
		"isPublic":         c.IsPublic,
	}
	if v == APIVersionLegacy {
		out["comment"] = c.Body
		out["content"] = c.Body
		out["createdBy"] = c.Author
	} else {
		out["body"] = c.Body
	}
	return out
}

func EncodeComments(cs []model.Comment, v APIVersion) []any {
	out := make([]any, 0, len(cs))
	for _, c := range cs {
		out = append(out, EncodeComment(c, v))
	}
	return out
}

// EncodeTicket renders t with its comments in the given version.
func EncodeTicket(t model.Ticket, v APIVersion) map[string]any {
	return map[string]any{
		"id":                t.ID,
		"subject":           t.Subject,
		"description":       t.Description,
		"status":            string(t.Status),
		"priority":          string(t.Priority),
		"category":          t.Category,
		"dueDate":           t.DueDate,
		"createdTime":       t.CreatedTime,
		"createdTimestamp":  t.CreatedTimestamp,
		"modifiedTime":      t.ModifiedTime,
		"modifiedTimestamp": t.ModifiedTimestamp,
		"departmentId":      t.DepartmentID,
		"contactId":         t.ContactID,
		"accountId":         t.AccountID,
		"assigneeId":        t.AssigneeID,
		"comments":          EncodeComments(t.Comments, v),
		"isOverdue":         t.IsOverdue,
		"isEscalated":       t.IsEscalated,
	}
}

func EncodeTickets(ts []model.Ticket, v APIVersion) []any {
	out := make([]any, 0, len(ts))
	for _, t := range ts {
		out = append(out, EncodeTicket(t, v))
	}
	return out
}
