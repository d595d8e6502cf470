package transform

import (
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
)

// Ticket maps a raw ticket record onto the canonical model, defaulting every
// optional field. ok is false when the record carries no id; such records
// must not enter the store.
func Ticket(raw Record, now time.Time) (model.Ticket, bool) {
	id := String(raw, "id")
	if id == "" {
		return model.Ticket{}, false
	}

	t := model.Ticket{
		ID:           id,
		Subject:      orDefault(String(raw, "subject", "title"), model.DefaultSubject),
		Description:  String(raw, "description"),
		Status:       model.Status(orDefault(String(raw, "status"), string(model.DefaultStatus))),
		Priority:     model.Priority(orDefault(String(raw, "priority"), string(model.DefaultPriority))),
		Category:     orDefault(String(raw, "category", "departmentId"), model.DefaultCategory),
		DueDate:      String(raw, "dueDate"),
		DepartmentID: String(raw, "departmentId"),
		ContactID:    String(raw, "contactId"),
		AccountID:    String(raw, "accountId"),
		AssigneeID:   String(raw, "assigneeId"),
		IsOverdue:    Bool(raw, false, "isOverdue"),
		IsEscalated:  Bool(raw, false, "isEscalated"),
	}

	created, createdMS, ok := timePair(raw,
		[]string{"createdTime", "createdAt"},
		[]string{"createdTimestamp"})
	if !ok {
		created, createdMS = FormatTime(now), now.UnixMilli()
	}
	t.CreatedTime, t.CreatedTimestamp = created, createdMS

	modified, modifiedMS, ok := timePair(raw,
		[]string{"modifiedTime", "updatedAt"},
		[]string{"modifiedTimestamp"})
	if !ok {
		modified, modifiedMS = created, createdMS
	}
	t.ModifiedTime, t.ModifiedTimestamp = modified, modifiedMS

	t.Comments = []model.Comment{}
	if items, ok := List(raw, "comments"); ok {
		t.Comments = Comments(items, now)
	}
	for i := range t.Comments {
		if t.Comments[i].TicketID == "" {
			t.Comments[i].TicketID = id
		}
	}

	return t, true
}

// Tickets transforms a raw list, dropping records without an id.
func Tickets(raw []Record, now time.Time) []model.Ticket {
	out := make([]model.Ticket, 0, len(raw))
	for _, r := range raw {
		if t, ok := Ticket(r, now); ok {
			out = append(out, t)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
