package query

import (
	"strings"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/transform"
)

// Predicate reports whether a ticket satisfies one constraint.
type Predicate func(model.Ticket) bool

// FilterTickets returns the tickets matching every constraint present in f,
// in input order. Absent constraints match everything.
func FilterTickets(tickets []model.Ticket, f model.Filters) []model.Ticket {
	return Where(tickets, Predicates(f)...)
}

// Predicates builds one predicate per present filter field.
func Predicates(f model.Filters) []Predicate {
	var preds []Predicate
	if f.Status != "" {
		preds = append(preds, HasStatus(f.Status))
	}
	if f.Priority != "" {
		preds = append(preds, HasPriority(f.Priority))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		preds = append(preds, InCategory(c))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		preds = append(preds, Matches(s))
	}
	if f.From != nil || f.To != nil {
		preds = append(preds, CreatedBetween(f.From, f.To))
	}
	return preds
}

// Where keeps the tickets for which all preds hold.
func Where(tickets []model.Ticket, preds ...Predicate) []model.Ticket {
	out := make([]model.Ticket, 0, len(tickets))
outer:
	for _, t := range tickets {
		for _, p := range preds {
			if !p(t) {
				continue outer
			}
		}
		out = append(out, t)
	}
	return out
}

func HasStatus(s model.Status) Predicate {
	return func(t model.Ticket) bool { return t.Status == s }
}

func HasPriority(p model.Priority) Predicate {
	return func(t model.Ticket) bool { return t.Priority == p }
}

// InCategory matches the category or, for department-keyed tickets, the
// department id.
func InCategory(c string) Predicate {
	return func(t model.Ticket) bool { return t.Category == c || t.DepartmentID == c }
}

// Matches is a case-insensitive substring match over subject and
// description.
func Matches(search string) Predicate {
	needle := strings.ToLower(search)
	return func(t model.Ticket) bool {
		return strings.Contains(strings.ToLower(t.Subject), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
	}
}

// CreatedBetween is an inclusive range over the creation time. A nil bound
// is open. Tickets whose creation time cannot be read never match.
func CreatedBetween(from, to *time.Time) Predicate {
	return func(t model.Ticket) bool {
		created, ok := createdAt(t)
		if !ok {
			return false
		}
		if from != nil && created.Before(*from) {
			return false
		}
		if to != nil && created.After(*to) {
			return false
		}
		return true
	}
}

func createdAt(t model.Ticket) (time.Time, bool) {
	if parsed, ok := transform.ParseTime(t.CreatedTime); ok {
		return parsed, true
	}
	if t.CreatedTimestamp > 0 {
		return time.UnixMilli(t.CreatedTimestamp), true
	}
	return time.Time{}, false
}
