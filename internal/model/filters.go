package model

import (
	"net/url"
	"strings"
	"time"
)

// Filters is a sparse set of ticket list constraints. A zero field means
// "no constraint", never "match nothing".
type Filters struct {
	Status   Status
	Priority Priority
	Category string
	Search   string
	From     *time.Time
	To       *time.Time
}

// IsEmpty reports whether no constraint is set.
func (f Filters) IsEmpty() bool {
	return f.Status == "" &&
		f.Priority == "" &&
		strings.TrimSpace(f.Category) == "" &&
		strings.TrimSpace(f.Search) == "" &&
		f.From == nil &&
		f.To == nil
}

// Values serializes the present constraints as query parameters. Absent or
// blank fields are omitted entirely.
func (f Filters) Values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		q.Set("category", v)
	}
	if v := strings.TrimSpace(f.Search); v != "" {
		q.Set("search", v)
	}
	if f.From != nil {
		q.Set("from", f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		q.Set("to", f.To.UTC().Format(time.RFC3339))
	}
	return q
}

// Key returns a stable identity for the filter set.
func (f Filters) Key() string {
	return f.Values().Encode()
}
