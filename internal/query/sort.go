package query

import (
	"math"
	"sort"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/transform"
)

// SortByDate returns a copy of tickets ordered newest first. The sort is
// stable; tickets with unreadable creation times sort as oldest.
func SortByDate(tickets []model.Ticket) []model.Ticket {
	return newestFirst(tickets, createdAt)
}

// SortByModified orders tickets by last modification, newest first.
func SortByModified(tickets []model.Ticket) []model.Ticket {
	return newestFirst(tickets, modifiedAt)
}

func newestFirst(tickets []model.Ticket, at func(model.Ticket) (time.Time, bool)) []model.Ticket {
	sorted := byNewest{
		tickets: make([]model.Ticket, len(tickets)),
		keys:    make([]int64, len(tickets)),
	}
	copy(sorted.tickets, tickets)
	for i, t := range sorted.tickets {
		sorted.keys[i] = math.MinInt64
		if ts, ok := at(t); ok {
			sorted.keys[i] = ts.UnixMilli()
		}
	}

	sort.Stable(sorted)
	return sorted.tickets
}

func modifiedAt(t model.Ticket) (time.Time, bool) {
	if parsed, ok := transform.ParseTime(t.ModifiedTime); ok {
		return parsed, true
	}
	if t.ModifiedTimestamp > 0 {
		return time.UnixMilli(t.ModifiedTimestamp), true
	}
	return createdAt(t)
}

type byNewest struct {
	tickets []model.Ticket
	keys    []int64
}

func (b byNewest) Len() int           { return len(b.tickets) }
func (b byNewest) Less(i, j int) bool { return b.keys[i] > b.keys[j] }
func (b byNewest) Swap(i, j int) {
	b.tickets[i], b.tickets[j] = b.tickets[j], b.tickets[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
