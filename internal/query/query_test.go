package query

import (
	"testing"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTickets() []model.Ticket {
	return []model.Ticket{
		{ID: "T1", Subject: "Login issue", Description: "Cannot sign in", Status: model.StatusOpen, Priority: model.PriorityHigh, Category: "Access", CreatedTime: "2025-01-10T09:00:00Z", ModifiedTime: "2025-01-12T09:00:00Z"},
		{ID: "T2", Subject: "Invoice wrong", Description: "Billed twice", Status: model.StatusOpen, Priority: model.PriorityLow, Category: "Billing", CreatedTime: "2025-01-05T09:00:00Z", ModifiedTime: "2025-01-20T09:00:00Z"},
		{ID: "T3", Subject: "Refund", Description: "Please refund LOGIN fee", Status: model.StatusClosed, Priority: model.PriorityHigh, Category: "Billing", CreatedTime: "2025-01-15T09:00:00Z", ModifiedTime: "2025-01-15T09:00:00Z"},
		{ID: "T4", Subject: "Feature request", Status: model.StatusOpen, Priority: model.PriorityHigh, Category: "General", DepartmentID: "D9", CreatedTime: "garbage"},
	}
}

func ids(tickets []model.Ticket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFilterTickets(t *testing.T) {
	tickets := sampleTickets()

	cases := []struct {
		name    string
		filters model.Filters
		want    []string
	}{
		{name: "no filters returns everything", filters: model.Filters{}, want: []string{"T1", "T2", "T3", "T4"}},
		{name: "status and priority combine", filters: model.Filters{Status: model.StatusOpen, Priority: model.PriorityHigh}, want: []string{"T1", "T4"}},
		{name: "category", filters: model.Filters{Category: "Billing"}, want: []string{"T2", "T3"}},
		{name: "category matches department", filters: model.Filters{Category: "D9"}, want: []string{"T4"}},
		{name: "search is case insensitive over subject and description", filters: model.Filters{Search: "login"}, want: []string{"T1", "T3"}},
		{name: "blank search is no constraint", filters: model.Filters{Search: "   "}, want: []string{"T1", "T2", "T3", "T4"}},
		{name: "closed date range", filters: model.Filters{From: datePtr(2025, 1, 5), To: datePtr(2025, 1, 10)}, want: []string{"T2"}},
		{name: "open ended from", filters: model.Filters{From: datePtr(2025, 1, 10)}, want: []string{"T1", "T3"}},
		{name: "nothing matches", filters: model.Filters{Status: model.StatusResolved}, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterTickets(tickets, tc.filters)
			assert.Equal(t, tc.want, ids(got))
		})
	}

	t.Run("range bounds are inclusive", func(t *testing.T) {
		from := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
		to := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

		got := FilterTickets(tickets, model.Filters{From: &from, To: &to})

		assert.Equal(t, []string{"T1", "T2"}, ids(got))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := sampleTickets()
		_ = FilterTickets(tickets, model.Filters{Status: model.StatusClosed})
		assert.Equal(t, before, tickets)
	})
}

func TestSortByDate(t *testing.T) {
	t.Run("newest first with unreadable dates last", func(t *testing.T) {
		got := SortByDate(sampleTickets())
		assert.Equal(t, []string{"T3", "T1", "T2", "T4"}, ids(got))
	})

	t.Run("equal times keep input order", func(t *testing.T) {
		tickets := []model.Ticket{
			{ID: "A", CreatedTime: "2025-01-01T00:00:00Z"},
			{ID: "B", CreatedTime: "2025-02-01T00:00:00Z"},
			{ID: "C", CreatedTime: "2025-01-01T00:00:00Z"},
			{ID: "D", CreatedTime: ""},
			{ID: "E", CreatedTime: "2025-01-01T00:00:00.000Z"},
			{ID: "F", CreatedTime: "nope"},
		}

		got := SortByDate(tickets)

		assert.Equal(t, []string{"B", "A", "C", "E", "D", "F"}, ids(got))
		assert.Equal(t, "A", tickets[0].ID, "input must not be reordered")
	})

	t.Run("falls back to the epoch timestamp", func(t *testing.T) {
		tickets := []model.Ticket{
			{ID: "A", CreatedTimestamp: 1000},
			{ID: "B", CreatedTimestamp: 2000},
		}
		assert.Equal(t, []string{"B", "A"}, ids(SortByDate(tickets)))
	})
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	cases := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{name: "first page", page: 1, pageSize: 2, want: []int{1, 2}},
		{name: "last partial page", page: 3, pageSize: 2, want: []int{5}},
		{name: "beyond data", page: 4, pageSize: 2, want: []int{}},
		{name: "page below one is clamped", page: 0, pageSize: 2, want: []int{1, 2}},
		{name: "zero page size", page: 1, pageSize: 0, want: []int{}},
		{name: "page larger than data", page: 1, pageSize: 10, want: []int{1, 2, 3, 4, 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Paginate(items, tc.page, tc.pageSize))
		})
	}

	t.Run("window does not alias input", func(t *testing.T) {
		page := Paginate(items, 1, 2)
		page[0] = 99
		assert.Equal(t, 1, items[0])
	})

	t.Run("total pages", func(t *testing.T) {
		assert.Equal(t, 3, TotalPages(5, 2))
		assert.Equal(t, 1, TotalPages(2, 2))
		assert.Equal(t, 0, TotalPages(0, 2))
		assert.Equal(t, 0, TotalPages(5, 0))
	})
}

func TestGroupBy(t *testing.T) {
	tickets := sampleTickets()

	byStatus := GroupByStatus(tickets)
	require.Len(t, byStatus, 2)
	assert.Equal(t, []string{"T1", "T2", "T4"}, ids(byStatus[model.StatusOpen]))
	assert.Equal(t, []string{"T3"}, ids(byStatus[model.StatusClosed]))

	byCategory := GroupByCategory(tickets)
	assert.Equal(t, []string{"T2", "T3"}, ids(byCategory["Billing"]))

	byPriority := GroupByPriority(tickets)
	assert.Equal(t, []string{"T1", "T3", "T4"}, ids(byPriority[model.PriorityHigh]))

	byLength := GroupBy([]string{"a", "bb", "c"}, func(s string) int { return len(s) })
	assert.Equal(t, map[int][]string{1: {"a", "c"}, 2: {"bb"}}, byLength)
}

func TestCounts(t *testing.T) {
	t.Run("known statuses are pre-seeded", func(t *testing.T) {
		counts := StatusCounts(nil)

		assert.Len(t, counts, len(model.KnownStatuses))
		for _, s := range model.KnownStatuses {
			assert.Equal(t, 0, counts[s])
		}
	})

	t.Run("unknown values are counted", func(t *testing.T) {
		tickets := append(sampleTickets(), model.Ticket{ID: "T5", Status: "Escalated", Priority: "P0"})

		statuses := StatusCounts(tickets)
		priorities := PriorityCounts(tickets)

		assert.Equal(t, 3, statuses[model.StatusOpen])
		assert.Equal(t, 1, statuses[model.StatusClosed])
		assert.Equal(t, 1, statuses["Escalated"])
		assert.Equal(t, 0, statuses[model.StatusResolved])
		assert.Len(t, statuses, len(model.KnownStatuses)+1)

		assert.Equal(t, 3, priorities[model.PriorityHigh])
		assert.Equal(t, 0, priorities[model.PriorityUrgent])
		assert.Equal(t, 1, priorities["P0"])
	})
}

func TestStats(t *testing.T) {
	stats := Stats(sampleTickets(), 2)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Open)
	assert.Equal(t, 1, stats.Closed)
	assert.Equal(t, 0, stats.Resolved)
	assert.Equal(t, 3, stats.ByPriority[model.PriorityHigh])
	assert.Equal(t, 2, stats.ByCategory["Billing"])

	require.Len(t, stats.RecentActivity, 2)
	assert.Equal(t, "T2", stats.RecentActivity[0].TicketID)
	assert.Equal(t, "T3", stats.RecentActivity[1].TicketID)
}
