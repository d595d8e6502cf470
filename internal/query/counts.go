package query

import (
	"github.com/godilite/helpdesk-portal/internal/model"
)

// StatusCounts counts tickets per status. Every known status is present,
// zero when unseen; unknown statuses are added as they occur.
func StatusCounts(tickets []model.Ticket) map[model.Status]int {
	counts := make(map[model.Status]int, len(model.KnownStatuses))
	for _, s := range model.KnownStatuses {
		counts[s] = 0
	}
	for status, group := range GroupByStatus(tickets) {
		counts[status] += len(group)
	}
	return counts
}

// PriorityCounts counts tickets per priority with the same seeding policy
// as StatusCounts.
func PriorityCounts(tickets []model.Ticket) map[model.Priority]int {
	counts := make(map[model.Priority]int, len(model.KnownPriorities))
	for _, p := range model.KnownPriorities {
		counts[p] = 0
	}
	for priority, group := range GroupByPriority(tickets) {
		counts[priority] += len(group)
	}
	return counts
}

// Stats derives dashboard counters from a ticket collection. Recent
// activity holds up to recent tickets, most recently modified first.
func Stats(tickets []model.Ticket, recent int) model.DashboardStats {
	statuses := StatusCounts(tickets)

	byCategory := make(map[string]int)
	for category, group := range GroupByCategory(tickets) {
		byCategory[category] = len(group)
	}

	stats := model.DashboardStats{
		Total:          len(tickets),
		Open:           statuses[model.StatusNew] + statuses[model.StatusOpen] + statuses[model.StatusInProgress] + statuses[model.StatusOnHold],
		Resolved:       statuses[model.StatusResolved],
		Closed:         statuses[model.StatusClosed],
		ByPriority:     PriorityCounts(tickets),
		ByCategory:     byCategory,
		RecentActivity: []model.Activity{},
	}

	for _, t := range Paginate(SortByModified(tickets), 1, recent) {
		stats.RecentActivity = append(stats.RecentActivity, model.Activity{
			TicketID:  t.ID,
			Subject:   t.Subject,
			Status:    t.Status,
			Timestamp: t.ModifiedTime,
		})
	}
	return stats
}
