package query

import (
	"github.com/godilite/helpdesk-portal/internal/model"
)

// GroupBy partitions items by key, keeping relative order within a group.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

func GroupByStatus(tickets []model.Ticket) map[model.Status][]model.Ticket {
	return GroupBy(tickets, func(t model.Ticket) model.Status { return t.Status })
}

func GroupByPriority(tickets []model.Ticket) map[model.Priority][]model.Ticket {
	return GroupBy(tickets, func(t model.Ticket) model.Priority { return t.Priority })
}

func GroupByCategory(tickets []model.Ticket) map[string][]model.Ticket {
	return GroupBy(tickets, func(t model.Ticket) string { return t.Category })
}
