package transform

import (
	"github.com/godilite/helpdesk-portal/internal/model"
)

// DashboardStats reads the upstream stats payload. Counters may arrive as
// numbers or numeric strings; missing counters are zero.
func DashboardStats(raw Record) model.DashboardStats {
	stats := model.DashboardStats{
		Total:          counter(raw, "total", "totalTickets"),
		Open:           counter(raw, "open", "openTickets"),
		Resolved:       counter(raw, "resolved", "resolvedTickets"),
		Closed:         counter(raw, "closed", "closedTickets"),
		RecentActivity: []model.Activity{},
	}

	if m := countMap(raw, "byPriority"); m != nil {
		stats.ByPriority = make(map[model.Priority]int, len(m))
		for k, v := range m {
			stats.ByPriority[model.Priority(k)] = v
		}
	}
	stats.ByCategory = countMap(raw, "byCategory")

	if items, ok := List(raw, "recentActivity"); ok {
		for _, item := range items {
			stats.RecentActivity = append(stats.RecentActivity, model.Activity{
				TicketID:  String(item, "ticketId", "id"),
				Subject:   String(item, "subject", "title"),
				Status:    model.Status(String(item, "status")),
				Timestamp: String(item, "timestamp", "modifiedTime", "createdTime"),
			})
		}
	}

	return stats
}

func counter(raw Record, keys ...string) int {
	n, _ := Int(raw, keys...)
	return int(n)
}

func countMap(raw Record, key string) map[string]int {
	obj, ok := raw[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]int, len(obj))
	for k := range obj {
		if n, ok := Int(obj, k); ok {
			out[k] = int(n)
		}
	}
	return out
}
