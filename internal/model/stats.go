package model

// DashboardStats aggregates ticket counters for the dashboard view. It is
// recomputed on every fetch and never stored.
type DashboardStats struct {
	Total          int              `json:"total"`
	Open           int              `json:"open"`
	Resolved       int              `json:"resolved"`
	Closed         int              `json:"closed"`
	ByPriority     map[Priority]int `json:"byPriority,omitempty"`
	ByCategory     map[string]int   `json:"byCategory,omitempty"`
	RecentActivity []Activity       `json:"recentActivity"`
}

// Activity is one entry of the dashboard's recent activity feed.
type Activity struct {
	TicketID  string `json:"ticketId"`
	Subject   string `json:"subject"`
	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Page is the pagination metadata that accompanies a ticket list.
type Page struct {
	Total int `json:"total"`
	Page  int `json:"page"`
}
