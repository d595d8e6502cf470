package service

import (
	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/query"
)

// TicketList is one page of tickets as returned to callers.
type TicketList struct {
	Tickets  []model.Ticket
	Page     model.Page
	PageSize int
}

// TotalPages is the number of pages at the list's page size.
func (l TicketList) TotalPages() int {
	return query.TotalPages(l.Page.Total, l.PageSize)
}

// StatsSource records where dashboard counters came from.
type StatsSource string

const (
	StatsUpstream StatsSource = "upstream"
	StatsDerived  StatsSource = "derived"
)

// Dashboard is the dashboard read model.
type Dashboard struct {
	Stats  model.DashboardStats
	Source StatsSource
}
