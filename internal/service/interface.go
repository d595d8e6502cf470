package service

import (
	"context"

	"github.com/godilite/helpdesk-portal/internal/model"
)

// CRMClient defines the raw calls made to the CRM proxy. Implementations
// return response bodies untouched; all shape handling happens here.
type CRMClient interface {
	ListTickets(ctx context.Context, filters model.Filters, page, pageSize int) ([]byte, error)
	GetTicket(ctx context.Context, id string) ([]byte, error)
	CreateTicket(ctx context.Context, draft model.TicketDraft) ([]byte, error)
	UpdateTicket(ctx context.Context, id string, patch model.TicketPatch) ([]byte, error)
	ListComments(ctx context.Context, ticketID string) ([]byte, error)
	AddComment(ctx context.Context, ticketID string, draft model.CommentDraft) ([]byte, error)
	ListCategories(ctx context.Context) ([]byte, error)
	ListContacts(ctx context.Context) ([]byte, error)
	ListAccounts(ctx context.Context) ([]byte, error)
	DashboardStats(ctx context.Context) ([]byte, error)
}
