package grpc

import (
	"context"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/service"
)

// Cacher defines the interface for cache operations. Get reports a missing
// key as redis.Nil.
type Cacher interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type HelpdeskService interface {
	ListTickets(ctx context.Context, filters model.Filters, page, pageSize int) (service.TicketList, error)
	GetTicket(ctx context.Context, id string) (model.Ticket, error)
	CreateTicket(ctx context.Context, draft model.TicketDraft) (model.Ticket, error)
	UpdateTicket(ctx context.Context, id string, patch model.TicketPatch) (model.Ticket, error)
	ListComments(ctx context.Context, ticketID string) ([]model.Comment, error)
	AddComment(ctx context.Context, ticketID string, draft model.CommentDraft) (model.Comment, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListContacts(ctx context.Context) ([]model.Contact, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	DashboardStats(ctx context.Context) (service.Dashboard, error)
}
