package mocks

import (
	"context"
	"errors"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/service"
)

// MockHelpdeskService is a mock implementation of the HelpdeskService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockHelpdeskService struct {
	ListTicketsFunc    func(ctx context.Context, filters model.Filters, page, pageSize int) (service.TicketList, error)
	GetTicketFunc      func(ctx context.Context, id string) (model.Ticket, error)
	CreateTicketFunc   func(ctx context.Context, draft model.TicketDraft) (model.Ticket, error)
	UpdateTicketFunc   func(ctx context.Context, id string, patch model.TicketPatch) (model.Ticket, error)
	ListCommentsFunc   func(ctx context.Context, ticketID string) ([]model.Comment, error)
	AddCommentFunc     func(ctx context.Context, ticketID string, draft model.CommentDraft) (model.Comment, error)
	ListCategoriesFunc func(ctx context.Context) ([]model.Category, error)
	ListContactsFunc   func(ctx context.Context) ([]model.Contact, error)
	ListAccountsFunc   func(ctx context.Context) ([]model.Account, error)
	DashboardStatsFunc func(ctx context.Context) (service.Dashboard, error)
}

func (m *MockHelpdeskService) ListTickets(ctx context.Context, filters model.Filters, page, pageSize int) (service.TicketList, error) {
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(ctx, filters, page, pageSize)
	}
	return service.TicketList{}, errors.New("ListTicketsFunc not implemented")
}

func (m *MockHelpdeskService) GetTicket(ctx context.Context, id string) (model.Ticket, error) {
	if m.GetTicketFunc != nil {
		return m.GetTicketFunc(ctx, id)
	}
	return model.Ticket{}, errors.New("GetTicketFunc not implemented")
}

func (m *MockHelpdeskService) CreateTicket(ctx context.Context, draft model.TicketDraft) (model.Ticket, error) {
	if m.CreateTicketFunc != nil {
		return m.CreateTicketFunc(ctx, draft)
	}
	return model.Ticket{}, errors.New("CreateTicketFunc not implemented")
}

func (m *MockHelpdeskService) UpdateTicket(ctx context.Context, id string, patch model.TicketPatch) (model.Ticket, error) {
	if m.UpdateTicketFunc != nil {
		return m.UpdateTicketFunc(ctx, id, patch)
	}
	return model.Ticket{}, errors.New("UpdateTicketFunc not implemented")
}

func (m *MockHelpdeskService) ListComments(ctx context.Context, ticketID string) ([]model.Comment, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, ticketID)
	}
	return nil, errors.New("ListCommentsFunc not implemented")
}

func (m *MockHelpdeskService) AddComment(ctx context.Context, ticketID string, draft model.CommentDraft) (model.Comment, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, ticketID, draft)
	}
	return model.Comment{}, errors.New("AddCommentFunc not implemented")
}

func (m *MockHelpdeskService) ListCategories(ctx context.Context) ([]model.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, errors.New("ListCategoriesFunc not implemented")
}

func (m *MockHelpdeskService) ListContacts(ctx context.Context) ([]model.Contact, error) {
	if m.ListContactsFunc != nil {
		return m.ListContactsFunc(ctx)
	}
	return nil, errors.New("ListContactsFunc not implemented")
}

func (m *MockHelpdeskService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx)
	}
	return nil, errors.New("ListAccountsFunc not implemented")
}

func (m *MockHelpdeskService) DashboardStats(ctx context.Context) (service.Dashboard, error) {
	if m.DashboardStatsFunc != nil {
		return m.DashboardStatsFunc(ctx)
	}
	return service.Dashboard{}, errors.New("DashboardStatsFunc not implemented")
}
