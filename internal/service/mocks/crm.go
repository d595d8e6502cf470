package mocks

import (
	"context"
	"errors"

	"github.com/godilite/helpdesk-portal/internal/model"
)

// MockCRMClient is a mock implementation of the CRMClient interface
// for testing the service layer.
type MockCRMClient struct {
	ListTicketsFunc    func(ctx context.Context, filters model.Filters, page, pageSize int) ([]byte, error)
	GetTicketFunc      func(ctx context.Context, id string) ([]byte, error)
	CreateTicketFunc   func(ctx context.Context, draft model.TicketDraft) ([]byte, error)
	UpdateTicketFunc   func(ctx context.Context, id string, patch model.TicketPatch) ([]byte, error)
	ListCommentsFunc   func(ctx context.Context, ticketID string) ([]byte, error)
	AddCommentFunc     func(ctx context.Context, ticketID string, draft model.CommentDraft) ([]byte, error)
	ListCategoriesFunc func(ctx context.Context) ([]byte, error)
	ListContactsFunc   func(ctx context.Context) ([]byte, error)
	ListAccountsFunc   func(ctx context.Context) ([]byte, error)
	DashboardStatsFunc func(ctx context.Context) ([]byte, error)
}

func (m *MockCRMClient) ListTickets(ctx context.Context, filters model.Filters, page, pageSize int) ([]byte, error) {
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(ctx, filters, page, pageSize)
	}
	return nil, errors.New("ListTicketsFunc not implemented")
}

func (m *MockCRMClient) GetTicket(ctx context.Context, id string) ([]byte, error) {
	if m.GetTicketFunc != nil {
		return m.GetTicketFunc(ctx, id)
	}
	return nil, errors.New("GetTicketFunc not implemented")
}

func (m *MockCRMClient) CreateTicket(ctx context.Context, draft model.TicketDraft) ([]byte, error) {
	if m.CreateTicketFunc != nil {
		return m.CreateTicketFunc(ctx, draft)
	}
	return nil, errors.New("CreateTicketFunc not implemented")
}

func (m *MockCRMClient) UpdateTicket(ctx context.Context, id string, patch model.TicketPatch) ([]byte, error) {
	if m.UpdateTicketFunc != nil {
		return m.UpdateTicketFunc(ctx, id, patch)
	}
	return nil, errors.New("UpdateTicketFunc not implemented")
}

func (m *MockCRMClient) ListComments(ctx context.Context, ticketID string) ([]byte, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, ticketID)
	}
	return nil, errors.New("ListCommentsFunc not implemented")
}

func (m *MockCRMClient) AddComment(ctx context.Context, ticketID string, draft model.CommentDraft) ([]byte, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, ticketID, draft)
	}
	return nil, errors.New("AddCommentFunc not implemented")
}

func (m *MockCRMClient) ListCategories(ctx context.Context) ([]byte, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, errors.New("ListCategoriesFunc not implemented")
}

func (m *MockCRMClient) ListContacts(ctx context.Context) ([]byte, error) {
	if m.ListContactsFunc != nil {
		return m.ListContactsFunc(ctx)
	}
	return nil, errors.New("ListContactsFunc not implemented")
}

func (m *MockCRMClient) ListAccounts(ctx context.Context) ([]byte, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx)
	}
	return nil, errors.New("ListAccountsFunc not implemented")
}

func (m *MockCRMClient) DashboardStats(ctx context.Context) ([]byte, error) {
	if m.DashboardStatsFunc != nil {
		return m.DashboardStatsFunc(ctx)
	}
	return nil, errors.New("DashboardStatsFunc not implemented")
}

// Body returns a func that always answers with body.
func Body(body string) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		return []byte(body), nil
	}
}
