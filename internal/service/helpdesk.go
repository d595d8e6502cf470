package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/normalize"
	"github.com/godilite/helpdesk-portal/internal/query"
	"github.com/godilite/helpdesk-portal/internal/store"
	"github.com/godilite/helpdesk-portal/internal/transport"
	"go.uber.org/zap"
)

const (
	upstreamTimeout = 10 * time.Second

	// recentActivityLimit bounds the activity feed of locally derived stats.
	recentActivityLimit = 5
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrIncompleteResponse = errors.New("incomplete response")
	ErrUpstream           = errors.New("upstream failure")
	ErrNotFound           = errors.New("not found")
)

// HelpdeskService fetches from the CRM, normalizes what comes back and
// keeps the session store current.
type HelpdeskService struct {
	client     CRMClient
	normalizer *normalize.Normalizer
	store      *store.Store
	logger     *zap.Logger
}

// NewHelpdeskService creates a new HelpdeskService instance.
func NewHelpdeskService(client CRMClient, normalizer *normalize.Normalizer, st *store.Store, logger *zap.Logger) *HelpdeskService {
	if client == nil {
		panic("client must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = normalize.New(logger)
	}
	if st == nil {
		st = store.New()
	}
	return &HelpdeskService{
		client:     client,
		normalizer: normalizer,
		store:      st,
		logger:     logger.Named("helpdesk"),
	}
}

// Store exposes the session store for read access.
func (s *HelpdeskService) Store() *store.Store {
	return s.store
}

// fetch runs one CRM call under the upstream timeout and decodes the body.
func (s *HelpdeskService) fetch(ctx context.Context, call func(context.Context) ([]byte, error)) (normalize.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, upstreamTimeout)
	defer cancel()

	body, err := call(callCtx)
	if err != nil {
		return normalize.Response{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	resp, err := normalize.Decode(body)
	if err != nil {
		return normalize.Response{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return resp, nil
}

// ListTickets fetches one page of tickets. Filters are sent upstream and
// applied again locally since the CRM ignores parameters it does not know.
// A result superseded by a newer list fetch is returned to its caller but
// not stored.
func (s *HelpdeskService) ListTickets(ctx context.Context, filters model.Filters, page, pageSize int) (TicketList, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		return TicketList{}, fmt.Errorf("%w: page size must be positive", ErrInvalidArgument)
	}
	if filters.From != nil && filters.To != nil && filters.From.After(*filters.To) {
		return TicketList{}, fmt.Errorf("%w: from is after to", ErrInvalidArgument)
	}

	token := s.store.Begin(store.TicketsKey)
	s.store.TicketsLoading()

	resp, err := s.fetch(ctx, func(ctx context.Context) ([]byte, error) {
		return s.client.ListTickets(ctx, filters, page, pageSize)
	})
	if err != nil {
		s.ticketsFailed(token, err)
		return TicketList{}, err
	}

	tickets, meta, err := s.normalizer.Tickets(resp)
	if err != nil {
		s.ticketsFailed(token, err)
		return TicketList{}, err
	}

	if !filters.IsEmpty() {
		tickets = query.FilterTickets(tickets, filters)
	}
	tickets = query.SortByDate(tickets)

	if !s.store.TicketsLoaded(token, filters, tickets, meta.Total, page) {
		s.logger.Debug("discarded superseded ticket list", zap.String("filters", filters.Key()))
	}

	s.logger.Info("fetched tickets",
		zap.Int("count", len(tickets)),
		zap.Int("total", meta.Total),
		zap.Int("page", page))

	return TicketList{
		Tickets:  tickets,
		Page:     model.Page{Total: meta.Total, Page: page},
		PageSize: pageSize,
	}, nil
}

func (s *HelpdeskService) ticketsFailed(token store.Token, err error) {
	if s.store.Current(token) {
		s.store.TicketsFailed(err)
	}
	s.logger.Error("ticket list failed", zap.Error(err))
}

// GetTicket fetches one ticket and selects it.
func (s *HelpdeskService) GetTicket(ctx context.Context, id string) (model.Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return model.Ticket{}, fmt.Errorf("%w: ticket id is required", ErrInvalidArgument)
	}

	resp, err := s.fetch(ctx, func(ctx context.Context) ([]byte, error) {
		return s.client.GetTicket(ctx, id)
	})
	if err != nil {
		s.store.TicketsFailed(err)
		return model.Ticket{}, err
	}

	ticket, found, err := s.normalizer.Ticket(resp)
	if err != nil {
		s.store.TicketsFailed(err)
		return model.Ticket{}, err
	}
	if !found {
		return model.Ticket{}, fmt.Errorf("%w: ticket %s", ErrNotFound, id)
	}

	s.store.TicketSelected(ticket)
	return ticket, nil
}

// CreateTicket creates a ticket. A response without a ticket id is
// rejected; nothing is stored.
func (s *HelpdeskService) CreateTicket(ctx context.Context, draft model.TicketDraft) (model.Ticket, error) {
	if strings.TrimSpace(draft.Subject) == "" {
		return model.Ticket{}, fmt.Errorf("%w: subject is required", ErrInvalidArgument)
	}

	resp, err := s.fetch(ctx, func(ctx context.Context) ([]byte, error) {
		return s.client.CreateTicket(ctx, draft)
	})
	if err != nil {
		return model.Ticket{}, err
	}

	ticket, found, err := s.normalizer.Ticket(resp)
	if err != nil {
		return model.Ticket{}, err
	}
	if !found {
		return model.Ticket{}, fmt.Errorf("%w: created ticket has no id", ErrIncompleteResponse)
	}

	s.store.TicketCreated(ticket)
	s.logger.Info("created ticket", zap.String("ticket_id", ticket.ID))
	return ticket, nil
}

// UpdateTicket applies patch to ticket id.
func (s *HelpdeskService) UpdateTicket(ctx context.Context, id string, patch model.TicketPatch) (model.Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return model.Ticket{}, fmt.Errorf("%w: ticket id is required", ErrInvalidArgument)
	}

	resp, err := s.fetch(ctx, func(ctx context.Context) ([]byte, error) {
		return s.client.UpdateTicket(ctx, id, patch)
	})
	if err != nil {
		return model.Ticket{}, err
	}

	ticket, found, err := s.normalizer.Ticket(resp)
	if err != nil {
		return model.Ticket{}, err
	}
	if !found {
		return model.Ticket{}, fmt.Errorf("%w: updated ticket has no id", ErrIncompleteResponse)
	}

	s.store.TicketUpdated(ticket)
	s.logger.Info("updated ticket", zap.String("ticket_id", ticket.ID))
	return ticket, nil
}

// ListComments loads the comments of one ticket. A server-reported failure
// is logged and treated as no comments.
func (s *HelpdeskService) ListComments(ctx context.Context, ticketID string) ([]model.Comment, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, fmt.Errorf("%w: ticket id is required", ErrInvalidArgument)
	}

	token := s.store.Begin(store.CommentsKey(ticketID))
	s.store.CommentsLoading()

	resp, err := s.fetch(ctx, func(ctx context.Context) ([]byte, error) {
		return s.client.ListComments(ctx, ticketID)
	})
	if err != nil {
		if s.store.Current(token) {
			s.store.CommentsFailed(err)
		}
		return nil, err
	}

	comments, err := s.normalizer.Comments(resp, ticketID)
	if err != nil {
		s.logger.Warn("comments unavailable", zap.String("ticket_id", ticketID), zap.Error(err))
		comments = []model.Comment{}
	}

	if !s.store.CommentsLoaded(token, ticketID, comments) {
		s.logger.Debug("discarded superseded comments", zap.String("ticket_id", ticketID))
	}
	return comments, nil
}

// AddComment posts a comment. A response without a comment id is rejected.
func (s *HelpdeskService) AddComment(ctx context.Context, ticketID string, draft model.CommentDraft) (model.Comment, error) {
	if strings.TrimSpace(ticketID) == "" {
		return model.Comment{}, fmt.Errorf("%w: ticket id is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(draft.Body) == "" {
		return model.Comment{}, fmt.Errorf("%w: comment body is required", ErrInvalidArgument)
	}

	resp, err := s.fetch(ctx, func(ctx context.Context) ([]byte, error) {
		return s.client.AddComment(ctx, ticketID, draft)
	})
	if err != nil {
		s.store.CommentsFailed(err)
		return model.Comment{}, err
	}

	comment, found, err := s.normalizer.Comment(resp, ticketID)
	if err != nil {
		s.store.CommentsFailed(err)
		return model.Comment{}, err
	}
	if !found {
		return model.Comment{}, fmt.Errorf("%w: posted comment has no id", ErrIncompleteResponse)
	}

	s.store.CommentAdded(ticketID, comment)
	return comment, nil
}

// ListCategories loads categories. A server-reported failure is logged and
// treated as no categories.
func (s *HelpdeskService) ListCategories(ctx context.Context) ([]model.Category, error) {
	resp, err := s.fetch(ctx, s.client.ListCategories)
	if err != nil {
		return nil, err
	}

	categories, err := s.normalizer.Categories(resp)
	if err != nil {
		s.logger.Warn("categories unavailable", zap.Error(err))
		categories = []model.Category{}
	}

	s.store.CategoriesLoaded(categories)
	return categories, nil
}

func (s *HelpdeskService) ListContacts(ctx context.Context) ([]model.Contact, error) {
	resp, err := s.fetch(ctx, s.client.ListContacts)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Contacts(resp)
}

func (s *HelpdeskService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	resp, err := s.fetch(ctx, s.client.ListAccounts)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Accounts(resp)
}

// DashboardStats returns the CRM's dashboard counters. When the CRM reports
// a failure, has no stats endpoint or returns nothing usable, counters are
// derived from the stored tickets, provided they were listed without
// filters. Otherwise the upstream failure is returned.
func (s *HelpdeskService) DashboardStats(ctx context.Context) (Dashboard, error) {
	resp, err := s.fetch(ctx, s.client.DashboardStats)
	if err != nil && !transport.IsNotFound(err) {
		return Dashboard{}, err
	}

	if err == nil {
		stats, found, nerr := s.normalizer.DashboardStats(resp)
		if nerr == nil && found {
			return Dashboard{Stats: stats, Source: StatsUpstream}, nil
		}
		var serverErr *normalize.ServerError
		if nerr != nil && !errors.As(nerr, &serverErr) {
			return Dashboard{}, nerr
		}
		err = nerr
	}
	if err == nil {
		err = fmt.Errorf("%w: dashboard stats", ErrNotFound)
	}

	state := s.store.Snapshot()
	if !state.Filters.IsEmpty() {
		s.logger.Info("stored tickets are filtered, not deriving dashboard stats",
			zap.String("filters", state.Filters.Key()))
		return Dashboard{}, err
	}

	stats := query.Stats(state.Tickets, recentActivityLimit)
	stats.Total = max(state.Page.Total, len(state.Tickets))
	s.logger.Info("deriving dashboard stats locally",
		zap.Int("tickets", len(state.Tickets)),
		zap.Int("total", stats.Total))
	return Dashboard{Stats: stats, Source: StatsDerived}, nil
}
