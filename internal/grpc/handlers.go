package grpc

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/normalize"
	"github.com/godilite/helpdesk-portal/internal/service"
	"github.com/godilite/helpdesk-portal/internal/transform"
	"github.com/godilite/helpdesk-portal/internal/transport"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
	defaultPageSize      = 20
	maxPageSize          = 100
)

type GRPCHandlers struct {
	UnimplementedHelpdeskServer
	helpdesk HelpdeskService
	cache    *ReadThrough
	logger   *zap.Logger
	pageSize int
}

type HandlerOption func(*GRPCHandlers)

// WithDefaultPageSize sets the page size used when a list request names none.
func WithDefaultPageSize(n int) HandlerOption {
	return func(h *GRPCHandlers) {
		if n > 0 && n <= maxPageSize {
			h.pageSize = n
		}
	}
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(helpdesk HelpdeskService, cache Cacher, logger *zap.Logger, ttl time.Duration, opts ...HandlerOption) *GRPCHandlers {
	if helpdesk == nil {
		panic("nil HelpdeskService provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	h := &GRPCHandlers{
		helpdesk: helpdesk,
		cache:    NewReadThrough(cache, ttl, logger),
		logger:   logger.Named("grpc-handler"),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	if _, ok := status.FromError(err); ok && err != nil {
		return err
	}

	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	var (
		serverErr  *normalize.ServerError
		apiErr     *transport.APIError
		networkErr *transport.NetworkError
	)
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &serverErr):
		s.logger.Info("crm reported failure", zap.String("op", op), zap.String("message", serverErr.Message))
		return status.Error(codes.FailedPrecondition, serverErr.Message)
	case errors.Is(err, service.ErrIncompleteResponse):
		s.logger.Error("incomplete crm response", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, err.Error())
	case errors.As(err, &apiErr):
		s.logger.Warn("crm api error", zap.String("op", op), zap.Error(err))
		return status.Error(codeForHTTPStatus(apiErr.StatusCode), apiErr.Message)
	case errors.As(err, &networkErr):
		s.logger.Error("crm unreachable", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Unavailable, "crm unavailable")
	case errors.Is(err, normalize.ErrMalformed):
		s.logger.Error("malformed crm response", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "malformed upstream response")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func codeForHTTPStatus(code int) codes.Code {
	switch {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return codes.InvalidArgument
	case code == http.StatusUnauthorized:
		return codes.Unauthenticated
	case code == http.StatusForbidden:
		return codes.PermissionDenied
	case code == http.StatusNotFound:
		return codes.NotFound
	case code == http.StatusConflict:
		return codes.Aborted
	case code == http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case code >= 500:
		return codes.Unavailable
	default:
		return codes.Unknown
	}
}

func (s *GRPCHandlers) respond(ctx context.Context, op string, v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, s.handleError(ctx, op, err)
	}
	return out, nil
}

func (s *GRPCHandlers) ListTickets(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := parseRequest(in)
	filters, err := req.filters()
	if err != nil {
		return nil, err
	}
	page, err := req.intField("page", 1)
	if err != nil {
		return nil, err
	}
	pageSize, err := req.intField("pageSize", s.pageSize)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 || pageSize > maxPageSize {
		return nil, status.Errorf(codes.InvalidArgument, "pageSize must be between 1 and %d", maxPageSize)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	list, err := s.helpdesk.ListTickets(ctx, filters, page, pageSize)
	if err != nil {
		return nil, s.handleError(ctx, "ListTickets", err)
	}

	return s.respond(ctx, "ListTickets", map[string]any{
		"tickets":    transform.EncodeTickets(list.Tickets, req.version),
		"total":      list.Page.Total,
		"page":       list.Page.Page,
		"pageSize":   list.PageSize,
		"totalPages": list.TotalPages(),
	})
}

func (s *GRPCHandlers) GetTicket(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := parseRequest(in)
	id, err := req.required("id")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	ticket, err := s.helpdesk.GetTicket(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, "GetTicket", err)
	}
	return s.respond(ctx, "GetTicket", map[string]any{"ticket": transform.EncodeTicket(ticket, req.version)})
}

func (s *GRPCHandlers) CreateTicket(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := parseRequest(in)

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	ticket, err := s.helpdesk.CreateTicket(ctx, req.ticketDraft())
	if err != nil {
		return nil, s.handleError(ctx, "CreateTicket", err)
	}
	s.cache.Invalidate(ctx, cacheKeyDashboard)

	return s.respond(ctx, "CreateTicket", map[string]any{"ticket": transform.EncodeTicket(ticket, req.version)})
}

func (s *GRPCHandlers) UpdateTicket(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := parseRequest(in)
	id, err := req.required("id")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	ticket, err := s.helpdesk.UpdateTicket(ctx, id, req.ticketPatch())
	if err != nil {
		return nil, s.handleError(ctx, "UpdateTicket", err)
	}
	s.cache.Invalidate(ctx, cacheKeyDashboard)

	return s.respond(ctx, "UpdateTicket", map[string]any{"ticket": transform.EncodeTicket(ticket, req.version)})
}

func (s *GRPCHandlers) ListComments(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := parseRequest(in)
	ticketID, err := req.required("ticketId")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	comments, err := s.helpdesk.ListComments(ctx, ticketID)
	if err != nil {
		return nil, s.handleError(ctx, "ListComments", err)
	}
	return s.respond(ctx, "ListComments", map[string]any{"comments": transform.EncodeComments(comments, req.version)})
}

func (s *GRPCHandlers) AddComment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := parseRequest(in)
	ticketID, err := req.required("ticketId")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	comment, err := s.helpdesk.AddComment(ctx, ticketID, req.commentDraft())
	if err != nil {
		return nil, s.handleError(ctx, "AddComment", err)
	}
	return s.respond(ctx, "AddComment", map[string]any{"comment": transform.EncodeComment(comment, req.version)})
}

func (s *GRPCHandlers) ListCategories(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	categories, err := FindAndCache(ctx, s.cache, cacheKeyCategories, func(fetchCtx context.Context) ([]model.Category, error) {
		return s.helpdesk.ListCategories(fetchCtx)
	})
	if err != nil {
		return nil, s.handleError(ctx, "ListCategories", err)
	}
	return s.respond(ctx, "ListCategories", map[string]any{"categories": categories})
}

func (s *GRPCHandlers) ListContacts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	contacts, err := FindAndCache(ctx, s.cache, cacheKeyContacts, func(fetchCtx context.Context) ([]model.Contact, error) {
		return s.helpdesk.ListContacts(fetchCtx)
	})
	if err != nil {
		return nil, s.handleError(ctx, "ListContacts", err)
	}
	return s.respond(ctx, "ListContacts", map[string]any{"contacts": contacts})
}

func (s *GRPCHandlers) ListAccounts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	accounts, err := FindAndCache(ctx, s.cache, cacheKeyAccounts, func(fetchCtx context.Context) ([]model.Account, error) {
		return s.helpdesk.ListAccounts(fetchCtx)
	})
	if err != nil {
		return nil, s.handleError(ctx, "ListAccounts", err)
	}
	return s.respond(ctx, "ListAccounts", map[string]any{"accounts": accounts})
}

func (s *GRPCHandlers) GetDashboardStats(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	dash, err := FindAndCacheIf(ctx, s.cache, cacheKeyDashboard, func(fetchCtx context.Context) (service.Dashboard, error) {
		return s.helpdesk.DashboardStats(fetchCtx)
	}, func(d service.Dashboard) bool {
		return d.Source == service.StatsUpstream
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetDashboardStats", err)
	}
	return s.respond(ctx, "GetDashboardStats", map[string]any{
		"stats":  dash.Stats,
		"source": dash.Source,
	})
}
