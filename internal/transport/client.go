package transport

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/pkg/requestid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 2
	defaultUserAgent  = "helpdesk-portal/1.0"
)

// Client talks to the CRM proxy and hands back raw response bodies.
type Client struct {
	http    *resty.Client
	baseURL string
	limiter *rate.Limiter
	logger  *zap.Logger

	token      string
	timeout    time.Duration
	retryCount int
	userAgent  string
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithRetryCount(n int) Option {
	return func(c *Client) {
		c.retryCount = n
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLimiter paces outgoing requests. The limiter is owned by the caller
// and may be shared between clients.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the proxy at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		logger:     zap.NewNop(),
		timeout:    defaultTimeout,
		retryCount: defaultRetryCount,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("crm")

	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(c.timeout).
		SetRetryCount(c.retryCount).
		SetHeader("User-Agent", c.userAgent).
		SetHeader("Accept", "application/json")
	if c.token != "" {
		c.http.SetAuthToken(c.token)
	}

	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Operation: method, URL: c.baseURL + path, Err: err}
		}
	}

	ctx, requestID := requestid.Ensure(ctx)
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestid.MetadataKey, requestID)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &NetworkError{Operation: method, URL: c.baseURL + path, Err: err}
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", resp.Time()))

	if !resp.IsSuccess() {
		return nil, newAPIError(resp.StatusCode(), resp.Body(), requestID)
	}
	return resp.Body(), nil
}

func (c *Client) ListTickets(ctx context.Context, filters model.Filters, page, pageSize int) ([]byte, error) {
	query := filters.Values()
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("limit", strconv.Itoa(pageSize))
	}
	return c.do(ctx, http.MethodGet, "/api/tickets", query, nil)
}

func (c *Client) GetTicket(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateTicket(ctx context.Context, draft model.TicketDraft) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/tickets", nil, draft)
}

func (c *Client) UpdateTicket(ctx context.Context, id string, patch model.TicketPatch) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, "/api/tickets/"+url.PathEscape(id), nil, patch)
}

func (c *Client) ListComments(ctx context.Context, ticketID string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(ticketID)+"/comments", nil, nil)
}

func (c *Client) AddComment(ctx context.Context, ticketID string, draft model.CommentDraft) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/tickets/"+url.PathEscape(ticketID)+"/comments", nil, draft)
}

func (c *Client) ListCategories(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/categories", nil, nil)
}

func (c *Client) ListContacts(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/contacts", nil, nil)
}

func (c *Client) ListAccounts(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/accounts", nil, nil)
}

func (c *Client) DashboardStats(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil)
}

// Ping checks that the proxy answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil, nil)
	return err
}
