package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/normalize"
	"github.com/godilite/helpdesk-portal/internal/service/mocks"
	"github.com/godilite/helpdesk-portal/internal/store"
	"github.com/godilite/helpdesk-portal/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)

func newTestService(client CRMClient) *HelpdeskService {
	logger := zap.NewNop()
	n := normalize.New(logger, normalize.WithClock(func() time.Time { return fixedNow }))
	return NewHelpdeskService(client, n, store.New(), logger)
}

func TestNewHelpdeskService(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		client := &mocks.MockCRMClient{}
		st := store.New()

		svc := NewHelpdeskService(client, nil, st, zap.NewNop())

		assert.NotNil(t, svc)
		assert.Equal(t, client, svc.client)
		assert.Same(t, st, svc.Store())
		assert.NotNil(t, svc.normalizer)
	})

	t.Run("nil client panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewHelpdeskService(nil, nil, nil, zap.NewNop())
		})
	})

	t.Run("nil logger and store get defaults", func(t *testing.T) {
		svc := NewHelpdeskService(&mocks.MockCRMClient{}, nil, nil, nil)

		assert.NotNil(t, svc.logger)
		assert.NotNil(t, svc.Store())
	})
}

func TestListTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("envelope with pagination", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				assert.Equal(t, 2, page)
				assert.Equal(t, 10, pageSize)
				return []byte(`{"tickets":[
					{"id":"T1","subject":"Old","createdTime":"2025-01-01T00:00:00Z"},
					{"id":"T2","subject":"New","createdTime":"2025-02-01T00:00:00Z"}
				],"total":42,"page":2}`), nil
			},
		}
		svc := newTestService(client)

		list, err := svc.ListTickets(ctx, model.Filters{}, 2, 10)

		require.NoError(t, err)
		require.Len(t, list.Tickets, 2)
		assert.Equal(t, "T2", list.Tickets[0].ID, "newest first")
		assert.Equal(t, model.Page{Total: 42, Page: 2}, list.Page)
		assert.Equal(t, 5, list.TotalPages())

		state := svc.Store().Snapshot()
		assert.Len(t, state.Tickets, 2)
		assert.Equal(t, 42, state.Page.Total)
		assert.False(t, state.TicketsStatus.Loading)
	})

	t.Run("filters are applied locally as well", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				assert.Equal(t, model.StatusClosed, f.Status)
				return []byte(`[{"id":"T1","status":"Open"},{"id":"T2","status":"Closed"}]`), nil
			},
		}
		svc := newTestService(client)

		list, err := svc.ListTickets(ctx, model.Filters{Status: model.StatusClosed}, 1, 10)

		require.NoError(t, err)
		require.Len(t, list.Tickets, 1)
		assert.Equal(t, "T2", list.Tickets[0].ID)
	})

	t.Run("server failure keeps prior tickets", func(t *testing.T) {
		calls := 0
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				calls++
				if calls == 1 {
					return []byte(`{"data":[{"id":"T1"}]}`), nil
				}
				return []byte(`{"success":false,"error":"session expired"}`), nil
			},
		}
		svc := newTestService(client)

		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 10)
		require.NoError(t, err)

		_, err = svc.ListTickets(ctx, model.Filters{}, 1, 10)

		var serverErr *normalize.ServerError
		require.ErrorAs(t, err, &serverErr)
		assert.Equal(t, "session expired", serverErr.Message)

		state := svc.Store().Snapshot()
		assert.Len(t, state.Tickets, 1)
		assert.ErrorAs(t, state.TicketsStatus.Err, &serverErr)
	})

	t.Run("transport failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				return nil, boom
			},
		}
		svc := newTestService(client)

		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 10)

		assert.ErrorIs(t, err, ErrUpstream)
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, svc.Store().Snapshot().TicketsStatus.Err, boom)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				return []byte(`{"tickets":`), nil
			},
		}
		svc := newTestService(client)

		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 10)

		assert.ErrorIs(t, err, normalize.ErrMalformed)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		svc := newTestService(&mocks.MockCRMClient{})
		from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = svc.ListTickets(ctx, model.Filters{From: &from, To: &to}, 1, 10)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("superseded fetch is not stored", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				if f.Search == "slow" {
					close(started)
					<-release
					return []byte(`[{"id":"stale"}]`), nil
				}
				return []byte(`[{"id":"fresh"}]`), nil
			},
		}
		svc := newTestService(client)

		done := make(chan TicketList)
		go func() {
			list, _ := svc.ListTickets(ctx, model.Filters{Search: "slow"}, 1, 10)
			done <- list
		}()
		<-started

		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 10)
		require.NoError(t, err)
		close(release)
		slow := <-done

		assert.Empty(t, slow.Tickets, "search does not match the stale ticket")
		state := svc.Store().Snapshot()
		require.Len(t, state.Tickets, 1)
		assert.Equal(t, "fresh", state.Tickets[0].ID)
	})
}

func TestGetTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("selects the ticket", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			GetTicketFunc: func(ctx context.Context, id string) ([]byte, error) {
				assert.Equal(t, "T7", id)
				return []byte(`{"ticket":{"id":"T7","subject":"Printer"}}`), nil
			},
		}
		svc := newTestService(client)

		ticket, err := svc.GetTicket(ctx, "T7")

		require.NoError(t, err)
		assert.Equal(t, "Printer", ticket.Subject)
		require.NotNil(t, svc.Store().Snapshot().Selected)
		assert.Equal(t, "T7", svc.Store().Snapshot().Selected.ID)
	})

	t.Run("empty response is not found", func(t *testing.T) {
		client := &mocks.MockCRMClient{GetTicketFunc: func(ctx context.Context, id string) ([]byte, error) {
			return nil, nil
		}}
		svc := newTestService(client)

		_, err := svc.GetTicket(ctx, "T7")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := newTestService(&mocks.MockCRMClient{}).GetTicket(ctx, " ")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestCreateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("created ticket is prepended and selected", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				return []byte(`[{"id":"T1"}]`), nil
			},
			CreateTicketFunc: func(ctx context.Context, draft model.TicketDraft) ([]byte, error) {
				assert.Equal(t, "VPN down", draft.Subject)
				return []byte(`{"success":true,"data":{"id":"T2","subject":"VPN down"}}`), nil
			},
		}
		svc := newTestService(client)
		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 10)
		require.NoError(t, err)

		ticket, err := svc.CreateTicket(ctx, model.TicketDraft{Subject: "VPN down"})

		require.NoError(t, err)
		assert.Equal(t, "T2", ticket.ID)
		assert.Equal(t, model.StatusOpen, ticket.Status)
		state := svc.Store().Snapshot()
		require.Len(t, state.Tickets, 2)
		assert.Equal(t, "T2", state.Tickets[0].ID)
		assert.Equal(t, "T2", state.Selected.ID)
	})

	t.Run("success without payload is rejected", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			CreateTicketFunc: func(ctx context.Context, draft model.TicketDraft) ([]byte, error) {
				return []byte(`{"success":true}`), nil
			},
		}
		svc := newTestService(client)

		ticket, err := svc.CreateTicket(ctx, model.TicketDraft{Subject: "VPN down"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIncompleteResponse)
		assert.NotEmpty(t, err.Error())
		assert.Empty(t, ticket.ID)
		assert.Empty(t, svc.Store().Snapshot().Tickets)
		assert.Nil(t, svc.Store().Snapshot().Selected)
	})

	t.Run("server failure carries the message", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			CreateTicketFunc: func(ctx context.Context, draft model.TicketDraft) ([]byte, error) {
				return []byte(`{"success":false,"error":{"message":"department is required"}}`), nil
			},
		}
		svc := newTestService(client)

		_, err := svc.CreateTicket(ctx, model.TicketDraft{Subject: "VPN down"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "department is required")
	})

	t.Run("blank subject", func(t *testing.T) {
		_, err := newTestService(&mocks.MockCRMClient{}).CreateTicket(ctx, model.TicketDraft{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestUpdateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the stored ticket in place", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				return []byte(`[{"id":"T1","status":"Open","createdTime":"2025-01-02T00:00:00Z"},{"id":"T0","createdTime":"2025-01-01T00:00:00Z"}]`), nil
			},
			UpdateTicketFunc: func(ctx context.Context, id string, patch model.TicketPatch) ([]byte, error) {
				assert.Equal(t, model.StatusClosed, patch.Status)
				return []byte(`{"id":"T1","status":"Closed","createdTime":"2025-01-02T00:00:00Z"}`), nil
			},
		}
		svc := newTestService(client)
		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 10)
		require.NoError(t, err)

		updated, err := svc.UpdateTicket(ctx, "T1", model.TicketPatch{Status: model.StatusClosed})

		require.NoError(t, err)
		assert.Equal(t, model.StatusClosed, updated.Status)
		state := svc.Store().Snapshot()
		require.Len(t, state.Tickets, 2)
		assert.Equal(t, "T1", state.Tickets[0].ID)
		assert.Equal(t, model.StatusClosed, state.Tickets[0].Status)
	})

	t.Run("response without id", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			UpdateTicketFunc: func(ctx context.Context, id string, patch model.TicketPatch) ([]byte, error) {
				return []byte(`{"success":true}`), nil
			},
		}

		_, err := newTestService(client).UpdateTicket(ctx, "T1", model.TicketPatch{})

		assert.ErrorIs(t, err, ErrIncompleteResponse)
	})
}

func TestComments(t *testing.T) {
	ctx := context.Background()

	t.Run("list then add", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListCommentsFunc: func(ctx context.Context, ticketID string) ([]byte, error) {
				return []byte(`{"comments":[{"id":"C1","content":"first","createdBy":"Ann"}]}`), nil
			},
			AddCommentFunc: func(ctx context.Context, ticketID string, draft model.CommentDraft) ([]byte, error) {
				assert.Equal(t, "second", draft.Body)
				return []byte(`{"comment":{"id":"C2","comment":"second","author":{"name":"Bob"}}}`), nil
			},
		}
		svc := newTestService(client)

		comments, err := svc.ListComments(ctx, "T1")
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "first", comments[0].Body)
		assert.Equal(t, "T1", comments[0].TicketID)

		added, err := svc.AddComment(ctx, "T1", model.CommentDraft{Body: "second", IsPublic: true})
		require.NoError(t, err)
		assert.Equal(t, "Bob", added.Author)

		stored := svc.Store().Comments("T1")
		require.Len(t, stored, 2)
		assert.Equal(t, "C2", stored[1].ID)
	})

	t.Run("server failure on list is recovered", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListCommentsFunc: func(ctx context.Context, ticketID string) ([]byte, error) {
				return []byte(`{"success":false,"message":"not permitted"}`), nil
			},
		}
		svc := newTestService(client)

		comments, err := svc.ListComments(ctx, "T1")

		require.NoError(t, err)
		assert.Empty(t, comments)
		assert.NoError(t, svc.Store().Snapshot().CommentsStatus.Err)
	})

	t.Run("transport failure on list sets the error flag", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListCommentsFunc: func(ctx context.Context, ticketID string) ([]byte, error) {
				return nil, errors.New("timeout")
			},
		}
		svc := newTestService(client)

		_, err := svc.ListComments(ctx, "T1")

		assert.Error(t, err)
		assert.Error(t, svc.Store().Snapshot().CommentsStatus.Err)
		assert.NoError(t, svc.Store().Snapshot().TicketsStatus.Err)
	})

	t.Run("added comment without id is rejected", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			AddCommentFunc: func(ctx context.Context, ticketID string, draft model.CommentDraft) ([]byte, error) {
				return []byte(`{"success":true,"comment":{"content":"hello"}}`), nil
			},
		}
		svc := newTestService(client)

		_, err := svc.AddComment(ctx, "T1", model.CommentDraft{Body: "hello"})

		assert.ErrorIs(t, err, ErrIncompleteResponse)
		assert.NotEmpty(t, err.Error())
		assert.Empty(t, svc.Store().Comments("T1"))
	})

	t.Run("blank body", func(t *testing.T) {
		_, err := newTestService(&mocks.MockCRMClient{}).AddComment(ctx, "T1", model.CommentDraft{Body: "  "})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	client := &mocks.MockCRMClient{
		ListCategoriesFunc: mocks.Body(`{"categories":[{"id":"1","displayName":"Billing"},{"id":"2"}]}`),
		ListContactsFunc:   mocks.Body(`{"data":[{"id":"c1","firstName":"Ada","lastName":"Lovelace"}]}`),
		ListAccountsFunc:   mocks.Body(`[{"id":"a1","accountName":"Acme"}]`),
	}
	svc := newTestService(client)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Billing", categories[0].Name)
	assert.Len(t, svc.Store().Snapshot().Categories, 1)

	contacts, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ada Lovelace", contacts[0].Name)

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Acme", accounts[0].Name)
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()

	t.Run("upstream stats", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			DashboardStatsFunc: mocks.Body(`{"stats":{"total":"12","open":4,"resolved":3,"closed":5}}`),
		}

		dash, err := newTestService(client).DashboardStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, StatsUpstream, dash.Source)
		assert.Equal(t, 12, dash.Stats.Total)
		assert.Equal(t, 4, dash.Stats.Open)
	})

	t.Run("server failure falls back to stored tickets", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				return []byte(`[{"id":"T1","status":"Open"},{"id":"T2","status":"Closed"},{"id":"T3","status":"In Progress"}]`), nil
			},
			DashboardStatsFunc: mocks.Body(`{"success":false,"error":"stats disabled"}`),
		}
		svc := newTestService(client)
		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 10)
		require.NoError(t, err)

		dash, err := svc.DashboardStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, StatsDerived, dash.Source)
		assert.Equal(t, 3, dash.Stats.Total)
		assert.Equal(t, 2, dash.Stats.Open)
		assert.Equal(t, 1, dash.Stats.Closed)
	})

	t.Run("derived total comes from the listed page metadata", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				return []byte(`{"tickets":[{"id":"T1","status":"Open"},{"id":"T2","status":"Closed"}],"total":250}`), nil
			},
			DashboardStatsFunc: mocks.Body(`{"success":false}`),
		}
		svc := newTestService(client)
		_, err := svc.ListTickets(ctx, model.Filters{}, 1, 2)
		require.NoError(t, err)

		dash, err := svc.DashboardStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, StatsDerived, dash.Source)
		assert.Equal(t, 250, dash.Stats.Total)
		assert.Equal(t, 1, dash.Stats.Open)
	})

	t.Run("filtered listing is not used for derivation", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				return []byte(`{"tickets":[{"id":"T1","status":"Closed"},{"id":"T2","status":"Closed"}],"total":250}`), nil
			},
			DashboardStatsFunc: mocks.Body(`{"success":false,"error":"stats disabled"}`),
		}
		svc := newTestService(client)
		_, err := svc.ListTickets(ctx, model.Filters{Status: model.StatusClosed}, 1, 10)
		require.NoError(t, err)

		_, err = svc.DashboardStats(ctx)

		var serverErr *normalize.ServerError
		require.ErrorAs(t, err, &serverErr)
		assert.Equal(t, "stats disabled", serverErr.Message)
	})

	t.Run("filtered listing with empty stats is not found", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			ListTicketsFunc: func(ctx context.Context, f model.Filters, page, pageSize int) ([]byte, error) {
				return []byte(`[{"id":"T1","status":"Open"}]`), nil
			},
			DashboardStatsFunc: mocks.Body(``),
		}
		svc := newTestService(client)
		_, err := svc.ListTickets(ctx, model.Filters{Search: "vpn"}, 1, 10)
		require.NoError(t, err)

		_, err = svc.DashboardStats(ctx)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing stats endpoint falls back", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			DashboardStatsFunc: func(ctx context.Context) ([]byte, error) {
				return nil, &transport.APIError{StatusCode: http.StatusNotFound, Message: "no such route"}
			},
		}

		dash, err := newTestService(client).DashboardStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, StatsDerived, dash.Source)
	})

	t.Run("empty response falls back", func(t *testing.T) {
		client := &mocks.MockCRMClient{DashboardStatsFunc: mocks.Body(``)}

		dash, err := newTestService(client).DashboardStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, StatsDerived, dash.Source)
		assert.Equal(t, 0, dash.Stats.Total)
	})

	t.Run("transport failure is returned", func(t *testing.T) {
		client := &mocks.MockCRMClient{
			DashboardStatsFunc: func(ctx context.Context) ([]byte, error) {
				return nil, errors.New("dial tcp: refused")
			},
		}

		_, err := newTestService(client).DashboardStats(ctx)

		assert.ErrorIs(t, err, ErrUpstream)
	})
}
