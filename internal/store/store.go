package store

import (
	"sync"

	"github.com/godilite/helpdesk-portal/internal/model"
)

// Status tracks one subsystem's fetch lifecycle.
type Status struct {
	Loading bool
	Err     error
}

// State is an immutable view of the store. Slices and maps in a State are
// never written after the snapshot is taken; every transition builds new
// ones, so comparing references detects change.
type State struct {
	Tickets    []model.Ticket
	Filters    model.Filters
	Page       model.Page
	Selected   *model.Ticket
	Comments   map[string][]model.Comment
	Categories []model.Category

	TicketsStatus  Status
	CommentsStatus Status
}

// Store is the single-writer, in-memory home of the canonical entities for
// one session.
type Store struct {
	mu     sync.RWMutex
	state  State
	fences fences
}

func New() *Store {
	return &Store{
		state: emptyState(),
		fences: fences{
			issued: make(map[string]uint64),
		},
	}
}

func emptyState() State {
	return State{
		Tickets:    []model.Ticket{},
		Comments:   map[string][]model.Comment{},
		Categories: []model.Category{},
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Comments returns the comment sequence held for ticketID.
func (s *Store) Comments(ticketID string) []model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Comments[ticketID]
}

// Reset drops all state and outstanding fences.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = emptyState()
	s.fences.issued = make(map[string]uint64)
}

// TicketsLoaded replaces the ticket collection, the filters it was listed
// with and the pagination metadata. It reports false, leaving state
// untouched, when token has been superseded.
func (s *Store) TicketsLoaded(token Token, filters model.Filters, tickets []model.Ticket, total, page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fences.current(token) {
		return false
	}
	s.state.Tickets = cloneTickets(tickets)
	s.state.Filters = filters
	s.state.Page = model.Page{Total: total, Page: page}
	s.state.TicketsStatus = Status{}
	return true
}

// TicketSelected sets the detail ticket.
func (s *Store) TicketSelected(ticket model.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := ticket
	s.state.Selected = &selected
	s.state.TicketsStatus = Status{}
}

// TicketCreated prepends ticket to the collection, counts it in the total
// and selects it.
func (s *Store) TicketCreated(ticket model.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := make([]model.Ticket, 0, len(s.state.Tickets)+1)
	tickets = append(tickets, ticket)
	tickets = append(tickets, s.state.Tickets...)

	selected := ticket
	s.state.Tickets = tickets
	s.state.Page.Total++
	s.state.Selected = &selected
	s.state.TicketsStatus = Status{}
}

// TicketUpdated replaces the selected ticket and, when the collection holds
// a ticket with the same id, that entry in place. Unknown ids never insert.
func (s *Store) TicketUpdated(ticket model.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := ticket
	s.state.Selected = &selected
	s.state.TicketsStatus = Status{}

	for i, t := range s.state.Tickets {
		if t.ID != ticket.ID {
			continue
		}
		tickets := cloneTickets(s.state.Tickets)
		tickets[i] = ticket
		s.state.Tickets = tickets
		return
	}
}

// CommentsLoaded replaces the comment sequence of one ticket. It reports
// false when token has been superseded.
func (s *Store) CommentsLoaded(token Token, ticketID string, comments []model.Comment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fences.current(token) {
		return false
	}
	byTicket := cloneComments(s.state.Comments)
	byTicket[ticketID] = append([]model.Comment{}, comments...)
	s.state.Comments = byTicket
	s.state.CommentsStatus = Status{}
	return true
}

// CommentAdded appends comment to ticketID's sequence, creating it if
// needed.
func (s *Store) CommentAdded(ticketID string, comment model.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byTicket := cloneComments(s.state.Comments)
	existing := byTicket[ticketID]
	seq := make([]model.Comment, 0, len(existing)+1)
	seq = append(seq, existing...)
	byTicket[ticketID] = append(seq, comment)

	s.state.Comments = byTicket
	s.state.CommentsStatus = Status{}
}

func (s *Store) CategoriesLoaded(categories []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Categories = append([]model.Category{}, categories...)
}

func (s *Store) TicketsLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TicketsStatus = Status{Loading: true}
}

// TicketsFailed records err without touching the collection.
func (s *Store) TicketsFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TicketsStatus = Status{Err: err}
}

func (s *Store) CommentsLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CommentsStatus = Status{Loading: true}
}

func (s *Store) CommentsFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CommentsStatus = Status{Err: err}
}

func cloneTickets(in []model.Ticket) []model.Ticket {
	out := make([]model.Ticket, len(in))
	copy(out, in)
	return out
}

func cloneComments(in map[string][]model.Comment) map[string][]model.Comment {
	out := make(map[string][]model.Comment, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
