package store

// Token identifies one fetch for a query key. Only the most recently issued
// token for a key may apply its result.
type Token struct {
	Key string
	Seq uint64
}

// Sequence numbers are drawn from one counter for all keys, so a token can
// never be reissued, even across Reset.
type fences struct {
	next   uint64
	issued map[string]uint64
}

// Begin issues a new token for key, superseding any outstanding one.
func (s *Store) Begin(key string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fences.next++
	s.fences.issued[key] = s.fences.next
	return Token{Key: key, Seq: s.fences.next}
}

// Current reports whether token is still the latest for its key.
func (s *Store) Current(token Token) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fences.current(token)
}

func (f fences) current(token Token) bool {
	return token.Seq != 0 && f.issued[token.Key] == token.Seq
}

// TicketsKey fences ticket list fetches. Every list fetch shares it, so a
// fetch for new filters supersedes one still running for old filters.
const TicketsKey = "tickets"

// CommentsKey fences comment fetches for one ticket.
func CommentsKey(ticketID string) string {
	return "comments:" + ticketID
}
