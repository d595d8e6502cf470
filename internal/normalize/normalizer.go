package normalize

import (
	"time"

	"github.com/godilite/helpdesk-portal/internal/transform"
	"go.uber.org/zap"
)

// Entity names the envelope fields an entity may arrive under.
type Entity struct {
	Singular string
	Plural   string
}

var (
	TicketEntity   = Entity{Singular: "ticket", Plural: "tickets"}
	CommentEntity  = Entity{Singular: "comment", Plural: "comments"}
	CategoryEntity = Entity{Singular: "category", Plural: "categories"}
	ContactEntity  = Entity{Singular: "contact", Plural: "contacts"}
	AccountEntity  = Entity{Singular: "account", Plural: "accounts"}
	StatsEntity    = Entity{Singular: "stats", Plural: "stats"}
)

const dataField = "data"

type Option func(*Normalizer)

// WithClock sets the source of "now" handed to the transforms.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// Normalizer extracts canonical entities from decoded responses.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
}

func New(logger *zap.Logger, opts ...Option) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Normalizer{
		logger: logger.Named("normalizer"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Collection returns the raw records of e found in resp, trying in order:
// a server failure, the plural envelope field, the data field, and the
// top-level list. A miss yields an empty result and no error.
func (n *Normalizer) Collection(resp Response, e Entity) ([]transform.Record, error) {
	switch resp.Kind {
	case KindError:
		return nil, n.serverFailure(e, resp.Message)

	case KindObject:
		if list, ok := resp.Object[e.Plural].([]any); ok {
			return transform.Records(list), nil
		}
		switch data := resp.Object[dataField].(type) {
		case []any:
			return transform.Records(data), nil
		case map[string]any:
			if list, ok := data[e.Plural].([]any); ok {
				return transform.Records(list), nil
			}
		}

	case KindList:
		if nested, ok := nestedCollection(resp.List, e); ok {
			n.logger.Debug("unwrapped nested collection", zap.String("entity", e.Plural))
			return transform.Records(nested), nil
		}
		return transform.Records(resp.List), nil
	}

	n.shapeMiss(e.Plural, resp.Kind)
	return []transform.Record{}, nil
}

// nestedCollection detects the [{"comments": [...]}] shape some integrations
// return: a single id-less element wrapping the real collection.
func nestedCollection(list []any, e Entity) ([]any, bool) {
	if len(list) != 1 {
		return nil, false
	}
	wrapper, ok := list[0].(map[string]any)
	if !ok || transform.String(wrapper, "id") != "" {
		return nil, false
	}
	for _, key := range []string{e.Plural, dataField} {
		if inner, ok := wrapper[key].([]any); ok {
			return inner, true
		}
	}
	return nil, false
}

// Single returns the raw record of e found in resp, trying in order: a
// server failure, the singular envelope field, the data field, and the
// object itself. found is false on a shape miss.
func (n *Normalizer) Single(resp Response, e Entity) (record transform.Record, found bool, err error) {
	switch resp.Kind {
	case KindError:
		return nil, false, n.serverFailure(e, resp.Message)

	case KindObject:
		if obj, ok := resp.Object[e.Singular].(map[string]any); ok {
			return obj, true, nil
		}
		if obj, ok := resp.Object[dataField].(map[string]any); ok {
			return obj, true, nil
		}
		return resp.Object, true, nil
	}

	n.shapeMiss(e.Singular, resp.Kind)
	return nil, false, nil
}

func (n *Normalizer) serverFailure(e Entity, msg string) error {
	n.logger.Warn("server reported failure",
		zap.String("entity", e.Singular),
		zap.String("message", msg))
	return &ServerError{Message: msg}
}

func (n *Normalizer) shapeMiss(entity string, kind Kind) {
	n.logger.Warn("no entity found in response",
		zap.String("entity", entity),
		zap.Stringer("shape", kind))
}

func (n *Normalizer) dropped(entity string, in, out int) {
	if in != out {
		n.logger.Debug("dropped invalid records",
			zap.String("entity", entity),
			zap.Int("received", in),
			zap.Int("kept", out))
	}
}
