package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/godilite/helpdesk-portal/internal/transform"
)

// Kind tags the shape of a decoded upstream response.
type Kind int

const (
	KindEmpty Kind = iota
	KindList
	KindObject
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindError:
		return "error"
	default:
		return "empty"
	}
}

const genericFailureMessage = "request failed"

// Response is the typed form of a raw response body. Exactly one of List,
// Object or Message is meaningful, selected by Kind.
type Response struct {
	Kind    Kind
	List    []any
	Object  transform.Record
	Message string
}

var ErrMalformed = errors.New("malformed response body")

// Decode is the single deserialization step between the transport and the
// normalizer. Numbers are kept as json.Number so numeric ids are not
// rounded.
func Decode(body []byte) (Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Response{Kind: KindEmpty}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromValue(v), nil
}

// FromValue classifies an already-decoded value.
func FromValue(v any) Response {
	switch val := v.(type) {
	case []any:
		return Response{Kind: KindList, List: val}
	case map[string]any:
		if msg, failed := failureMessage(val); failed {
			return Response{Kind: KindError, Message: msg}
		}
		return Response{Kind: KindObject, Object: val}
	default:
		return Response{Kind: KindEmpty}
	}
}

// failureMessage detects the {success: false, error: "..."} envelope. The
// error field may be a string or an object carrying a message.
func failureMessage(obj map[string]any) (string, bool) {
	failed := false
	if s, ok := obj["success"].(bool); ok && !s {
		failed = true
	}

	msg := ""
	switch e := obj["error"].(type) {
	case string:
		if strings.TrimSpace(e) != "" {
			msg, failed = e, true
		}
	case map[string]any:
		msg = transform.String(e, "message", "detail", "code")
		failed = true
	case bool:
		if e {
			failed = true
		}
	}

	if !failed {
		return "", false
	}
	if msg == "" {
		msg = transform.String(obj, "message")
	}
	if msg == "" {
		msg = genericFailureMessage
	}
	return msg, true
}

// ServerError is a failure reported by the upstream inside an otherwise
// successful HTTP exchange.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "server reported failure: " + e.Message
}
