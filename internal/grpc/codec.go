package grpc

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/transform"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// request is the decoded form of an incoming Struct.
type request struct {
	fields  transform.Record
	version transform.APIVersion
}

func parseRequest(in *structpb.Struct) request {
	fields := transform.Record{}
	if in != nil {
		fields = in.AsMap()
	}
	return request{
		fields:  fields,
		version: transform.ParseAPIVersion(transform.String(fields, "apiVersion")),
	}
}

func (r request) str(keys ...string) string {
	return transform.String(r.fields, keys...)
}

func (r request) required(key string) (string, error) {
	v := strings.TrimSpace(r.str(key))
	if v == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	return v, nil
}

func (r request) intField(key string, def int) (int, error) {
	if _, present := r.fields[key]; !present {
		return def, nil
	}
	n, ok := transform.Int(r.fields, key)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", key)
	}
	return int(n), nil
}

// timeField parses key as a date or timestamp. With endOfDay, a bare date
// covers the whole day up to its last instant.
func (r request) timeField(key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(r.str(key))
	if raw == "" {
		return nil, nil
	}
	t, ok := transform.ParseTime(raw)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "%s is not a valid date: %q", key, raw)
	}
	if _, err := time.Parse(time.DateOnly, raw); err == nil && endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

func (r request) filters() (model.Filters, error) {
	from, err := r.timeField("from", false)
	if err != nil {
		return model.Filters{}, err
	}
	to, err := r.timeField("to", true)
	if err != nil {
		return model.Filters{}, err
	}
	return model.Filters{
		Status:   model.Status(r.str("status")),
		Priority: model.Priority(r.str("priority")),
		Category: r.str("category"),
		Search:   r.str("search"),
		From:     from,
		To:       to,
	}, nil
}

func (r request) ticketDraft() model.TicketDraft {
	return model.TicketDraft{
		Subject:      r.str("subject", "title"),
		Description:  r.str("description"),
		Priority:     model.Priority(r.str("priority")),
		Category:     r.str("category"),
		DepartmentID: r.str("departmentId"),
		ContactID:    r.str("contactId"),
		DueDate:      r.str("dueDate"),
	}
}

func (r request) ticketPatch() model.TicketPatch {
	return model.TicketPatch{
		Subject:     r.str("subject"),
		Description: r.str("description"),
		Status:      model.Status(r.str("status")),
		Priority:    model.Priority(r.str("priority")),
		Category:    r.str("category"),
		AssigneeID:  r.str("assigneeId"),
		DueDate:     r.str("dueDate"),
	}
}

// commentDraft accepts the body under any of the names the UI has used.
func (r request) commentDraft() model.CommentDraft {
	return model.CommentDraft{
		Body:     r.str("body", "content", "comment"),
		IsPublic: transform.Bool(r.fields, true, "isPublic"),
	}
}

// toStruct converts any JSON-serializable value into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return out, nil
}
