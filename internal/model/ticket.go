package model

// Status is a ticket lifecycle state. Values outside the known set are kept
// verbatim so newer upstream states survive a round trip.
type Status string

const (
	StatusNew        Status = "New"
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusOnHold     Status = "On Hold"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

// KnownStatuses lists the closed enum in display order.
var KnownStatuses = []Status{
	StatusNew,
	StatusOpen,
	StatusInProgress,
	StatusOnHold,
	StatusResolved,
	StatusClosed,
}

// Priority is a ticket urgency level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// KnownPriorities lists the closed enum from lowest to highest.
var KnownPriorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

const (
	DefaultSubject  = "Untitled"
	DefaultStatus   = StatusOpen
	DefaultPriority = PriorityMedium
	DefaultCategory = "General"
)

// Ticket is the canonical support ticket.
type Ticket struct {
	ID                string    `json:"id"`
	Subject           string    `json:"subject"`
	Description       string    `json:"description"`
	Status            Status    `json:"status"`
	Priority          Priority  `json:"priority"`
	Category          string    `json:"category"`
	DueDate           string    `json:"dueDate"`
	CreatedTime       string    `json:"createdTime"`
	CreatedTimestamp  int64     `json:"createdTimestamp"`
	ModifiedTime      string    `json:"modifiedTime"`
	ModifiedTimestamp int64     `json:"modifiedTimestamp"`
	DepartmentID      string    `json:"departmentId"`
	ContactID         string    `json:"contactId"`
	AccountID         string    `json:"accountId"`
	AssigneeID        string    `json:"assigneeId"`
	Comments          []Comment `json:"comments"`
	IsOverdue         bool      `json:"isOverdue"`
	IsEscalated       bool      `json:"isEscalated"`
}

// TicketDraft is the payload for creating a ticket.
type TicketDraft struct {
	Subject      string   `json:"subject"`
	Description  string   `json:"description"`
	Priority     Priority `json:"priority,omitempty"`
	Category     string   `json:"category,omitempty"`
	DepartmentID string   `json:"departmentId,omitempty"`
	ContactID    string   `json:"contactId,omitempty"`
	DueDate      string   `json:"dueDate,omitempty"`
}

// TicketPatch carries the fields of an update; empty fields are left alone.
type TicketPatch struct {
	Subject     string   `json:"subject,omitempty"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Category    string   `json:"category,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
}
