package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severity is the backend's priority scale for a todo item.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// Label returns the user-facing (Turkish) name for the severity.
func (s Severity) Label() string {
	switch s {
	case SeverityLow:
		return "Düşük"
	case SeverityHigh:
		return "Yüksek"
	default:
		return "Orta"
	}
}

// Next cycles to the following severity, wrapping after high.
func (s Severity) Next() Severity {
	if s >= SeverityHigh {
		return SeverityLow
	}
	return s + 1
}

// Status is the completion state of a todo item.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
)

// Label returns the user-facing (Turkish) name for the status.
func (s Status) Label() string {
	if s == StatusCompleted {
		return "Tamamlandı"
	}
	return "Bekliyor"
}

// Toggle flips between pending and completed.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// TodoList is a named collection of todo items owned by one partner.
type TodoList struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ColorCode   string    `json:"colorCode,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoItem is a single entry inside a todo list.
type TodoItem struct {
	ID          uuid.UUID  `json:"id"`
	TodoListID  uuid.UUID  `json:"todoListId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Severity    Severity   `json:"severity"`
	Status      Status     `json:"status"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Completed reports whether the item is done.
func (t TodoItem) Completed() bool {
	return t.Status == StatusCompleted
}
