package domain

import "time"

// Status is the lifecycle axis of a todo. It only moves forward:
// once Completed, never Pending again.
type Status int16

const (
	StatusPending   Status = 0
	StatusCompleted Status = 1
)

func (s Status) String() string {
	if s == StatusCompleted {
		return "completed"
	}
	return "pending"
}

// ParseStatus maps the wire form ("pending"/"completed") back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "pending":
		return StatusPending, true
	case "completed":
		return StatusCompleted, true
	}
	return 0, false
}

// Todo is the task entity. Deletion is a separate axis from Status: a
// deleted todo keeps whatever status it had, and neither axis ever reverts.
// FinishedAt is set exactly once, at the moment of completion.
type Todo struct {
	ID         int64
	OwnerID    int64
	Content    string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt *time.Time
	IsDeleted  bool
}

// TodoCounts is a per-month aggregate partitioned by status.
type TodoCounts struct {
	Pending   int64
	Completed int64
	Total     int64
}

// TodoFilter narrows a date-range query.
type TodoFilter struct {
	Status         *Status
	ExcludeDeleted bool
	// OldestFirst orders created_at ascending (history view); the default is
	// newest first. Ties always break by id ascending.
	OldestFirst bool
}
