package dto

import "time"

// CreateTodoRequest is the JSON body for POST /todos/today.
type CreateTodoRequest struct {
	Content string `json:"content" binding:"required,min=1,max=255"`
}

// MonthQuery is the query string for the month endpoints.
type MonthQuery struct {
	Year  int `form:"year" binding:"required,min=1000,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
	// Optional status filter, only on the list endpoint.
	Status string `form:"status" binding:"omitempty,oneof=pending completed"`
}

type TodoResponse struct {
	ID         int64      `json:"id"`
	Content    string     `json:"content"`
	Status     string     `json:"status"`
	FinishedAt *time.Time `json:"finished_at"`
	IsDeleted  bool       `json:"is_deleted"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
}

// OperationResult confirms a state transition and carries the post-update snapshot.
type OperationResult struct {
	OK   bool         `json:"ok"`
	Todo TodoResponse `json:"todo"`
}

// CountsResponse is the per-month aggregate.
type CountsResponse struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

// DateResponse is the current-date helper payload.
type DateResponse struct {
	Weekday int `json:"weekday"` // 0 = Sunday
	Date    int `json:"date"`    // day of month
}
