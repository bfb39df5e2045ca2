package repo

import (
	"context"
	"strconv"
	"time"

	dom "Planner/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo provides todo persistence. Every query is scoped by owner, and
// both state transitions are single conditional updates: the precondition
// (still active, still pending) is checked in the same statement as the
// write, so concurrent callers cannot both succeed.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, ownerID, id int64, includeDeleted bool) (dom.Todo, error)
	MarkDeleted(ctx context.Context, ownerID, id int64, now time.Time) (int64, error)
	MarkCompleted(ctx context.Context, ownerID, id int64, now time.Time) (int64, error)
	ListCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time, f dom.TodoFilter) ([]dom.Todo, error)
	CountCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time) (dom.TodoCounts, error)
}

// PGTodoRepo implements TodoRepo with Postgres.
type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

const todoColumns = `id, user_id, content, status, created_at, updated_at, finished_at, is_deleted`

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (user_id, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + todoColumns
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.OwnerID, t.Content, t.Status, t.CreatedAt, t.UpdatedAt).Scan(
		&out.ID, &out.OwnerID, &out.Content, &out.Status,
		&out.CreatedAt, &out.UpdatedAt, &out.FinishedAt, &out.IsDeleted,
	)
	return out, err
}

// GetByID returns the todo only if it belongs to ownerID; a foreign id scans
// as no rows, same as an unknown one.
func (r *PGTodoRepo) GetByID(ctx context.Context, ownerID, id int64, includeDeleted bool) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&t.ID, &t.OwnerID, &t.Content, &t.Status,
		&t.CreatedAt, &t.UpdatedAt, &t.FinishedAt, &t.IsDeleted,
	)
	return t, err
}

// MarkDeleted sets is_deleted, guarded by is_deleted = FALSE. Returns the
// number of rows the guard let through (0 or 1).
func (r *PGTodoRepo) MarkDeleted(ctx context.Context, ownerID, id int64, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE todos SET is_deleted = TRUE, updated_at = $3
		 WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE`,
		id, ownerID, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkCompleted sets status and finished_at in one statement, guarded by
// (status = pending, is_deleted = FALSE). finished_at is written here and
// nowhere else, so it is set exactly once.
func (r *PGTodoRepo) MarkCompleted(ctx context.Context, ownerID, id int64, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE todos SET status = $4, finished_at = $3, updated_at = $3
		 WHERE id = $1 AND user_id = $2 AND status = $5 AND is_deleted = FALSE`,
		id, ownerID, now, dom.StatusCompleted, dom.StatusPending)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListCreatedBetween returns the owner's todos with created_at in the closed
// interval [from, to], filtered and ordered per f.
func (r *PGTodoRepo) ListCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time, f dom.TodoFilter) ([]dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos
		WHERE user_id = $1 AND created_at BETWEEN $2 AND $3`
	args := []interface{}{ownerID, from, to}
	if f.ExcludeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if f.OldestFirst {
		query += ` ORDER BY created_at ASC, id ASC`
	} else {
		query += ` ORDER BY created_at DESC, id ASC`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Content, &t.Status,
			&t.CreatedAt, &t.UpdatedAt, &t.FinishedAt, &t.IsDeleted); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountCreatedBetween aggregates the owner's todos in [from, to] by status.
// Deleted rows are included: the monthly view is an audit trail.
func (r *PGTodoRepo) CountCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time) (dom.TodoCounts, error) {
	var c dom.TodoCounts
	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE status = $4),
			COUNT(*) FILTER (WHERE status = $5),
			COUNT(*)
		 FROM todos WHERE user_id = $1 AND created_at BETWEEN $2 AND $3`,
		ownerID, from, to, dom.StatusPending, dom.StatusCompleted,
	).Scan(&c.Pending, &c.Completed, &c.Total)
	return c, err
}
