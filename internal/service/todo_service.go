package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"Planner/internal/cache"
	dom "Planner/internal/domain"
	"Planner/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound         = errors.New("todo not found")
	ErrAlreadyDeleted   = errors.New("todo already deleted")
	ErrAlreadyCompleted = errors.New("todo already completed")
	ErrConflict         = errors.New("todo changed concurrently, try again")
	ErrInvalidContent   = errors.New("content must be 1-255 characters")
	ErrInvalidMonth     = errors.New("year must be 4 digits and month between 1 and 12")
)

// TodoService is the task state machine. Two independent one-way axes:
// Pending -> Completed, and active -> deleted. A deleted todo keeps its last
// status, and neither transition ever reverts. Foreign and unknown ids are
// the same ErrNotFound, so callers cannot enumerate other owners' tasks.
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
	now   func() time.Time
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

// Create adds a pending task owned by ownerID. New tasks are always active
// and pending with no finish time; nothing about that is configurable.
func (s *TodoService) Create(ctx context.Context, ownerID int64, content string) (dom.Todo, error) {
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < 1 || n > 255 {
		return dom.Todo{}, ErrInvalidContent
	}
	now := s.now()
	t, err := s.repo.Create(ctx, dom.Todo{
		OwnerID:   ownerID,
		Content:   content,
		Status:    dom.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return dom.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

// ListToday returns the owner's pending, non-deleted tasks created during the
// current UTC day, newest first.
func (s *TodoService) ListToday(ctx context.Context, ownerID int64) ([]dom.Todo, error) {
	from, to := dayRange(s.now())
	status := dom.StatusPending
	filter := dom.TodoFilter{Status: &status, ExcludeDeleted: true}
	suffix := "today:" + from.Format("2006-01-02")
	return s.listCached(ctx, ownerID, suffix, from, to, filter)
}

// SoftDelete marks a task deleted and returns the post-update snapshot.
// Deleting is valid from any active state, pending or completed; deleting an
// already-deleted task is a conflict, not a silent success.
func (s *TodoService) SoftDelete(ctx context.Context, ownerID, id int64) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, ownerID, id, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, fmt.Errorf("find todo: %w", err)
	}
	if existing.IsDeleted {
		return dom.Todo{}, ErrAlreadyDeleted
	}
	rows, err := s.repo.MarkDeleted(ctx, ownerID, id, s.now())
	if err != nil {
		return dom.Todo{}, fmt.Errorf("delete todo: %w", err)
	}
	if rows == 0 {
		// The row was active a moment ago; a concurrent delete won the race.
		return dom.Todo{}, ErrConflict
	}
	t, err := s.repo.GetByID(ctx, ownerID, id, true)
	if err != nil {
		return dom.Todo{}, fmt.Errorf("reload todo: %w", err)
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

// Complete moves a task from Pending to Completed and stamps FinishedAt,
// returning the post-update snapshot. Deleted tasks are not completable and
// look like NotFound; repeating a completion is a conflict, never a no-op.
func (s *TodoService) Complete(ctx context.Context, ownerID, id int64) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, ownerID, id, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, fmt.Errorf("find todo: %w", err)
	}
	if existing.Status == dom.StatusCompleted {
		return dom.Todo{}, ErrAlreadyCompleted
	}
	rows, err := s.repo.MarkCompleted(ctx, ownerID, id, s.now())
	if err != nil {
		return dom.Todo{}, fmt.Errorf("complete todo: %w", err)
	}
	if rows == 0 {
		return dom.Todo{}, ErrConflict
	}
	// Reload including deleted rows: a concurrent soft-delete after our
	// update must not hide the snapshot of a completion that succeeded.
	t, err := s.repo.GetByID(ctx, ownerID, id, true)
	if err != nil {
		return dom.Todo{}, fmt.Errorf("reload todo: %w", err)
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

// QueryByMonth returns the owner's tasks created in the given month, oldest
// first, optionally filtered by status. Unlike ListToday, deleted tasks stay
// visible: the monthly view is an audit trail.
func (s *TodoService) QueryByMonth(ctx context.Context, ownerID int64, year, month int, status *dom.Status) ([]dom.Todo, error) {
	from, to, err := monthRange(year, month)
	if err != nil {
		return nil, err
	}
	filter := dom.TodoFilter{Status: status, OldestFirst: true}
	suffix := fmt.Sprintf("month:%04d-%02d", year, month)
	if status != nil {
		suffix += ":" + status.String()
	}
	return s.listCached(ctx, ownerID, suffix, from, to, filter)
}

// CountByMonth aggregates the owner's tasks created in the given month by
// status. Deleted tasks are counted, same as QueryByMonth.
func (s *TodoService) CountByMonth(ctx context.Context, ownerID int64, year, month int) (dom.TodoCounts, error) {
	from, to, err := monthRange(year, month)
	if err != nil {
		return dom.TodoCounts{}, err
	}
	if s.cache == nil {
		return s.repo.CountCreatedBetween(ctx, ownerID, from, to)
	}
	suffix := fmt.Sprintf("counts:%04d-%02d", year, month)
	key := sfKey(ownerID, suffix)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if counts, err := s.cache.GetCounts(ctx, ownerID, suffix); err == nil && counts != nil {
			return *counts, nil
		}
		counts, err := s.repo.CountCreatedBetween(ctx, ownerID, from, to)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetCounts(ctx, ownerID, suffix, counts)
		return counts, nil
	})
	if err != nil {
		return dom.TodoCounts{}, err
	}
	return v.(dom.TodoCounts), nil
}

// listCached is the shared cache-aside path for range reads, with
// singleflight collapsing concurrent misses for the same key.
func (s *TodoService) listCached(ctx context.Context, ownerID int64, suffix string, from, to time.Time, f dom.TodoFilter) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.repo.ListCreatedBetween(ctx, ownerID, from, to, f)
	}
	v, err, _ := s.sf.Do(sfKey(ownerID, suffix), func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, ownerID, suffix); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListCreatedBetween(ctx, ownerID, from, to, f)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, ownerID, suffix, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

func (s *TodoService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateOwner(ctx, ownerID)
	}
}

func sfKey(ownerID int64, suffix string) string {
	return strconv.FormatInt(ownerID, 10) + ":" + suffix
}

// dayRange returns the closed interval [00:00:00.000, 23:59:59.999] of now's
// UTC calendar day.
func dayRange(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.Add(24*time.Hour - time.Millisecond)
}

// monthRange returns the closed interval covering the whole calendar month in
// UTC. AddDate normalizes month 13, so December rolls into January, and leap
// Februaries come out 29 days long without special cases.
func monthRange(year, month int) (time.Time, time.Time, error) {
	if year < 1000 || year > 9999 || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0).Add(-time.Millisecond), nil
}
