package mocks

import (
	"context"
	"time"

	dom "Planner/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockTodoRepo struct {
	mock.Mock
}

func (m *MockTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	args := m.Called(ctx, t)
	if args.Error(1) != nil {
		return dom.Todo{}, args.Error(1)
	}
	out := t
	out.ID = 1
	if ret, ok := args.Get(0).(dom.Todo); ok && ret.ID != 0 {
		out = ret
	}
	return out, nil
}

func (m *MockTodoRepo) GetByID(ctx context.Context, ownerID, id int64, includeDeleted bool) (dom.Todo, error) {
	args := m.Called(ctx, ownerID, id, includeDeleted)
	return args.Get(0).(dom.Todo), args.Error(1)
}

func (m *MockTodoRepo) MarkDeleted(ctx context.Context, ownerID, id int64, now time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, id, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTodoRepo) MarkCompleted(ctx context.Context, ownerID, id int64, now time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, id, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTodoRepo) ListCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time, f dom.TodoFilter) ([]dom.Todo, error) {
	args := m.Called(ctx, ownerID, from, to, f)
	if list := args.Get(0); list != nil {
		return list.([]dom.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTodoRepo) CountCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time) (dom.TodoCounts, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).(dom.TodoCounts), args.Error(1)
}
