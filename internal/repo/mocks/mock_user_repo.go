package mocks

import (
	"context"

	dom "Planner/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByPhone(ctx context.Context, phone string) (dom.User, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	args := m.Called(ctx, u)
	if args.Error(1) != nil {
		return dom.User{}, args.Error(1)
	}
	// Echo the input back with an ID, the way the real insert does.
	out := u
	out.ID = 1
	if ret, ok := args.Get(0).(dom.User); ok && ret.ID != 0 {
		out = ret
	}
	return out, nil
}
