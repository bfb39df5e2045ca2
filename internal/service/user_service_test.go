package service

import (
	"context"
	"testing"
	"time"

	"Planner/internal/auth"
	dom "Planner/internal/domain"
	"Planner/internal/repo/mocks"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(r *mocks.MockUserRepo) *UserService {
	tokens := auth.NewTokens("test-secret", 2*time.Hour)
	return NewUserService(r, tokens, bcrypt.MinCost)
}

func TestUserServiceRegister(t *testing.T) {
	ctx := context.TODO()

	t.Run("success strips the hash", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepo)
		svc := newTestUserService(mockRepo)
		mockRepo.On("GetByPhone", ctx, "13800000001").Return(dom.User{}, pgx.ErrNoRows).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("domain.User")).Return(dom.User{}, nil).Once()

		u, err := svc.Register(ctx, "13800000001", "Secret123", "Ann")

		assert.NoError(t, err)
		assert.Equal(t, "13800000001", u.Phone)
		assert.Equal(t, "Ann", u.Nickname)
		assert.Empty(t, u.PasswordHash)
		assert.NotZero(t, u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty nickname defaults to masked phone", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepo)
		svc := newTestUserService(mockRepo)
		mockRepo.On("GetByPhone", ctx, "13800000001").Return(dom.User{}, pgx.ErrNoRows).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("domain.User")).Return(dom.User{}, nil).Once()

		u, err := svc.Register(ctx, "13800000001", "Secret123", "")

		assert.NoError(t, err)
		assert.Equal(t, "138****0001", u.Nickname)
		mockRepo.AssertExpectations(t)
	})

	t.Run("phone already taken", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepo)
		svc := newTestUserService(mockRepo)
		mockRepo.On("GetByPhone", ctx, "13800000001").Return(dom.User{ID: 9, Phone: "13800000001"}, nil).Once()

		_, err := svc.Register(ctx, "13800000001", "Secret123", "Ann")

		assert.ErrorIs(t, err, ErrPhoneTaken)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("insert race maps unique violation to conflict", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepo)
		svc := newTestUserService(mockRepo)
		mockRepo.On("GetByPhone", ctx, "13800000001").Return(dom.User{}, pgx.ErrNoRows).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("domain.User")).
			Return(dom.User{}, &pgconn.PgError{Code: "23505"}).Once()

		_, err := svc.Register(ctx, "13800000001", "Secret123", "Ann")

		assert.ErrorIs(t, err, ErrPhoneTaken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepo)
		svc := newTestUserService(mockRepo)

		_, err := svc.Register(ctx, "12345", "Secret123", "Ann")
		assert.ErrorIs(t, err, ErrInvalidPhone)

		_, err = svc.Register(ctx, "1380000000a", "Secret123", "Ann")
		assert.ErrorIs(t, err, ErrInvalidPhone)

		_, err = svc.Register(ctx, "13800000001", "", "Ann")
		assert.ErrorIs(t, err, ErrInvalidPassword)

		long := make([]byte, 51)
		for i := range long {
			long[i] = 'x'
		}
		_, err = svc.Register(ctx, "13800000001", "Secret123", string(long))
		assert.ErrorIs(t, err, ErrInvalidNickname)

		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestUserServiceLogin(t *testing.T) {
	ctx := context.TODO()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	stored := dom.User{
		ID:           7,
		Phone:        "13800000001",
		PasswordHash: string(hash),
		Nickname:     "Ann",
	}

	t.Run("success issues a verifiable token", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepo)
		tokens := auth.NewTokens("test-secret", 2*time.Hour)
		svc := NewUserService(mockRepo, tokens, bcrypt.MinCost)
		mockRepo.On("GetByPhone", ctx, "13800000001").Return(stored, nil).Once()

		u, token, err := svc.Login(ctx, "13800000001", "Secret123")

		assert.NoError(t, err)
		assert.Equal(t, "Ann", u.Nickname)
		assert.Empty(t, u.PasswordHash)
		assert.NotEmpty(t, token)

		claims, err := tokens.Validate(token)
		assert.NoError(t, err)
		assert.Equal(t, stored.ID, claims.OwnerID)
		assert.Equal(t, stored.Phone, claims.Phone)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown phone", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepo)
		svc := newTestUserService(mockRepo)
		mockRepo.On("GetByPhone", ctx, "13899999999").Return(dom.User{}, pgx.ErrNoRows).Once()

		_, _, err := svc.Login(ctx, "13899999999", "Secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepo)
		svc := newTestUserService(mockRepo)
		mockRepo.On("GetByPhone", ctx, "13800000001").Return(stored, nil).Once()

		_, _, err := svc.Login(ctx, "13800000001", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockUserRepo)
	tokens := auth.NewTokens("test-secret", 2*time.Hour)
	svc := NewUserService(mockRepo, tokens, bcrypt.MinCost)

	var saved dom.User
	mockRepo.On("GetByPhone", ctx, "13800000001").Return(dom.User{}, pgx.ErrNoRows).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(dom.User)
			saved.ID = 7
		}).
		Return(dom.User{}, nil).Once()

	registered, err := svc.Register(ctx, "13800000001", "Secret123", "Ann")
	assert.NoError(t, err)

	// Login sees the persisted row, hash included.
	mockRepo.On("GetByPhone", ctx, "13800000001").Return(saved, nil).Once()

	u, token, err := svc.Login(ctx, "13800000001", "Secret123")
	assert.NoError(t, err)
	assert.Equal(t, registered.Nickname, u.Nickname)

	claims, err := tokens.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, saved.ID, claims.OwnerID)
	assert.Equal(t, "13800000001", claims.Phone)
	mockRepo.AssertExpectations(t)
}
