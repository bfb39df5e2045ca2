package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"Planner/internal/auth"
	dom "Planner/internal/domain"
	"Planner/internal/repo"
	"Planner/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrPhoneTaken         = errors.New("phone already registered")
	ErrInvalidPhone       = errors.New("phone must be exactly 11 digits")
	ErrInvalidPassword    = errors.New("password must not be empty")
	ErrInvalidNickname    = errors.New("nickname must be 1-50 characters")
)

var phonePattern = regexp.MustCompile(`^[0-9]{11}$`)

// UserService handles registration, login and credential issuance.
type UserService struct {
	repo   repo.UserRepo
	tokens *auth.Tokens
	cost   int
	now    func() time.Time
}

// NewUserService returns a new UserService. bcryptCost outside the legal
// range falls back to the bcrypt default.
func NewUserService(r repo.UserRepo, tokens *auth.Tokens, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:   r,
		tokens: tokens,
		cost:   bcryptCost,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new account. The returned record has the password hash
// stripped. An empty nickname defaults to the masked phone.
func (s *UserService) Register(ctx context.Context, phone, password, nickname string) (dom.User, error) {
	phone = strings.TrimSpace(phone)
	nickname = strings.TrimSpace(nickname)
	if !phonePattern.MatchString(phone) {
		return dom.User{}, ErrInvalidPhone
	}
	if password == "" {
		return dom.User{}, ErrInvalidPassword
	}
	if nickname == "" {
		nickname = utils.MaskPhone(phone)
	}
	if utf8.RuneCountInString(nickname) > 50 {
		return dom.User{}, ErrInvalidNickname
	}

	if _, err := s.repo.GetByPhone(ctx, phone); err == nil {
		return dom.User{}, ErrPhoneTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, fmt.Errorf("check phone: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return dom.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u, err := s.repo.Create(ctx, dom.User{
		Phone:        phone,
		PasswordHash: string(hash),
		Nickname:     nickname,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// The pre-check cannot see an insert that lands between it and ours;
		// the partial unique index on phone closes that race.
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrPhoneTaken
		}
		return dom.User{}, fmt.Errorf("create user: %w", err)
	}
	u.PasswordHash = ""
	return u, nil
}

// Login verifies credentials and issues a bearer token. Unknown phone and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, phone, password string) (dom.User, string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return dom.User{}, "", ErrInvalidCredentials
	}
	u, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, "", ErrInvalidCredentials
		}
		return dom.User{}, "", fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID, u.Phone, s.now())
	if err != nil {
		return dom.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	u.PasswordHash = ""
	return u, token, nil
}
