package repo

import (
	"context"

	dom "Planner/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence. Lookups only see non-deleted accounts.
type UserRepo interface {
	GetByPhone(ctx context.Context, phone string) (dom.User, error)
	Create(ctx context.Context, u dom.User) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByPhone returns the non-deleted user holding phone.
func (r *PGUserRepo) GetByPhone(ctx context.Context, phone string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, phone, password_hash, nickname, created_at, updated_at, is_deleted
		 FROM users WHERE phone = $1 AND is_deleted = FALSE`,
		phone,
	).Scan(&u.ID, &u.Phone, &u.PasswordHash, &u.Nickname, &u.CreatedAt, &u.UpdatedAt, &u.IsDeleted)
	return u, err
}

// Create inserts a new user and returns it. Timestamps come from the caller,
// not the database, so creation time is deterministic in tests.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (phone, password_hash, nickname, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, phone, password_hash, nickname, created_at, updated_at, is_deleted`
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.Phone, u.PasswordHash, u.Nickname, u.CreatedAt, u.UpdatedAt).Scan(
		&out.ID, &out.Phone, &out.PasswordHash, &out.Nickname, &out.CreatedAt, &out.UpdatedAt, &out.IsDeleted,
	)
	return out, err
}
