package repository

import (
	"context"

	"bookstand/internal/domain/user"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error) {
	const query = `
		INSERT INTO users (id, email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(u.ID()),
		u.Email().Value(),
		u.PasswordHash(),
		u.FullName(),
		u.Role().String(),
		u.IsActive(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create user", err)
	}
	return u.ID(), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	const query = `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

	if _, err := dbtx.Exec(ctx, query, pgconv.UUIDToPgtype(userID)); err != nil {
		return wrapWriteErr("failed to update last login", err)
	}
	return nil
}
