package readstore

import (
	"context"

	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"
	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `SELECT id, email, full_name, role, is_active FROM users WHERE id = $1`

	var v queries.AuthorizedUserView
	err := s.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(&v.ID, &v.Email, &v.FullName, &v.Role, &v.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &v, nil
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	const query = `SELECT id, email, full_name, role, is_active, password_hash FROM users WHERE email = $1`

	var v queries.AuthorizedUserView
	var passwordHash string
	err := s.db.QueryRow(ctx, query, email).Scan(&v.ID, &v.Email, &v.FullName, &v.Role, &v.IsActive, &passwordHash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user", err)
	}
	return &v, passwordHash, nil
}
