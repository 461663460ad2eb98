//go:build unit || e2e

package builder

import (
	"time"

	domuser "bookstand/internal/domain/user"
	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         domuser.Role
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUserBuilder() *UserBuilder {
	now := time.Now()
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "member@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		FullName:     "Pat Reader",
		Role:         domuser.RoleMember,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*domuser.User, error) {
	email, err := domuser.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	return domuser.ReconstructUser(
		u.ID,
		email,
		u.PasswordHash,
		u.FullName,
		u.Role,
		u.IsActive,
		u.LastLogin,
		u.CreatedAt,
		u.UpdatedAt,
	), nil
}

func (u *UserBuilder) BuildView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = domuser.RoleAdmin
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
