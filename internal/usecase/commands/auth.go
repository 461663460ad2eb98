package commands

import (
	"context"

	"bookstand/internal/domain/user"
	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/errs"
	"bookstand/internal/pkg/jwt"
	"bookstand/internal/pkg/password"
	"bookstand/internal/usecase/queries"
)

var (
	ErrEmailAlreadyExists = errs.New("email already exists")
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrAccountInactive    = errs.New("account is inactive")
	ErrInvalidToken       = errs.New("invalid token")
)

type RegisterParams struct {
	Email    string
	Password string
	FullName string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthResult struct {
	User   *queries.AuthorizedUserView
	Tokens TokenPair
}

type AuthCommands interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, email, rawPassword string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
}

type authCommandsImpl struct {
	userRepo      UserRepository
	userReadStore queries.UserReadStore
	jwtService    *jwt.Service
	db            db.DBTX
}

func NewAuthCommands(userRepo UserRepository, userReadStore queries.UserReadStore, jwtService *jwt.Service, dbtx db.DBTX) AuthCommands {
	return &authCommandsImpl{
		userRepo:      userRepo,
		userReadStore: userReadStore,
		jwtService:    jwtService,
		db:            dbtx,
	}
}

func (u *authCommandsImpl) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	rawPassword, err := user.NewPassword(params.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	hash, err := password.HashPassword(rawPassword.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// Self-service registration always creates a member; admins are
	// promoted out of band.
	userEntity := user.NewUser(email, hash, params.FullName, user.RoleMember)

	if _, err := u.userRepo.Create(ctx, u.db, userEntity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.issueTokens(&queries.AuthorizedUserView{
		ID:       userEntity.ID(),
		Email:    userEntity.Email().Value(),
		FullName: userEntity.FullName(),
		Role:     userEntity.Role().String(),
		IsActive: userEntity.IsActive(),
	})
}

func (u *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*AuthResult, error) {
	view, passwordHash, err := u.userReadStore.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(passwordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !view.IsActive {
		return nil, ErrAccountInactive
	}

	if err := u.userRepo.UpdateLastLogin(ctx, u.db, view.ID); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.issueTokens(view)
}

func (u *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	// Re-read the user so a deactivation since issuance is honored.
	view, err := u.userReadStore.FindByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !view.IsActive {
		return nil, ErrAccountInactive
	}

	return u.issueTokens(view)
}

func (u *authCommandsImpl) issueTokens(view *queries.AuthorizedUserView) (*AuthResult, error) {
	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	accessToken, err := u.jwtService.GenerateAccessToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate access token")
	}
	refreshToken, err := u.jwtService.GenerateRefreshToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate refresh token")
	}

	return &AuthResult{
		User: view,
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}
