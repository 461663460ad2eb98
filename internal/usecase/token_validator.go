package usecase

import (
	"bookstand/internal/pkg/errs"
	"bookstand/internal/pkg/jwt"
)

var ErrInvalidAccessToken = errs.New("invalid access token")

// TokenValidator is the middleware-facing slice of the JWT service: it
// validates access tokens only, so a refresh token can never be used to
// authenticate a request.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) ValidateAccessToken(token string) (*jwt.Claims, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAccessToken)
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}
