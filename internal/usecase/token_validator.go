package usecase

import (
	"pousada-pms/internal/domain/user"
	"pousada-pms/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, uuid.UUID, user.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, uuid.Nil, "", err
	}
	if claims.TokenType != "access" {
		return uuid.Nil, uuid.Nil, "", jwt.ErrInvalidToken
	}

	role := user.Role(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, uuid.Nil, "", jwt.ErrInvalidToken
	}

	return claims.UserID, claims.PropertyID, role, nil
}
