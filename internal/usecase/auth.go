package usecase

import (
	"context"
	"errors"

	"pousada-pms/internal/domain/user"
	"pousada-pms/internal/pkg/jwt"
	"pousada-pms/internal/pkg/password"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrTokenValidation      = errors.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (*TokenPair, *queries.AuthorizedUserView, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (*TokenPair, *queries.AuthorizedUserView, error) {
	view, hashedPassword, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil || view == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !view.IsActive {
		return nil, nil, ErrUserInactive
	}
	if err := password.ComparePassword(hashedPassword, plainPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	role := user.Role(view.Role)
	if !role.IsValid() {
		return nil, nil, ErrAuthenticationFailed
	}

	pair, err := a.generatePair(view.ID, view.PropertyID, role)
	if err != nil {
		return nil, nil, err
	}

	if err := a.userRepo.UpdateLastLogin(ctx, view.ID); err != nil {
		return nil, nil, err
	}

	return pair, view, nil
}

func (a *authUseCaseImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrTokenValidation
	}

	// Re-check the account: a deactivated operator loses refresh too.
	view, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil || view == nil {
		return nil, ErrUserNotFound
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	role := user.Role(view.Role)
	if !role.IsValid() {
		return nil, ErrAuthenticationFailed
	}

	return a.generatePair(view.ID, view.PropertyID, role)
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	view, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || view == nil {
		return nil, ErrUserNotFound
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	return view, nil
}

func (a *authUseCaseImpl) generatePair(userID, propertyID uuid.UUID, role user.Role) (*TokenPair, error) {
	access, err := a.jwtService.GenerateAccessToken(userID, propertyID, role)
	if err != nil {
		return nil, ErrTokenGeneration
	}
	refresh, err := a.jwtService.GenerateRefreshToken(userID, propertyID, role)
	if err != nil {
		return nil, ErrTokenGeneration
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
