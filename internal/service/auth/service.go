package auth

import (
	"context"
	"time"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/repository"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/auth"
	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/security"
)

type Service struct {
	users  repository.UserRepository
	jwt    auth.JWTService
	hasher security.PasswordHasher
}

func NewService(users repository.UserRepository, jwt auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{users: users, jwt: jwt, hasher: hasher}
}

// Login checks credentials against the user store and issues a token.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(nil)
		}
		return nil, err
	}
	if user.Status != model.UserStatusActive {
		return nil, apperrors.Unauthorized(nil)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(nil)
	}

	token, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now()
	user.LastLoginAt = &now
	// Login must not fail over a bookkeeping write.
	_ = s.users.Update(ctx, user)

	return &model.LoginResponse{Token: token, User: user}, nil
}

// ValidateToken resolves a bearer token into claims.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}
