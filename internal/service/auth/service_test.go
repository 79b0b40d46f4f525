package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/auth"
	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/security"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	updated bool
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error { return nil }

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	return nil, apperrors.NotFound("user", fmt.Errorf("id %s", id))
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("user", fmt.Errorf("email %s", email))
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.updated = true
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error  { return nil }
func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }

func (r *fakeUserRepo) ListByRole(_ context.Context, _ string) ([]*model.User, error) {
	return nil, nil
}

func newTestService(t *testing.T, status string) (*Service, *fakeUserRepo) {
	t.Helper()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	repo := &fakeUserRepo{byEmail: map[string]*model.User{
		"carla@centro-paye.cl": {
			Base:         model.Base{ID: uuid.New()},
			Email:        "carla@centro-paye.cl",
			Name:         "Carla Núñez",
			PasswordHash: hash,
			Role:         model.UserRoleProfessional,
			Status:       status,
		},
	}}
	return NewService(repo, auth.NewJWTService("test-secret", 1), hasher), repo
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService(t, model.UserStatusActive)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "carla@centro-paye.cl",
		Password: "correct-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Carla Núñez", resp.User.Name)
	assert.True(t, repo.updated, "last login timestamp is recorded")

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleProfessional, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, model.UserStatusActive)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "carla@centro-paye.cl",
		Password: "wrong",
	})

	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t, model.UserStatusActive)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@centro-paye.cl",
		Password: "correct-password",
	})

	// Indistinguishable from a bad password.
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestLoginInactiveUser(t *testing.T) {
	svc, _ := newTestService(t, model.UserStatusInactive)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "carla@centro-paye.cl",
		Password: "correct-password",
	})

	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t, model.UserStatusActive)

	_, err := svc.ValidateToken(context.Background(), "garbage")

	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}
