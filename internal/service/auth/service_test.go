package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/otp"
	"github.com/hms-backend/hms-api/pkg/auth"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/security"
)

type fakeUserRepo struct {
	users     map[uuid.UUID]*model.User
	passwords map[uuid.UUID]string
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:     make(map[uuid.UUID]*model.User),
		passwords: make(map[uuid.UUID]string),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("user", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("user", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.passwords[id] = hash
	return nil
}

func (r *fakeUserRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }
func (r *fakeUserRepo) ListStaff(_ context.Context, _ *uuid.UUID, _ int) ([]*model.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) SearchStaffByName(_ context.Context, _ string, _ int) ([]*model.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) SearchStaffBySpecialization(_ context.Context, _ string, _ int) ([]*model.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ListSpecializations(_ context.Context) ([]string, error) { return nil, nil }

type fakeNotifier struct {
	sent []*model.Notification
}

func (n *fakeNotifier) Send(msg *model.Notification) {
	n.sent = append(n.sent, msg)
}

func newTestService(t *testing.T, users ...*model.User) (*Service, *fakeUserRepo, *fakeNotifier, *otp.Store) {
	t.Helper()
	repo := newFakeUserRepo(users...)
	notifier := &fakeNotifier{}
	store := otp.NewStore(time.Minute)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, jwtSvc, store, notifier), repo, notifier, store
}

func activeUser(t *testing.T, email, password string, role model.Role) *model.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       model.UserStatusActive,
		Active:       true,
	}
}

func TestLogin(t *testing.T) {
	user := activeUser(t, "doctor@example.com", "s3cret-pass", model.RoleStaff)
	svc, _, _, _ := newTestService(t, user)

	token, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doctor@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Greater(t, token.ExpiresIn, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	user := activeUser(t, "doctor@example.com", "s3cret-pass", model.RoleStaff)
	svc, repo, _, _ := newTestService(t, user)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doctor@example.com",
		Password: "wrong",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthenticated))
	assert.Equal(t, 1, repo.users[user.ID].LoginAttempts)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthenticated))
}

func TestLoginLockout(t *testing.T) {
	user := activeUser(t, "doctor@example.com", "s3cret-pass", model.RoleStaff)
	svc, _, _, _ := newTestService(t, user)
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(ctx, &model.LoginRequest{
			Email:    "doctor@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
	}

	// Even the correct password is rejected while locked.
	_, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "doctor@example.com",
		Password: "s3cret-pass",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthenticated))
}

func TestLoginLockoutExpires(t *testing.T) {
	user := activeUser(t, "doctor@example.com", "s3cret-pass", model.RoleStaff)
	user.LoginAttempts = maxLoginAttempts
	user.LastLoginAttempt = time.Now().UTC().Add(-lockoutDuration - time.Minute)
	svc, repo, _, _ := newTestService(t, user)

	token, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doctor@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, 0, repo.users[user.ID].LoginAttempts)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	user := activeUser(t, "doctor@example.com", "s3cret-pass", model.RoleStaff)
	user.Active = false
	svc, _, _, _ := newTestService(t, user)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doctor@example.com",
		Password: "s3cret-pass",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthenticated))
}

func TestRegister(t *testing.T) {
	svc, repo, notifier, _ := newTestService(t)

	user, err := svc.Register(context.Background(), &model.CreateUserRequest{
		Email:     "new@example.com",
		Password:  "password123",
		FirstName: "New",
		LastName:  "Patient",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, user.Role)
	assert.True(t, user.Active)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = repo.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "new@example.com", notifier.sent[0].To)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	existing := activeUser(t, "taken@example.com", "password123", model.RolePatient)
	svc, _, _, _ := newTestService(t, existing)

	_, err := svc.Register(context.Background(), &model.CreateUserRequest{
		Email:     "taken@example.com",
		Password:  "password123",
		FirstName: "Dup",
		LastName:  "User",
	})
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestOTPResetFlow(t *testing.T) {
	user := activeUser(t, "doctor@example.com", "old-password", model.RoleStaff)
	svc, repo, notifier, store := newTestService(t, user)
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, "doctor@example.com"))
	require.Len(t, notifier.sent, 1)

	// Pull the code straight from the store for the test.
	code, err := store.Generate("doctor@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.VerifyOTP("doctor@example.com", code))

	require.NoError(t, svc.ResetPassword(ctx, &model.ResetPasswordRequest{
		Email:       "doctor@example.com",
		Code:        code,
		NewPassword: "new-password",
	}))

	hash, ok := repo.passwords[user.ID]
	require.True(t, ok)
	assert.True(t, security.CheckPassword(hash, "new-password"))

	// The code is consumed.
	err = svc.ResetPassword(ctx, &model.ResetPasswordRequest{
		Email:       "doctor@example.com",
		Code:        code,
		NewPassword: "another-password",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthenticated))
}

func TestRequestOTPUnknownEmailSilent(t *testing.T) {
	svc, _, notifier, _ := newTestService(t)

	assert.NoError(t, svc.RequestOTP(context.Background(), "ghost@example.com"))
	assert.Empty(t, notifier.sent)
}

func TestResetPasswordBadCode(t *testing.T) {
	user := activeUser(t, "doctor@example.com", "old-password", model.RoleStaff)
	svc, _, _, _ := newTestService(t, user)

	err := svc.ResetPassword(context.Background(), &model.ResetPasswordRequest{
		Email:       "doctor@example.com",
		Code:        "123456",
		NewPassword: "new-password",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthenticated))
}
