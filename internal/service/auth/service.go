package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/repository"
	"github.com/hms-backend/hms-api/internal/service/notification"
	"github.com/hms-backend/hms-api/internal/service/otp"
	"github.com/hms-backend/hms-api/internal/service/rbac"
	"github.com/hms-backend/hms-api/pkg/auth"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/security"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

type Service struct {
	users    repository.UserRepository
	jwt      auth.JWTService
	otp      *otp.Store
	notifier notification.Service
}

func NewService(users repository.UserRepository, jwt auth.JWTService, otpStore *otp.Store, notifier notification.Service) *Service {
	return &Service{
		users:    users,
		jwt:      jwt,
		otp:      otpStore,
		notifier: notifier,
	}
}

// Login authenticates by email and password and returns a signed token
// carrying the capability set for the user's role at this moment.
// Accounts lock for a cooling-off window after repeated failures.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound) {
			return nil, errors.Unauthenticated("invalid credentials")
		}
		return nil, err
	}

	if !user.Active || user.Status == model.UserStatusInactive {
		return nil, errors.Unauthenticated("account is deactivated")
	}

	if user.LoginAttempts >= maxLoginAttempts &&
		time.Since(user.LastLoginAttempt) < lockoutDuration {
		return nil, errors.Unauthenticated("account temporarily locked, try again later")
	}

	if !security.CheckPassword(user.PasswordHash, req.Password) {
		user.LoginAttempts++
		user.LastLoginAttempt = time.Now().UTC()
		if updErr := s.users.Update(ctx, user); updErr != nil {
			log.Error().Err(updErr).Str("email", user.Email).Msg("failed to record login attempt")
		}
		return nil, errors.Unauthenticated("invalid credentials")
	}

	now := time.Now().UTC()
	user.LoginAttempts = 0
	user.LastLoginAttempt = now
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to record login")
	}

	return s.issueToken(user)
}

// Register creates a patient account. Staff and admin accounts are
// provisioned through the staff endpoints, never self-registered.
func (s *Service) Register(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.Conflict("email already registered")
	} else if !errors.IsCode(err, errors.ErrNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         model.RolePatient,
		Status:       model.UserStatusActive,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.notifier.Send(&model.Notification{
		To:      user.Email,
		Subject: "Welcome",
		Body:    fmt.Sprintf("Hi %s, your account has been created.", user.FirstName),
	})

	return user, nil
}

// RequestOTP generates a reset code and mails it. To avoid account
// enumeration the response is identical whether or not the email exists.
func (s *Service) RequestOTP(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := s.otp.Generate(user.Email)
	if err != nil {
		return errors.Internal("failed to generate reset code", err)
	}

	s.notifier.Send(&model.Notification{
		To:      user.Email,
		Subject: "Password reset code",
		Body:    fmt.Sprintf("Your password reset code is %s. It expires in 5 minutes.", code),
	})
	return nil
}

// VerifyOTP checks a code without consuming the reset flow; invalid or
// expired codes come back as unauthenticated.
func (s *Service) VerifyOTP(email, code string) error {
	// Verify consumes the code, so re-issue it for the reset step.
	if !s.otp.Verify(email, code) {
		return errors.Unauthenticated("invalid or expired code")
	}
	s.otp.Restore(email, code)
	return nil
}

// ResetPassword consumes a valid code and replaces the user's password.
func (s *Service) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	if !s.otp.Verify(req.Email, req.Code) {
		return errors.Unauthenticated("invalid or expired code")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.notifier.Send(&model.Notification{
		To:      user.Email,
		Subject: "Password changed",
		Body:    "Your password was changed. If this was not you, contact support immediately.",
	})
	return nil
}

func (s *Service) issueToken(user *model.User) (*model.TokenResponse, error) {
	caps := rbac.CapabilitiesFor(user.Role)
	token, expiresAt, err := s.jwt.Issue(user, caps)
	if err != nil {
		return nil, errors.Internal("failed to issue token", err)
	}
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
	}, nil
}
