package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
	"github.com/maintrack/maintenance-system/internal/core/token"
)

type authService struct {
	users    ports.UserRepository
	codec    *token.Codec
	throttle ports.LoginThrottle
	audit    ports.AuditSink
	log      zerolog.Logger
}

// NewAuthService returns an AuthService implementation backed by the given
// user store and token codec.
func NewAuthService(
	users ports.UserRepository,
	codec *token.Codec,
	throttle ports.LoginThrottle,
	audit ports.AuditSink,
	log zerolog.Logger,
) ports.AuthService {
	return &authService{
		users:    users,
		codec:    codec,
		throttle: throttle,
		audit:    audit,
		log:      log,
	}
}

// Login validates credentials and issues a session token. Unknown email and
// wrong password take the same path and return the same error, so the
// response cannot be used to enumerate accounts.
func (s *authService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// 1. Throttle check before touching the store.
	allowed, err := s.throttle.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	// 2. Look up the account and verify the password. Both failure paths
	// converge on ErrInvalidCredentials.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		s.audit.Enqueue(domain.AuditEntry{
			ActorID: user.ID,
			Action:  domain.AuditLoginFailure,
			At:      time.Now().UTC(),
		})
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Issue the token.
	signed, expiresAt, err := s.codec.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login throttle")
	}
	s.audit.Enqueue(domain.AuditEntry{
		ActorID:   user.ID,
		ActorName: user.Name,
		Action:    domain.AuditLoginSuccess,
		At:        time.Now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}, nil
}

func (s *authService) recordFailure(ctx context.Context, email string) {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// Register creates a new account. Emails are normalised to lowercase before
// storage so lookups are effectively case-insensitive.
func (s *authService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if input.Name == "" || email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(input.Password) < 6 {
		return nil, domain.ErrInvalidCredentials
	}

	role := input.Role
	if role == "" {
		role = domain.RoleOperador
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	// Privilege escalation guard: only an authenticated ADMIN can create
	// another ADMIN. The public endpoint passes an empty caller role.
	if role == domain.RoleAdmin && input.CallerRole != domain.RoleAdmin {
		role = domain.RoleOperador
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// WhoAmI resolves verified claims against the live store. A token can
// outlive its account; this is where a deleted user gets caught.
func (s *authService) WhoAmI(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
