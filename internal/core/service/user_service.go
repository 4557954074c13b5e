package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

type userService struct {
	users ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

// NewUserService returns a UserService implementation enforcing the admin
// and self-protection rules on account management.
func NewUserService(users ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) ports.UserService {
	return &userService{users: users, audit: audit, log: log}
}

func (s *userService) List(ctx context.Context, actor ports.Actor) ([]domain.PublicUser, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// ChangeRole updates the target's role. Checks are ordered and
// short-circuiting: role sufficiency, then role validity, then the
// self-protection invariant, then target existence.
func (s *userService) ChangeRole(ctx context.Context, actor ports.Actor, targetID, role string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	// An admin can never change their own role, not even to ADMIN again.
	if targetID == actor.ID {
		return domain.ErrSelfModification
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return err
	}

	s.audit.Enqueue(domain.AuditEntry{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    domain.AuditRoleChanged,
		TargetID:  targetID,
		Detail:    role,
		At:        time.Now().UTC(),
	})
	s.log.Info().Str("actor_id", actor.ID).Str("target_id", targetID).Str("role", role).Msg("role changed")
	return nil
}

// Delete removes the target account under the same rules as ChangeRole.
func (s *userService) Delete(ctx context.Context, actor ports.Actor, targetID string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if targetID == actor.ID {
		return domain.ErrSelfModification
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	s.audit.Enqueue(domain.AuditEntry{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    domain.AuditUserDeleted,
		TargetID:  targetID,
		At:        time.Now().UTC(),
	})
	s.log.Info().Str("actor_id", actor.ID).Str("target_id", targetID).Msg("user deleted")
	return nil
}
