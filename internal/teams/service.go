// Package teams administers organization team members and their roles.
package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/opencert/certhub/internal/domain"
	"github.com/opencert/certhub/internal/repository"
	"github.com/opencert/certhub/internal/roles"

	"github.com/google/uuid"
)

// ErrForbidden is returned when the actor's role does not permit the action.
var ErrForbidden = errors.New("actor role does not permit this action")

// Service enforces the role hierarchy over team member administration.
type Service struct {
	members repository.MemberRepository
}

// NewService creates a team administration service.
func NewService(members repository.MemberRepository) *Service {
	return &Service{members: members}
}

// List returns the actor's organization members.
func (s *Service) List(ctx context.Context, actor domain.TeamMember) ([]domain.TeamMember, error) {
	return s.members.List(ctx, actor.OrganizationID)
}

// AddMember creates a member in the actor's organization. The actor must hold
// a team-managing role and may only assign roles below their own rank.
func (s *Service) AddMember(ctx context.Context, actor domain.TeamMember, name, email string, role domain.Role) (domain.TeamMember, error) {
	if !roles.Known(role) {
		return domain.TeamMember{}, fmt.Errorf("unknown role %q", role)
	}
	if !roles.CanManageTeam(actor.Role) || !roles.CanAssign(actor.Role, role) {
		return domain.TeamMember{}, ErrForbidden
	}

	member := domain.NewTeamMember(actor.OrganizationID, name, email, role)
	return s.members.Create(ctx, member)
}

// ChangeRole assigns a new role to a member. The actor must outrank both the
// member's current role and the new one.
func (s *Service) ChangeRole(ctx context.Context, actor domain.TeamMember, memberID uuid.UUID, newRole domain.Role) (domain.TeamMember, error) {
	if !roles.Known(newRole) {
		return domain.TeamMember{}, fmt.Errorf("unknown role %q", newRole)
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return domain.TeamMember{}, err
	}
	if member.OrganizationID != actor.OrganizationID {
		return domain.TeamMember{}, ErrForbidden
	}
	if !roles.CanManageTeam(actor.Role) || !roles.CanManage(actor.Role, member.Role) || !roles.CanAssign(actor.Role, newRole) {
		return domain.TeamMember{}, ErrForbidden
	}

	if err := s.members.UpdateRole(ctx, member.ID, newRole); err != nil {
		return domain.TeamMember{}, err
	}
	return member.WithRole(newRole), nil
}

// RemoveMember deletes a member from the actor's organization. The actor must
// hold a team-managing role and outrank the member.
func (s *Service) RemoveMember(ctx context.Context, actor domain.TeamMember, memberID uuid.UUID) error {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member.OrganizationID != actor.OrganizationID {
		return ErrForbidden
	}
	if !roles.CanManageTeam(actor.Role) || !roles.CanManage(actor.Role, member.Role) {
		return ErrForbidden
	}

	return s.members.Delete(ctx, member.ID)
}

// Promote advances a member along the static role progression.
func (s *Service) Promote(ctx context.Context, actor domain.TeamMember, memberID uuid.UUID) (domain.TeamMember, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return domain.TeamMember{}, err
	}

	next, ok := roles.Next(member.Role)
	if !ok {
		return domain.TeamMember{}, fmt.Errorf("role %q has no further progression", member.Role)
	}

	return s.ChangeRole(ctx, actor, memberID, next)
}
