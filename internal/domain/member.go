package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a team member's role within an organization. The rank ordering and
// progression rules over these values live in internal/roles.
type Role string

const (
	RoleStudent           Role = "student"
	RoleInstructor        Role = "instructor"
	RoleInstructorTrainer Role = "instructor_trainer"
	RoleProviderAdmin     Role = "provider_admin"
	RoleSystemAdmin       Role = "system_admin"
)

// TeamMember is one person attached to an organization with a role.
type TeamMember struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewTeamMember creates a new team member with immutable pattern
func NewTeamMember(organizationID uuid.UUID, name, email string, role Role) TeamMember {
	now := time.Now()
	return TeamMember{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Name:           name,
		Email:          email,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// WithRole returns a new team member with updated role
func (m TeamMember) WithRole(role Role) TeamMember {
	out := m
	out.Role = role
	out.UpdatedAt = time.Now()
	return out
}
