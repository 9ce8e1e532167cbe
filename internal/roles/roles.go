// Package roles holds the static role hierarchy used for permission checks
// and role progression across the application.
package roles

import "github.com/opencert/certhub/internal/domain"

// rank orders roles from least to most privileged. Permission checks compare
// ranks; they never compare role strings directly.
var rank = map[domain.Role]int{
	domain.RoleStudent:           0,
	domain.RoleInstructor:        1,
	domain.RoleInstructorTrainer: 2,
	domain.RoleProviderAdmin:     3,
	domain.RoleSystemAdmin:       4,
}

// progression is the forward path a member can be promoted along. Admin roles
// are assigned, never reached by progression.
var progression = map[domain.Role]domain.Role{
	domain.RoleStudent:    domain.RoleInstructor,
	domain.RoleInstructor: domain.RoleInstructorTrainer,
}

// Known reports whether the role is part of the hierarchy.
func Known(role domain.Role) bool {
	_, ok := rank[role]
	return ok
}

// Rank returns the privilege rank for a role; unknown roles rank below student.
func Rank(role domain.Role) int {
	if r, ok := rank[role]; ok {
		return r
	}
	return -1
}

// Next returns the role a member progresses to from the given role. The second
// return is false when the role is terminal or unknown.
func Next(role domain.Role) (domain.Role, bool) {
	next, ok := progression[role]
	return next, ok
}

// CanManage reports whether an actor may administer a member holding the
// target role. Actors only manage roles strictly below their own.
func CanManage(actor, target domain.Role) bool {
	return Known(actor) && Known(target) && Rank(actor) > Rank(target)
}

// CanAssign reports whether an actor may grant the given role to someone else.
func CanAssign(actor, newRole domain.Role) bool {
	return Known(actor) && Known(newRole) && Rank(actor) > Rank(newRole)
}

// CanIssueCertificates reports whether the role may submit rosters for
// certificate issuance.
func CanIssueCertificates(role domain.Role) bool {
	return Rank(role) >= Rank(domain.RoleInstructor)
}

// CanUploadRosters reports whether the role may upload and preview rosters.
func CanUploadRosters(role domain.Role) bool {
	return Rank(role) >= Rank(domain.RoleInstructor)
}

// CanManageTeam reports whether the role may add members or change roles.
func CanManageTeam(role domain.Role) bool {
	return Rank(role) >= Rank(domain.RoleProviderAdmin)
}
