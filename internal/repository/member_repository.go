package repository

import (
	"context"
	"fmt"

	"github.com/opencert/certhub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// memberRepository implements MemberRepository backed by pgxpool
type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new team member repository
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

const memberColumns = `id, organization_id, name, email, role, created_at, updated_at`

func scanMember(row pgx.Row) (domain.TeamMember, error) {
	var member domain.TeamMember
	err := row.Scan(
		&member.ID,
		&member.OrganizationID,
		&member.Name,
		&member.Email,
		&member.Role,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	return member, err
}

// Create creates a new team member
func (r *memberRepository) Create(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO team_members (id, organization_id, name, email, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+memberColumns,
		member.ID, member.OrganizationID, member.Name, member.Email, member.Role, member.CreatedAt, member.UpdatedAt,
	)

	created, err := scanMember(row)
	if err != nil {
		return domain.TeamMember{}, fmt.Errorf("failed to create team member: %w", err)
	}
	return created, nil
}

// GetByID retrieves a team member by ID
func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.TeamMember, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+memberColumns+` FROM team_members WHERE id = $1`,
		id,
	)

	member, err := scanMember(row)
	if err != nil {
		return domain.TeamMember{}, fmt.Errorf("failed to get team member: %w", err)
	}
	return member, nil
}

// GetByEmail retrieves a team member by email within an organization
func (r *memberRepository) GetByEmail(ctx context.Context, organizationID uuid.UUID, email string) (domain.TeamMember, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+memberColumns+` FROM team_members WHERE organization_id = $1 AND email = $2`,
		organizationID, email,
	)

	member, err := scanMember(row)
	if err != nil {
		return domain.TeamMember{}, fmt.Errorf("failed to get team member by email: %w", err)
	}
	return member, nil
}

// List retrieves all team members of an organization
func (r *memberRepository) List(ctx context.Context, organizationID uuid.UUID) ([]domain.TeamMember, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+memberColumns+` FROM team_members WHERE organization_id = $1 ORDER BY name`,
		organizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := []domain.TeamMember{}
	for rows.Next() {
		member, scanErr := scanMember(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", scanErr)
		}
		members = append(members, member)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", rowsErr)
	}

	return members, nil
}

// UpdateRole changes a team member's role
func (r *memberRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE team_members SET role = $2, updated_at = NOW() WHERE id = $1`,
		id, role,
	)
	if err != nil {
		return fmt.Errorf("failed to update team member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("team member %s not found", id)
	}
	return nil
}

// Delete removes a team member
func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	return nil
}
