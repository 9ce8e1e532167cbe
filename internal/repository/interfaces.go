package repository

import (
	"context"

	"github.com/opencert/certhub/internal/domain"

	"github.com/google/uuid"
)

// OrganizationRepository defines the interface for organization operations
type OrganizationRepository interface {
	Create(ctx context.Context, org domain.Organization) (domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error)
	GetByName(ctx context.Context, name string) (domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org domain.Organization) (domain.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CourseRepository defines the interface for course catalog operations
type CourseRepository interface {
	Create(ctx context.Context, course domain.Course) (domain.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Course, error)
	List(ctx context.Context, organizationID uuid.UUID) ([]domain.Course, error)
	Update(ctx context.Context, course domain.Course) (domain.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CertificateRepository defines the interface for issued certificates
type CertificateRepository interface {
	Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Certificate, error)
	GetByNumber(ctx context.Context, number string) (domain.Certificate, error)
	List(ctx context.Context, organizationID uuid.UUID, courseID *uuid.UUID, limit, offset int) ([]domain.Certificate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CertificateStatus) error
	Count(ctx context.Context, organizationID uuid.UUID) (int64, error)
}

// MemberRepository defines the interface for team member administration
type MemberRepository interface {
	Create(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TeamMember, error)
	GetByEmail(ctx context.Context, organizationID uuid.UUID, email string) (domain.TeamMember, error)
	List(ctx context.Context, organizationID uuid.UUID) ([]domain.TeamMember, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UploadLogRepository stores roster upload row errors for observability.
// An upload's errors are recorded as one batch.
type UploadLogRepository interface {
	RecordBatch(ctx context.Context, entries []domain.UploadLogEntry) error
	List(ctx context.Context, organizationID uuid.UUID, courseID uuid.UUID, limit int, offset int) ([]domain.UploadLogEntry, error)
}
