// Package catalog administers the organization tenants and their course
// catalog that roster uploads are recorded against.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/opencert/certhub/internal/auth"
	"github.com/opencert/certhub/internal/domain"
	"github.com/opencert/certhub/internal/repository"

	"github.com/google/uuid"
)

// Service manages organizations and courses.
type Service struct {
	orgs    repository.OrganizationRepository
	courses repository.CourseRepository
}

// NewService creates a catalog administration service.
func NewService(orgs repository.OrganizationRepository, courses repository.CourseRepository) *Service {
	return &Service{orgs: orgs, courses: courses}
}

// CreateOrganization registers a new tenant. Names are unique.
func (s *Service) CreateOrganization(ctx context.Context, name, contactEmail, description string) (domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Organization{}, fmt.Errorf("organization name is required")
	}

	if existing, err := s.orgs.GetByName(ctx, name); err == nil {
		return domain.Organization{}, fmt.Errorf("organization %q already exists", existing.Name)
	}

	org := domain.NewOrganization(name, strings.TrimSpace(contactEmail), strings.TrimSpace(description))
	return s.orgs.Create(ctx, org)
}

// UpdateOrganization renames an organization or changes its contact email.
// Empty fields are left untouched.
func (s *Service) UpdateOrganization(ctx context.Context, id uuid.UUID, name, contactEmail string) (domain.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("failed to load organization: %w", err)
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		org = org.WithName(trimmed)
	}
	if trimmed := strings.TrimSpace(contactEmail); trimmed != "" {
		org = org.WithContactEmail(trimmed)
	}

	return s.orgs.Update(ctx, org)
}

// ListOrganizations returns every registered tenant.
func (s *Service) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return s.orgs.List(ctx)
}

// DeleteOrganization removes a tenant and, through the schema's cascading
// foreign keys, everything recorded under it.
func (s *Service) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("organization id is required")
	}
	return s.orgs.Delete(ctx, id)
}

// CreateCourse adds a course to an organization's catalog.
func (s *Service) CreateCourse(ctx context.Context, organizationID uuid.UUID, name, location, instructor string) (domain.Course, error) {
	if err := auth.EnforceOrganizationScope(ctx, organizationID); err != nil {
		return domain.Course{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Course{}, fmt.Errorf("course name is required")
	}

	if _, err := s.orgs.GetByID(ctx, organizationID); err != nil {
		return domain.Course{}, fmt.Errorf("failed to load organization: %w", err)
	}

	course := domain.NewCourse(organizationID, name, strings.TrimSpace(location), strings.TrimSpace(instructor))
	return s.courses.Create(ctx, course)
}

// ReassignInstructor updates who teaches a course.
func (s *Service) ReassignInstructor(ctx context.Context, courseID uuid.UUID, instructor string) (domain.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return domain.Course{}, fmt.Errorf("failed to load course: %w", err)
	}
	if err := auth.EnforceOrganizationScope(ctx, course.OrganizationID); err != nil {
		return domain.Course{}, err
	}

	return s.courses.Update(ctx, course.WithInstructor(strings.TrimSpace(instructor)))
}

// ListCourses returns an organization's course catalog.
func (s *Service) ListCourses(ctx context.Context, organizationID uuid.UUID) ([]domain.Course, error) {
	if err := auth.EnforceOrganizationScope(ctx, organizationID); err != nil {
		return nil, err
	}
	return s.courses.List(ctx, organizationID)
}

// DeleteCourse removes a course from the catalog.
func (s *Service) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to load course: %w", err)
	}
	if err := auth.EnforceOrganizationScope(ctx, course.OrganizationID); err != nil {
		return err
	}

	return s.courses.Delete(ctx, course.ID)
}
