package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/opencert/certhub/internal/auth"
	"github.com/opencert/certhub/internal/domain"
	"github.com/opencert/certhub/internal/repository"

	"github.com/google/uuid"
)

func TestCreateOrganization(t *testing.T) {
	service := NewService(newMemOrgRepo(), newMemCourseRepo())

	org, err := service.CreateOrganization(context.Background(), "  Acme Safety ", "ops@acme.test", "First aid training")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if org.Name != "Acme Safety" {
		t.Fatalf("expected trimmed name, got %q", org.Name)
	}
	if org.ID == uuid.Nil {
		t.Fatalf("expected an assigned id")
	}

	if _, err := service.CreateOrganization(context.Background(), "Acme Safety", "", ""); err == nil {
		t.Fatalf("expected duplicate name to be rejected")
	}
	if _, err := service.CreateOrganization(context.Background(), "   ", "", ""); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}

func TestUpdateOrganizationLeavesEmptyFieldsUntouched(t *testing.T) {
	orgs := newMemOrgRepo()
	service := NewService(orgs, newMemCourseRepo())

	org, err := service.CreateOrganization(context.Background(), "Acme Safety", "ops@acme.test", "")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	updated, err := service.UpdateOrganization(context.Background(), org.ID, "Acme Training", "")
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.Name != "Acme Training" {
		t.Fatalf("expected renamed organization, got %q", updated.Name)
	}
	if updated.ContactEmail != "ops@acme.test" {
		t.Fatalf("contact email must be untouched, got %q", updated.ContactEmail)
	}

	updated, err = service.UpdateOrganization(context.Background(), org.ID, "", "help@acme.test")
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.Name != "Acme Training" || updated.ContactEmail != "help@acme.test" {
		t.Fatalf("unexpected organization after contact change: %+v", updated)
	}
}

func TestDeleteOrganization(t *testing.T) {
	orgs := newMemOrgRepo()
	service := NewService(orgs, newMemCourseRepo())

	org, err := service.CreateOrganization(context.Background(), "Acme Safety", "", "")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if err := service.DeleteOrganization(context.Background(), org.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	remaining, err := service.ListOrganizations(context.Background())
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no organizations, got %d", len(remaining))
	}

	if err := service.DeleteOrganization(context.Background(), uuid.Nil); err == nil {
		t.Fatalf("expected error for nil id")
	}
}

func TestCreateCourseRequiresOrganization(t *testing.T) {
	orgs := newMemOrgRepo()
	service := NewService(orgs, newMemCourseRepo())

	if _, err := service.CreateCourse(context.Background(), uuid.New(), "Standard First Aid", "Ottawa", "Ivy"); err == nil {
		t.Fatalf("expected unknown organization to be rejected")
	}

	org, err := service.CreateOrganization(context.Background(), "Acme Safety", "", "")
	if err != nil {
		t.Fatalf("create org returned error: %v", err)
	}

	course, err := service.CreateCourse(context.Background(), org.ID, "Standard First Aid", "Ottawa", "Ivy")
	if err != nil {
		t.Fatalf("create course returned error: %v", err)
	}
	if course.OrganizationID != org.ID || course.Instructor != "Ivy" {
		t.Fatalf("unexpected course: %+v", course)
	}

	if _, err := service.CreateCourse(context.Background(), org.ID, "  ", "", ""); err == nil {
		t.Fatalf("expected blank course name to be rejected")
	}
}

func TestCreateCourseEnforcesScope(t *testing.T) {
	orgs := newMemOrgRepo()
	service := NewService(orgs, newMemCourseRepo())

	org, err := service.CreateOrganization(context.Background(), "Acme Safety", "", "")
	if err != nil {
		t.Fatalf("create org returned error: %v", err)
	}

	foreign := auth.ContextWithOrganizationID(context.Background(), uuid.New())
	if _, err := service.CreateCourse(foreign, org.ID, "Standard First Aid", "", ""); err == nil {
		t.Fatalf("expected scope mismatch to be rejected")
	}
}

func TestReassignInstructor(t *testing.T) {
	orgs := newMemOrgRepo()
	service := NewService(orgs, newMemCourseRepo())

	org, err := service.CreateOrganization(context.Background(), "Acme Safety", "", "")
	if err != nil {
		t.Fatalf("create org returned error: %v", err)
	}
	course, err := service.CreateCourse(context.Background(), org.ID, "Standard First Aid", "Ottawa", "Ivy")
	if err != nil {
		t.Fatalf("create course returned error: %v", err)
	}

	updated, err := service.ReassignInstructor(context.Background(), course.ID, "Tia")
	if err != nil {
		t.Fatalf("reassign returned error: %v", err)
	}
	if updated.Instructor != "Tia" {
		t.Fatalf("expected reassigned instructor, got %q", updated.Instructor)
	}

	listed, err := service.ListCourses(context.Background(), org.ID)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].Instructor != "Tia" {
		t.Fatalf("reassignment not persisted: %+v", listed)
	}
}

func TestDeleteCourse(t *testing.T) {
	orgs := newMemOrgRepo()
	service := NewService(orgs, newMemCourseRepo())

	org, err := service.CreateOrganization(context.Background(), "Acme Safety", "", "")
	if err != nil {
		t.Fatalf("create org returned error: %v", err)
	}
	course, err := service.CreateCourse(context.Background(), org.ID, "Standard First Aid", "", "")
	if err != nil {
		t.Fatalf("create course returned error: %v", err)
	}

	if err := service.DeleteCourse(context.Background(), course.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	listed, err := service.ListCourses(context.Background(), org.ID)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty catalog, got %d courses", len(listed))
	}
}

type memOrgRepo struct {
	orgs map[uuid.UUID]domain.Organization
}

func newMemOrgRepo() *memOrgRepo {
	return &memOrgRepo{orgs: make(map[uuid.UUID]domain.Organization)}
}

func (r *memOrgRepo) Create(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	r.orgs[org.ID] = org
	return org, nil
}

func (r *memOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return domain.Organization{}, errors.New("organization not found")
	}
	return org, nil
}

func (r *memOrgRepo) GetByName(ctx context.Context, name string) (domain.Organization, error) {
	for _, org := range r.orgs {
		if org.Name == name {
			return org, nil
		}
	}
	return domain.Organization{}, errors.New("organization not found")
}

func (r *memOrgRepo) List(ctx context.Context) ([]domain.Organization, error) {
	out := []domain.Organization{}
	for _, org := range r.orgs {
		out = append(out, org)
	}
	return out, nil
}

func (r *memOrgRepo) Update(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	if _, ok := r.orgs[org.ID]; !ok {
		return domain.Organization{}, errors.New("organization not found")
	}
	r.orgs[org.ID] = org
	return org, nil
}

func (r *memOrgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.orgs, id)
	return nil
}

type memCourseRepo struct {
	courses map[uuid.UUID]domain.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: make(map[uuid.UUID]domain.Course)}
}

func (r *memCourseRepo) Create(ctx context.Context, course domain.Course) (domain.Course, error) {
	r.courses[course.ID] = course
	return course, nil
}

func (r *memCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return domain.Course{}, errors.New("course not found")
	}
	return course, nil
}

func (r *memCourseRepo) List(ctx context.Context, organizationID uuid.UUID) ([]domain.Course, error) {
	out := []domain.Course{}
	for _, course := range r.courses {
		if course.OrganizationID == organizationID {
			out = append(out, course)
		}
	}
	return out, nil
}

func (r *memCourseRepo) Update(ctx context.Context, course domain.Course) (domain.Course, error) {
	if _, ok := r.courses[course.ID]; !ok {
		return domain.Course{}, errors.New("course not found")
	}
	r.courses[course.ID] = course
	return course, nil
}

func (r *memCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.courses, id)
	return nil
}

var _ repository.OrganizationRepository = (*memOrgRepo)(nil)
var _ repository.CourseRepository = (*memCourseRepo)(nil)
