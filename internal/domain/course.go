package domain

import (
	"time"

	"github.com/google/uuid"
)

// Course represents one scheduled training course a roster is uploaded against
type Course struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	Instructor     string    `json:"instructor"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCourse creates a new course with immutable pattern
func NewCourse(organizationID uuid.UUID, name, location, instructor string) Course {
	now := time.Now()
	return Course{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Name:           name,
		Location:       location,
		Instructor:     instructor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// WithInstructor returns a new course with updated instructor
func (c Course) WithInstructor(instructor string) Course {
	return Course{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Location:       c.Location,
		Instructor:     instructor,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      time.Now(),
	}
}
