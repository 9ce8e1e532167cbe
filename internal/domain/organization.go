package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a training provider tenant in the system
type Organization struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewOrganization creates a new organization with immutable pattern
func NewOrganization(name, contactEmail, description string) Organization {
	now := time.Now()
	return Organization{
		ID:           uuid.New(),
		Name:         name,
		ContactEmail: contactEmail,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// WithContactEmail returns a new organization with updated contact email
func (o Organization) WithContactEmail(contactEmail string) Organization {
	return Organization{
		ID:           o.ID,
		Name:         o.Name,
		ContactEmail: contactEmail,
		Description:  o.Description,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    time.Now(),
	}
}

// WithName returns a new organization with updated name
func (o Organization) WithName(name string) Organization {
	return Organization{
		ID:           o.ID,
		Name:         name,
		ContactEmail: o.ContactEmail,
		Description:  o.Description,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    time.Now(),
	}
}
