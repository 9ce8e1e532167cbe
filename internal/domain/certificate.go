package domain

import (
	"time"

	"github.com/google/uuid"
)

// CertificateStatus tracks the lifecycle of an issued certificate.
type CertificateStatus string

const (
	CertificateActive  CertificateStatus = "active"
	CertificateExpired CertificateStatus = "expired"
	CertificateRevoked CertificateStatus = "revoked"
)

// Certificate is one issued certification record for a roster candidate.
type Certificate struct {
	ID             uuid.UUID         `json:"id"`
	OrganizationID uuid.UUID         `json:"organization_id"`
	CourseID       uuid.UUID         `json:"course_id"`
	Number         string            `json:"number"`
	StudentName    string            `json:"student_name"`
	Email          string            `json:"email"`
	FirstAidLevel  string            `json:"first_aid_level"`
	CPRLevel       string            `json:"cpr_level"`
	IssueDate      time.Time         `json:"issue_date"`
	ExpiryDate     time.Time         `json:"expiry_date"`
	Status         CertificateStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewCertificate creates a new active certificate with immutable pattern
func NewCertificate(organizationID, courseID uuid.UUID, number, studentName, email, firstAidLevel, cprLevel string, issueDate, expiryDate time.Time) Certificate {
	now := time.Now()
	return Certificate{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		CourseID:       courseID,
		Number:         number,
		StudentName:    studentName,
		Email:          email,
		FirstAidLevel:  firstAidLevel,
		CPRLevel:       cprLevel,
		IssueDate:      issueDate,
		ExpiryDate:     expiryDate,
		Status:         CertificateActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// WithStatus returns a new certificate with updated status
func (c Certificate) WithStatus(status CertificateStatus) Certificate {
	out := c
	out.Status = status
	out.UpdatedAt = time.Now()
	return out
}

// ExpiredAt reports whether the certificate has lapsed at the given instant.
// Revoked certificates are not considered expired; revocation wins.
func (c Certificate) ExpiredAt(at time.Time) bool {
	return c.Status != CertificateRevoked && at.After(c.ExpiryDate)
}
