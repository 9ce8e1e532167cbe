// Package certificates issues and manages certification records produced
// from validated roster batches.
package certificates

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/opencert/certhub/internal/domain"
	"github.com/opencert/certhub/internal/repository"

	"github.com/google/uuid"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// Service issues certificates from processed roster batches and serves
// certificate queries.
type Service struct {
	certRepo      repository.CertificateRepository
	validityYears int
	now           func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithValidityYears overrides the default certificate validity period.
func WithValidityYears(years int) Option {
	return func(s *Service) {
		if years > 0 {
			s.validityYears = years
		}
	}
}

// WithClock substitutes the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a certificate service. Certificates default to a
// three-year validity from their issue date.
func NewService(certRepo repository.CertificateRepository, opts ...Option) *Service {
	service := &Service{
		certRepo:      certRepo,
		validityYears: 3,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// IssueSummary reports the outcome of issuing one batch.
type IssueSummary struct {
	Issued   int      `json:"issued"`
	Skipped  int      `json:"skipped"`
	Failures []string `json:"failures,omitempty"`
}

// IssueFromBatch issues one certificate per batch entry that carries no
// validation errors and did not fail its assessment. Entries with an unknown
// assessment issue; FAIL skips. Per-entry persistence failures are collected,
// never fatal to the rest of the batch.
func (s *Service) IssueFromBatch(ctx context.Context, organizationID, courseID uuid.UUID, batch domain.ProcessedBatch) (IssueSummary, error) {
	summary := IssueSummary{}

	if organizationID == uuid.Nil {
		return summary, fmt.Errorf("organization id is required")
	}

	for _, entry := range batch.Entries {
		if entry.HasError || entry.AssessmentStatus == domain.AssessmentFail {
			summary.Skipped++
			continue
		}

		issueDate, err := s.resolveIssueDate(entry.IssueDate)
		if err != nil {
			summary.Skipped++
			summary.Failures = append(summary.Failures, fmt.Sprintf("Row %d: %v", entry.RowIndex+1, err))
			continue
		}

		expiryDate, err := s.resolveExpiryDate(entry.ExpiryDate, issueDate)
		if err != nil {
			summary.Skipped++
			summary.Failures = append(summary.Failures, fmt.Sprintf("Row %d: %v", entry.RowIndex+1, err))
			continue
		}

		cert := domain.NewCertificate(
			organizationID,
			courseID,
			certificateNumber(),
			entry.StudentName,
			entry.Email,
			entry.FirstAidLevel,
			entry.CPRLevel,
			issueDate,
			expiryDate,
		)

		if _, err := s.certRepo.Create(ctx, cert); err != nil {
			summary.Skipped++
			summary.Failures = append(summary.Failures, fmt.Sprintf("Row %d: failed to persist certificate: %v", entry.RowIndex+1, err))
			continue
		}

		summary.Issued++
	}

	return summary, nil
}

func (s *Service) resolveIssueDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return parseDate(raw)
}

func (s *Service) resolveExpiryDate(raw string, issueDate time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return issueDate.AddDate(s.validityYears, 0, 0), nil
	}
	return parseDate(raw)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", raw)
}

func certificateNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "FA-" + id[:12]
}

// List returns certificates for an organization, optionally scoped to one
// course.
func (s *Service) List(ctx context.Context, organizationID uuid.UUID, courseID *uuid.UUID, limit, offset int) ([]domain.Certificate, error) {
	if organizationID == uuid.Nil {
		return nil, fmt.Errorf("organization id is required")
	}
	return s.certRepo.List(ctx, organizationID, courseID, limit, offset)
}

// Revoke marks a certificate revoked and returns the updated record.
// Revocation is terminal and idempotent.
func (s *Service) Revoke(ctx context.Context, id uuid.UUID) (domain.Certificate, error) {
	if id == uuid.Nil {
		return domain.Certificate{}, fmt.Errorf("certificate id is required")
	}

	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("failed to load certificate: %w", err)
	}
	if cert.Status == domain.CertificateRevoked {
		return cert, nil
	}

	if err := s.certRepo.UpdateStatus(ctx, id, domain.CertificateRevoked); err != nil {
		return domain.Certificate{}, err
	}
	return cert.WithStatus(domain.CertificateRevoked), nil
}

// Verification is the outcome of checking one certificate number.
type Verification struct {
	Certificate domain.Certificate `json:"certificate"`
	Valid       bool               `json:"valid"`
}

// Verify looks a certificate up by number and reports whether it is currently
// valid: active and not past its expiry date.
func (s *Service) Verify(ctx context.Context, number string) (Verification, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Verification{}, fmt.Errorf("certificate number is required")
	}

	cert, err := s.certRepo.GetByNumber(ctx, number)
	if err != nil {
		return Verification{}, fmt.Errorf("failed to load certificate: %w", err)
	}

	valid := cert.Status == domain.CertificateActive && !cert.ExpiredAt(s.now())
	return Verification{Certificate: cert, Valid: valid}, nil
}

// Count returns the number of certificates issued by an organization.
func (s *Service) Count(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	if organizationID == uuid.Nil {
		return 0, fmt.Errorf("organization id is required")
	}
	return s.certRepo.Count(ctx, organizationID)
}

// SweepExpired marks an organization's lapsed active certificates expired
// and returns how many were updated.
func (s *Service) SweepExpired(ctx context.Context, organizationID uuid.UUID) (int, error) {
	if organizationID == uuid.Nil {
		return 0, fmt.Errorf("organization id is required")
	}

	now := s.now()
	swept := 0
	offset := 0
	for {
		page, err := s.certRepo.List(ctx, organizationID, nil, exportPageSize, offset)
		if err != nil {
			return swept, err
		}
		for _, cert := range page {
			if cert.Status != domain.CertificateActive || !cert.ExpiredAt(now) {
				continue
			}
			if err := s.certRepo.UpdateStatus(ctx, cert.ID, domain.CertificateExpired); err != nil {
				return swept, fmt.Errorf("failed to expire certificate %s: %w", cert.Number, err)
			}
			swept++
		}
		if len(page) < exportPageSize {
			break
		}
		offset += exportPageSize
	}
	return swept, nil
}

const exportPageSize = 500

// ExportCSV streams an organization's certificates as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, organizationID uuid.UUID) error {
	if organizationID == uuid.Nil {
		return fmt.Errorf("organization id is required")
	}

	writer := csv.NewWriter(w)
	header := []string{"Number", "Student Name", "Email", "First Aid Level", "CPR Level", "Issue Date", "Expiry Date", "Status"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	offset := 0
	for {
		page, err := s.certRepo.List(ctx, organizationID, nil, exportPageSize, offset)
		if err != nil {
			return err
		}
		for _, cert := range page {
			record := []string{
				cert.Number,
				cert.StudentName,
				cert.Email,
				cert.FirstAidLevel,
				cert.CPRLevel,
				cert.IssueDate.Format("2006-01-02"),
				cert.ExpiryDate.Format("2006-01-02"),
				string(cert.Status),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write csv record: %w", err)
			}
		}
		if len(page) < exportPageSize {
			break
		}
		offset += exportPageSize
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
