package certificates

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/opencert/certhub/internal/domain"
	"github.com/opencert/certhub/internal/repository"

	"github.com/google/uuid"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
}

func TestIssueFromBatchSkipsErrorsAndFailures(t *testing.T) {
	repo := &memCertRepo{}
	service := NewService(repo, WithClock(fixedClock))

	batch := domain.ProcessedBatch{
		Entries: []domain.RosterEntry{
			{RowIndex: 0, StudentName: "Jane Doe", Email: "jane@x.com", IssueDate: "2024-01-01", AssessmentStatus: domain.AssessmentPass},
			{RowIndex: 1, StudentName: "John Roe", Email: "john@x.com", AssessmentStatus: domain.AssessmentFail},
			{RowIndex: 2, HasError: true, Errors: []string{"Row 3: Student name is required"}},
			{RowIndex: 3, StudentName: "Ada Byrd", Email: "ada@x.com", IssueDate: "not-a-date"},
		},
		TotalCount: 4,
		ErrorCount: 1,
	}

	summary, err := service.IssueFromBatch(context.Background(), uuid.New(), uuid.New(), batch)
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	if summary.Issued != 1 {
		t.Fatalf("expected 1 issued, got %d", summary.Issued)
	}
	if summary.Skipped != 3 {
		t.Fatalf("expected 3 skipped, got %d", summary.Skipped)
	}
	if len(summary.Failures) != 1 || !strings.HasPrefix(summary.Failures[0], "Row 4:") {
		t.Fatalf("unexpected failures: %v", summary.Failures)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 certificate, got %d", len(repo.created))
	}
	cert := repo.created[0]
	if cert.StudentName != "Jane Doe" {
		t.Fatalf("unexpected holder: %q", cert.StudentName)
	}
	if !strings.HasPrefix(cert.Number, "FA-") || len(cert.Number) != 15 {
		t.Fatalf("unexpected certificate number: %q", cert.Number)
	}
	wantExpiry := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cert.ExpiryDate.Equal(wantExpiry) {
		t.Fatalf("expected expiry %v, got %v", wantExpiry, cert.ExpiryDate)
	}
}

func TestIssueFromBatchUnknownAssessmentIssues(t *testing.T) {
	repo := &memCertRepo{}
	service := NewService(repo, WithClock(fixedClock))

	batch := domain.ProcessedBatch{
		Entries:    []domain.RosterEntry{{RowIndex: 0, StudentName: "Jane Doe", Email: "jane@x.com"}},
		TotalCount: 1,
	}

	summary, err := service.IssueFromBatch(context.Background(), uuid.New(), uuid.New(), batch)
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	if summary.Issued != 1 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestIssueFromBatchDefaultsIssueDateToClock(t *testing.T) {
	repo := &memCertRepo{}
	service := NewService(repo, WithClock(fixedClock))

	batch := domain.ProcessedBatch{
		Entries:    []domain.RosterEntry{{RowIndex: 0, StudentName: "Jane Doe", Email: "jane@x.com"}},
		TotalCount: 1,
	}

	if _, err := service.IssueFromBatch(context.Background(), uuid.New(), uuid.New(), batch); err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	wantIssue := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !repo.created[0].IssueDate.Equal(wantIssue) {
		t.Fatalf("expected issue date %v, got %v", wantIssue, repo.created[0].IssueDate)
	}
	if !repo.created[0].ExpiryDate.Equal(wantIssue.AddDate(3, 0, 0)) {
		t.Fatalf("unexpected expiry: %v", repo.created[0].ExpiryDate)
	}
}

func TestIssueFromBatchValidityOverride(t *testing.T) {
	repo := &memCertRepo{}
	service := NewService(repo, WithClock(fixedClock), WithValidityYears(1))

	batch := domain.ProcessedBatch{
		Entries:    []domain.RosterEntry{{RowIndex: 0, StudentName: "Jane Doe", Email: "jane@x.com", IssueDate: "2024-01-01"}},
		TotalCount: 1,
	}

	if _, err := service.IssueFromBatch(context.Background(), uuid.New(), uuid.New(), batch); err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !repo.created[0].ExpiryDate.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, repo.created[0].ExpiryDate)
	}
}

func TestIssueFromBatchPersistFailureIsNotFatal(t *testing.T) {
	repo := &memCertRepo{failCreate: true}
	service := NewService(repo, WithClock(fixedClock))

	batch := domain.ProcessedBatch{
		Entries: []domain.RosterEntry{
			{RowIndex: 0, StudentName: "Jane Doe", Email: "jane@x.com", IssueDate: "2024-01-01"},
		},
		TotalCount: 1,
	}

	summary, err := service.IssueFromBatch(context.Background(), uuid.New(), uuid.New(), batch)
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	if summary.Issued != 0 || summary.Skipped != 1 || len(summary.Failures) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestExportCSV(t *testing.T) {
	orgID := uuid.New()
	repo := &memCertRepo{}
	repo.created = append(repo.created, domain.NewCertificate(
		orgID, uuid.New(), "FA-ABC123DEF456", "Jane Doe", "jane@x.com",
		"Standard First Aid", "CPR C",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	))

	service := NewService(repo)

	var buf strings.Builder
	if err := service.ExportCSV(context.Background(), &buf, orgID); err != nil {
		t.Fatalf("export returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 record, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Number,Student Name") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "FA-ABC123DEF456") || !strings.Contains(lines[1], "2027-01-01") {
		t.Fatalf("unexpected record: %q", lines[1])
	}
}

func TestRevokeRequiresID(t *testing.T) {
	service := NewService(&memCertRepo{})
	if _, err := service.Revoke(context.Background(), uuid.Nil); err == nil {
		t.Fatalf("expected error for nil certificate id")
	}
}

func TestRevokeIsTerminalAndIdempotent(t *testing.T) {
	repo := &memCertRepo{}
	cert := domain.NewCertificate(
		uuid.New(), uuid.New(), "FA-AAA111BBB222", "Jane Doe", "jane@x.com",
		"Standard First Aid", "CPR C",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	repo.created = append(repo.created, cert)

	service := NewService(repo)

	revoked, err := service.Revoke(context.Background(), cert.ID)
	if err != nil {
		t.Fatalf("revoke returned error: %v", err)
	}
	if revoked.Status != domain.CertificateRevoked {
		t.Fatalf("expected revoked status, got %q", revoked.Status)
	}
	if repo.statuses[cert.ID] != domain.CertificateRevoked {
		t.Fatalf("revocation not persisted")
	}

	// A second revoke is a no-op, not an error.
	repo.created[0] = revoked
	again, err := service.Revoke(context.Background(), cert.ID)
	if err != nil {
		t.Fatalf("second revoke returned error: %v", err)
	}
	if again.Status != domain.CertificateRevoked {
		t.Fatalf("expected revoked status, got %q", again.Status)
	}
}

func TestVerifyReportsValidity(t *testing.T) {
	repo := &memCertRepo{}
	cert := domain.NewCertificate(
		uuid.New(), uuid.New(), "FA-CCC333DDD444", "Jane Doe", "jane@x.com",
		"Standard First Aid", "CPR C",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	repo.created = append(repo.created, cert)

	service := NewService(repo, WithClock(fixedClock))

	verification, err := service.Verify(context.Background(), " FA-CCC333DDD444 ")
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	if !verification.Valid {
		t.Fatalf("expected certificate to verify as valid")
	}

	// Past expiry the same certificate no longer verifies.
	expired := NewService(repo, WithClock(func() time.Time {
		return time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	verification, err = expired.Verify(context.Background(), "FA-CCC333DDD444")
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	if verification.Valid {
		t.Fatalf("expected lapsed certificate to verify as invalid")
	}

	if _, err := service.Verify(context.Background(), "FA-UNKNOWN00000"); err == nil {
		t.Fatalf("expected error for unknown number")
	}
	if _, err := service.Verify(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank number")
	}
}

func TestSweepExpired(t *testing.T) {
	orgID := uuid.New()
	repo := &memCertRepo{}

	lapsed := domain.NewCertificate(
		orgID, uuid.New(), "FA-EEE555FFF666", "Jane Doe", "jane@x.com",
		"Standard First Aid", "CPR C",
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	current := domain.NewCertificate(
		orgID, uuid.New(), "FA-GGG777HHH888", "John Roe", "john@x.com",
		"Standard First Aid", "CPR C",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	repo.created = append(repo.created, lapsed, current)

	service := NewService(repo, WithClock(fixedClock))

	swept, err := service.SweepExpired(context.Background(), orgID)
	if err != nil {
		t.Fatalf("sweep returned error: %v", err)
	}
	if swept != 1 {
		t.Fatalf("expected 1 swept certificate, got %d", swept)
	}
	if repo.statuses[lapsed.ID] != domain.CertificateExpired {
		t.Fatalf("lapsed certificate not marked expired")
	}
	if _, touched := repo.statuses[current.ID]; touched {
		t.Fatalf("current certificate must not be touched")
	}
}

func TestCountRequiresOrganization(t *testing.T) {
	service := NewService(&memCertRepo{})
	if _, err := service.Count(context.Background(), uuid.Nil); err == nil {
		t.Fatalf("expected error for nil organization id")
	}

	repo := &memCertRepo{created: []domain.Certificate{{}, {}}}
	service = NewService(repo)
	total, err := service.Count(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("count returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2, got %d", total)
	}
}

type memCertRepo struct {
	created    []domain.Certificate
	failCreate bool
	statuses   map[uuid.UUID]domain.CertificateStatus
}

func (r *memCertRepo) Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error) {
	if r.failCreate {
		return domain.Certificate{}, errors.New("insert failed")
	}
	r.created = append(r.created, cert)
	return cert, nil
}

func (r *memCertRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Certificate, error) {
	for _, cert := range r.created {
		if cert.ID == id {
			return cert, nil
		}
	}
	return domain.Certificate{}, errors.New("not found")
}

func (r *memCertRepo) GetByNumber(ctx context.Context, number string) (domain.Certificate, error) {
	for _, cert := range r.created {
		if cert.Number == number {
			return cert, nil
		}
	}
	return domain.Certificate{}, errors.New("not found")
}

func (r *memCertRepo) List(ctx context.Context, organizationID uuid.UUID, courseID *uuid.UUID, limit, offset int) ([]domain.Certificate, error) {
	var out []domain.Certificate
	for _, cert := range r.created {
		if cert.OrganizationID != organizationID {
			continue
		}
		out = append(out, cert)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memCertRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CertificateStatus) error {
	if r.statuses == nil {
		r.statuses = make(map[uuid.UUID]domain.CertificateStatus)
	}
	r.statuses[id] = status
	return nil
}

func (r *memCertRepo) Count(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	return int64(len(r.created)), nil
}

var _ repository.CertificateRepository = (*memCertRepo)(nil)
