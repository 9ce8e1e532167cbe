package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/opencert/certhub/internal/auth"
	"github.com/opencert/certhub/internal/certificates"
	"github.com/opencert/certhub/internal/domain"
	"github.com/opencert/certhub/internal/notify"
	"github.com/opencert/certhub/internal/repository"
	"github.com/opencert/certhub/internal/roles"

	"github.com/google/uuid"
)

// ErrForbidden is returned when the acting member's role does not permit the
// operation.
var ErrForbidden = errors.New("actor role does not permit this action")

// Service runs the roster pipeline over uploaded files and hands validated
// batches downstream for certificate issuance.
type Service struct {
	orgRepo      repository.OrganizationRepository
	courseRepo   repository.CourseRepository
	logRepo      repository.UploadLogRepository
	issuer       *certificates.Service
	notifier     notify.Sender
	strictStatus bool
	now          func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithStrictStatus makes unrecognized pass/fail text a row error instead of a
// warning.
func WithStrictStatus(strict bool) Option {
	return func(s *Service) {
		s.strictStatus = strict
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

// NewService creates a roster upload service.
func NewService(
	orgRepo repository.OrganizationRepository,
	courseRepo repository.CourseRepository,
	logRepo repository.UploadLogRepository,
	issuer *certificates.Service,
	notifier notify.Sender,
	opts ...Option,
) *Service {
	service := &Service{
		orgRepo:    orgRepo,
		courseRepo: courseRepo,
		logRepo:    logRepo,
		issuer:     issuer,
		notifier:   notifier,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// UploadRequest describes one uploaded roster file.
type UploadRequest struct {
	OrganizationID uuid.UUID
	CourseID       uuid.UUID
	IssueDate      string
	FileName       string
	Data           io.Reader
}

// SubmitResult returns the processed batch alongside issuance counts.
type SubmitResult struct {
	Batch   domain.ProcessedBatch `json:"batch"`
	Issued  int                   `json:"issued"`
	Skipped int                   `json:"skipped"`
}

// Preview decodes the file and runs the pipeline without persisting anything.
func (s *Service) Preview(ctx context.Context, req UploadRequest) (domain.ProcessedBatch, error) {
	if err := auth.EnforceOrganizationScope(ctx, req.OrganizationID); err != nil {
		return domain.ProcessedBatch{}, err
	}
	if role, ok := auth.RoleFromContext(ctx); ok && !roles.CanUploadRosters(role) {
		return domain.ProcessedBatch{}, ErrForbidden
	}

	rows, err := s.decode(req)
	if err != nil {
		return domain.ProcessedBatch{}, err
	}

	return Process(rows, s.pipelineOptions(req)), nil
}

// Submit decodes the file, runs the pipeline, records row errors to the
// upload log, issues certificates for clean passing entries, and notifies the
// organization contact. Notification failures are logged, never fatal.
func (s *Service) Submit(ctx context.Context, req UploadRequest) (SubmitResult, error) {
	if err := auth.EnforceOrganizationScope(ctx, req.OrganizationID); err != nil {
		return SubmitResult{}, err
	}
	if role, ok := auth.RoleFromContext(ctx); ok && !roles.CanIssueCertificates(role) {
		return SubmitResult{}, ErrForbidden
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to load course: %w", err)
	}
	if course.OrganizationID != req.OrganizationID {
		return SubmitResult{}, errors.New("course does not belong to organization")
	}

	rows, err := s.decode(req)
	if err != nil {
		return SubmitResult{}, err
	}

	batch := Process(rows, s.pipelineOptions(req))

	summary, err := s.issuer.IssueFromBatch(ctx, req.OrganizationID, req.CourseID, batch)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to issue certificates: %w", err)
	}

	s.logBatchErrors(ctx, req, batch, summary.Failures)

	s.notifySummary(ctx, req, course, batch, summary)

	return SubmitResult{
		Batch:   batch,
		Issued:  summary.Issued,
		Skipped: summary.Skipped,
	}, nil
}

// Logs lists recorded upload errors for an organization's course.
func (s *Service) Logs(ctx context.Context, organizationID, courseID uuid.UUID, limit, offset int) ([]domain.UploadLogEntry, error) {
	if err := auth.EnforceOrganizationScope(ctx, organizationID); err != nil {
		return nil, err
	}
	if role, ok := auth.RoleFromContext(ctx); ok && !roles.CanUploadRosters(role) {
		return nil, ErrForbidden
	}
	return s.logRepo.List(ctx, organizationID, courseID, limit, offset)
}

func (s *Service) decode(req UploadRequest) ([]Row, error) {
	if req.Data == nil {
		return nil, errors.New("data reader is required")
	}

	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return nil, errors.New("file is empty")
	}

	return ParseFile(req.FileName, payload)
}

func (s *Service) pipelineOptions(req UploadRequest) Options {
	issueDate := strings.TrimSpace(req.IssueDate)
	if issueDate == "" {
		issueDate = s.now().Format("2006-01-02")
	}
	return Options{
		DefaultCourseID:  req.CourseID.String(),
		DefaultIssueDate: issueDate,
		StrictStatus:     s.strictStatus,
	}
}

func (s *Service) notifySummary(ctx context.Context, req UploadRequest, course domain.Course, batch domain.ProcessedBatch, summary certificates.IssueSummary) {
	if s.notifier == nil {
		return
	}

	org, err := s.orgRepo.GetByID(ctx, req.OrganizationID)
	if err != nil {
		log.Printf("[ROSTER] failed to load organization for notification: %v", err)
		return
	}
	if strings.TrimSpace(org.ContactEmail) == "" {
		return
	}

	msg := notify.Message{
		To:      []string{org.ContactEmail},
		Subject: fmt.Sprintf("Roster processed for %s", course.Name),
		HTML: fmt.Sprintf(
			"<p>Roster %s was processed: %d rows, %d with errors, %d certificates issued, %d skipped.</p>",
			req.FileName, batch.TotalCount, batch.ErrorCount, summary.Issued, summary.Skipped,
		),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		log.Printf("[ROSTER] failed to send notification: %v", err)
	}
}

// logBatchErrors records every row error and issuance failure from one upload
// as a single transactional batch. Log failures are never fatal to the upload.
func (s *Service) logBatchErrors(ctx context.Context, req UploadRequest, batch domain.ProcessedBatch, failures []string) {
	if s.logRepo == nil {
		return
	}

	var entries []domain.UploadLogEntry
	for _, entry := range batch.Entries {
		for _, message := range entry.Errors {
			rowNumber := entry.RowIndex + 1
			entries = append(entries, domain.UploadLogEntry{
				OrganizationID: req.OrganizationID,
				CourseID:       req.CourseID,
				FileName:       req.FileName,
				RowNumber:      &rowNumber,
				Message:        message,
			})
		}
	}
	for _, failure := range failures {
		entries = append(entries, domain.UploadLogEntry{
			OrganizationID: req.OrganizationID,
			CourseID:       req.CourseID,
			FileName:       req.FileName,
			Message:        failure,
		})
	}

	if len(entries) == 0 {
		return
	}
	if err := s.logRepo.RecordBatch(ctx, entries); err != nil {
		log.Printf("[ROSTER] failed to record upload logs: %v", err)
	}
}
