package repository

import (
	"context"
	"fmt"

	"github.com/opencert/certhub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// certificateRepository implements CertificateRepository backed by pgxpool
type certificateRepository struct {
	pool *pgxpool.Pool
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(pool *pgxpool.Pool) CertificateRepository {
	return &certificateRepository{pool: pool}
}

const certificateColumns = `id, organization_id, course_id, number, student_name, email,
	first_aid_level, cpr_level, issue_date, expiry_date, status, created_at, updated_at`

func scanCertificate(row pgx.Row) (domain.Certificate, error) {
	var cert domain.Certificate
	err := row.Scan(
		&cert.ID,
		&cert.OrganizationID,
		&cert.CourseID,
		&cert.Number,
		&cert.StudentName,
		&cert.Email,
		&cert.FirstAidLevel,
		&cert.CPRLevel,
		&cert.IssueDate,
		&cert.ExpiryDate,
		&cert.Status,
		&cert.CreatedAt,
		&cert.UpdatedAt,
	)
	return cert, err
}

// Create persists a newly issued certificate
func (r *certificateRepository) Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO certificates (id, organization_id, course_id, number, student_name, email,
		     first_aid_level, cpr_level, issue_date, expiry_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+certificateColumns,
		cert.ID, cert.OrganizationID, cert.CourseID, cert.Number, cert.StudentName, cert.Email,
		cert.FirstAidLevel, cert.CPRLevel, cert.IssueDate, cert.ExpiryDate, cert.Status,
		cert.CreatedAt, cert.UpdatedAt,
	)

	created, err := scanCertificate(row)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("failed to create certificate: %w", err)
	}
	return created, nil
}

// GetByID retrieves a certificate by ID
func (r *certificateRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Certificate, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE id = $1`,
		id,
	)

	cert, err := scanCertificate(row)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("failed to get certificate: %w", err)
	}
	return cert, nil
}

// GetByNumber retrieves a certificate by its public number
func (r *certificateRepository) GetByNumber(ctx context.Context, number string) (domain.Certificate, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE number = $1`,
		number,
	)

	cert, err := scanCertificate(row)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("failed to get certificate by number: %w", err)
	}
	return cert, nil
}

// List retrieves certificates for an organization, optionally scoped to a course
func (r *certificateRepository) List(ctx context.Context, organizationID uuid.UUID, courseID *uuid.UUID, limit, offset int) ([]domain.Certificate, error) {
	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + certificateColumns + `
		 FROM certificates
		 WHERE organization_id = $1`
	args := []any{organizationID}

	if courseID != nil {
		query += ` AND course_id = $2`
		args = append(args, *courseID)
	}
	query += fmt.Sprintf(` ORDER BY issue_date DESC, student_name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer rows.Close()

	certificates := []domain.Certificate{}
	for rows.Next() {
		cert, scanErr := scanCertificate(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", scanErr)
		}
		certificates = append(certificates, cert)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate certificates: %w", rowsErr)
	}

	return certificates, nil
}

// UpdateStatus updates the lifecycle status of a certificate
func (r *certificateRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CertificateStatus) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE certificates SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update certificate status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("certificate %s not found", id)
	}
	return nil
}

// Count returns the number of certificates held by an organization
func (r *certificateRepository) Count(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM certificates WHERE organization_id = $1`,
		organizationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count certificates: %w", err)
	}
	return count, nil
}
