package repository

import (
	"context"
	"fmt"

	"github.com/opencert/certhub/internal/db"
	"github.com/opencert/certhub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type uploadLogRepository struct {
	conn *db.Connection
}

// NewUploadLogRepository wires a repository backed by the shared connection.
// Batches are written inside one transaction so an upload's log is all or
// nothing.
func NewUploadLogRepository(conn *db.Connection) UploadLogRepository {
	return &uploadLogRepository{conn: conn}
}

func (r *uploadLogRepository) RecordBatch(ctx context.Context, entries []domain.UploadLogEntry) error {
	if r.conn == nil {
		return fmt.Errorf("upload log repository not initialized")
	}
	if len(entries) == 0 {
		return nil
	}

	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		for _, entry := range entries {
			var rowNumber any
			if entry.RowNumber != nil {
				rowNumber = *entry.RowNumber
			}

			_, err := tx.Exec(
				ctx,
				`INSERT INTO roster_upload_logs (organization_id, course_id, file_name, row_number, message)
				 VALUES ($1, $2, $3, $4, $5)`,
				entry.OrganizationID,
				entry.CourseID,
				entry.FileName,
				rowNumber,
				entry.Message,
			)
			if err != nil {
				return fmt.Errorf("failed to record upload log: %w", err)
			}
		}
		return nil
	})
}

func (r *uploadLogRepository) List(ctx context.Context, organizationID uuid.UUID, courseID uuid.UUID, limit int, offset int) ([]domain.UploadLogEntry, error) {
	if r.conn == nil {
		return nil, fmt.Errorf("upload log repository not initialized")
	}

	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.Pool.Query(
		ctx,
		`SELECT id, organization_id, course_id, file_name, row_number, message, created_at
		 FROM roster_upload_logs
		 WHERE organization_id = $1
		   AND course_id = $2
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		organizationID,
		courseID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.UploadLogEntry{}
	for rows.Next() {
		var (
			entry     domain.UploadLogEntry
			rowNumber pgtype.Int4
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.OrganizationID,
			&entry.CourseID,
			&entry.FileName,
			&rowNumber,
			&entry.Message,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan upload log: %w", scanErr)
		}

		if rowNumber.Valid {
			value := int(rowNumber.Int32)
			entry.RowNumber = &value
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}

		logs = append(logs, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate upload logs: %w", rowsErr)
	}

	return logs, nil
}
