package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadLogEntry captures row level issues that occur during a roster upload.
type UploadLogEntry struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CourseID       uuid.UUID `json:"course_id"`
	FileName       string    `json:"file_name"`
	RowNumber      *int      `json:"row_number,omitempty"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}
