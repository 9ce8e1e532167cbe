// Package roster implements the roster processing pipeline: extraction of
// loosely-typed spreadsheet rows into normalized entries, per-field
// validation, and batch aggregation, plus the upload service around it.
package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opencert/certhub/internal/domain"
)

// Options carries the caller context a batch is processed under.
type Options struct {
	// DefaultCourseID is stamped onto every entry.
	DefaultCourseID string
	// DefaultIssueDate is used for rows without an Issue Date cell.
	DefaultIssueDate string
	// StrictStatus flags unrecognized pass/fail text as a row error instead
	// of a warning.
	StrictStatus bool
}

// emailPattern accepts local@domain.tld shapes: exactly one @, no whitespace,
// at least one dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Process runs the full pipeline over the decoded rows: extract, validate,
// aggregate. It is pure; it allocates fresh output and never mutates rows.
// Entries come back in input order, one per row, each carrying its validation
// errors. Data-quality problems never abort the batch.
func Process(rows []Row, opts Options) domain.ProcessedBatch {
	entries := make([]domain.RosterEntry, 0, len(rows))
	errorCount := 0

	for index, row := range rows {
		entry, extraErrors := extractEntry(row, index, opts)
		entry = entry.WithErrors(append(validateEntry(entry), extraErrors...))
		if entry.HasError {
			errorCount++
		}
		entries = append(entries, entry)
	}

	return domain.ProcessedBatch{
		Entries:    entries,
		TotalCount: len(entries),
		ErrorCount: errorCount,
	}
}

// validateEntry returns the validation error messages for one normalized
// entry. Row numbers in messages are 1-based.
func validateEntry(entry domain.RosterEntry) []string {
	var errs []string

	if strings.TrimSpace(entry.StudentName) == "" {
		errs = append(errs, fmt.Sprintf("Row %d: Student name is required", entry.RowIndex+1))
	}

	if entry.Email != "" && !emailPattern.MatchString(entry.Email) {
		errs = append(errs, fmt.Sprintf("Row %d: Invalid email format", entry.RowIndex+1))
	}

	return errs
}
