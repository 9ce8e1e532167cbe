package roster

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/opencert/certhub/internal/domain"
)

// Row is one decoded spreadsheet row, keyed by its original (trimmed) column
// header. Values are raw cell text.
type Row map[string]string

// fieldHeaders maps each extracted field to its canonical column header. The
// alternate spellings accepted for a header live in domain.HeaderSynonyms so
// the upload contract is documented alongside the other vocabularies.
var fieldHeaders = map[string]string{
	"studentName": "Student Name",
	"email":       "Email",
	"phone":       "Phone",
	"company":     "Company",
	"city":        "City",
	"province":    "Province",
	"postalCode":  "Postal Code",
	"firstAid":    "First Aid Level",
	"cpr":         "CPR Level",
	"instructor":  "Instructor",
	"length":      "Length",
	"passFail":    "Pass/Fail",
	"issueDate":   "Issue Date",
	"expiryDate":  "Expiry Date",
}

// headerIndex is a row re-keyed by normalized header. Headers are walked in
// sorted order and the first non-empty value per normalized header wins, so
// resolution never depends on map iteration order.
type headerIndex map[string]string

func indexRow(row Row) headerIndex {
	headers := make([]string, 0, len(row))
	for header := range row {
		headers = append(headers, header)
	}
	sort.Strings(headers)

	idx := make(headerIndex, len(row))
	for _, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header))
		if _, taken := idx[key]; taken {
			continue
		}
		if value := strings.TrimSpace(row[header]); value != "" {
			idx[key] = value
		}
	}
	return idx
}

// lookup resolves a field against the canonical header first, then its
// synonyms in declared order. Matching is case-insensitive.
func (idx headerIndex) lookup(field string) string {
	canonical := fieldHeaders[field]
	if value := idx[strings.ToLower(canonical)]; value != "" {
		return value
	}
	for _, synonym := range domain.HeaderSynonyms[canonical] {
		if value := idx[strings.ToLower(synonym)]; value != "" {
			return value
		}
	}
	return ""
}

// ResolveAssessment maps free-text pass/fail cells to the strict enumeration.
// Anything that is not PASS or FAIL (case-insensitive) resolves to unknown
// rather than raising an error.
func ResolveAssessment(raw string) domain.AssessmentStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PASS":
		return domain.AssessmentPass
	case "FAIL":
		return domain.AssessmentFail
	default:
		return domain.AssessmentUnknown
	}
}

// extractEntry maps one decoded row to a normalized RosterEntry. It never
// fails: malformed cells degrade to empty or nil fields, surfaced as warnings
// where dropping the value silently would lose information. The second return
// carries extra row errors raised by strict options.
func extractEntry(row Row, index int, opts Options) (domain.RosterEntry, []string) {
	idx := indexRow(row)

	entry := domain.RosterEntry{
		RowIndex:    index,
		StudentName: idx.lookup("studentName"),
		Email:       idx.lookup("email"),
		Phone:       idx.lookup("phone"),
		Company:     idx.lookup("company"),
		City:        idx.lookup("city"),
		Province:    idx.lookup("province"),
		PostalCode:  idx.lookup("postalCode"),
		Instructor:  idx.lookup("instructor"),
		CourseID:    opts.DefaultCourseID,
		ExpiryDate:  idx.lookup("expiryDate"),
	}

	// Level names are soft-matched against the controlled vocabulary; an
	// unmatched value is kept as typed rather than dropped.
	entry.FirstAidLevel, _ = domain.MatchFirstAidLevel(idx.lookup("firstAid"))
	entry.CPRLevel, _ = domain.MatchCPRLevel(idx.lookup("cpr"))

	entry.IssueDate = idx.lookup("issueDate")
	if entry.IssueDate == "" {
		entry.IssueDate = opts.DefaultIssueDate
	}

	var warnings []string
	var extraErrors []string

	if raw := idx.lookup("length"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("Row %d: Unparseable length %q", index+1, raw))
		case value < 0:
			warnings = append(warnings, fmt.Sprintf("Row %d: Negative length %q ignored", index+1, raw))
		default:
			entry.Length = &value
		}
	}

	rawStatus := idx.lookup("passFail")
	entry.AssessmentStatus = ResolveAssessment(rawStatus)
	if rawStatus != "" && entry.AssessmentStatus == domain.AssessmentUnknown {
		message := fmt.Sprintf("Row %d: Unrecognized pass/fail value %q", index+1, rawStatus)
		if opts.StrictStatus {
			extraErrors = append(extraErrors, message)
		} else {
			warnings = append(warnings, message)
		}
	}

	return entry.WithWarnings(warnings), extraErrors
}
