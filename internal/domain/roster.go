package domain

// AssessmentStatus is the normalized pass/fail outcome for one roster row.
type AssessmentStatus string

const (
	// AssessmentUnknown means the source cell was empty or did not match PASS/FAIL.
	AssessmentUnknown AssessmentStatus = ""
	AssessmentPass    AssessmentStatus = "PASS"
	AssessmentFail    AssessmentStatus = "FAIL"
)

// RosterEntry is the normalized record produced for one uploaded roster row.
// RowIndex is 0-based and stable; error messages render it 1-based.
type RosterEntry struct {
	RowIndex         int              `json:"rowIndex"`
	StudentName      string           `json:"studentName"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone,omitempty"`
	Company          string           `json:"company,omitempty"`
	City             string           `json:"city,omitempty"`
	Province         string           `json:"province,omitempty"`
	PostalCode       string           `json:"postalCode,omitempty"`
	FirstAidLevel    string           `json:"firstAidLevel,omitempty"`
	CPRLevel         string           `json:"cprLevel,omitempty"`
	Instructor       string           `json:"instructor,omitempty"`
	Length           *float64         `json:"length,omitempty"`
	AssessmentStatus AssessmentStatus `json:"assessmentStatus,omitempty"`
	CourseID         string           `json:"courseId"`
	IssueDate        string           `json:"issueDate"`
	ExpiryDate       string           `json:"expiryDate,omitempty"`
	HasError         bool             `json:"hasError"`
	Errors           []string         `json:"errors"`
	Warnings         []string         `json:"warnings,omitempty"`
}

// WithErrors returns a new entry with the validation errors attached.
// HasError is derived so it can never disagree with Errors.
func (e RosterEntry) WithErrors(errs []string) RosterEntry {
	out := e
	out.Errors = append([]string(nil), errs...)
	if out.Errors == nil {
		out.Errors = []string{}
	}
	out.HasError = len(out.Errors) > 0
	return out
}

// WithWarnings returns a new entry with soft data-quality warnings attached.
// Warnings never flip HasError and are never counted in ProcessedBatch.ErrorCount.
func (e RosterEntry) WithWarnings(warnings []string) RosterEntry {
	out := e
	out.Warnings = append([]string(nil), warnings...)
	return out
}

// ProcessedBatch is the aggregate output of one roster-processing invocation.
type ProcessedBatch struct {
	Entries    []RosterEntry `json:"processedData"`
	TotalCount int           `json:"totalCount"`
	ErrorCount int           `json:"errorCount"`
}
