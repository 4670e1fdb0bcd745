package books

import "strings"

// Validation messages returned in the errors array of a 400 response.
const (
	MsgTitleRequired  = "Title is required and must be a non-empty string"
	MsgAuthorRequired = "Author is required and must be a non-empty string"
	MsgYearInvalid    = "Year must be a valid integer between 0 and current year"
)

// Validate checks a candidate and returns every violated rule.
// It returns nil when the candidate is valid. Genre has no rule.
func Validate(c Candidate, currentYear int) []string {
	var errs []string

	if !c.Title.HasValue() || strings.TrimSpace(c.Title.Value) == "" {
		errs = append(errs, MsgTitleRequired)
	}

	if !c.Author.HasValue() || strings.TrimSpace(c.Author.Value) == "" {
		errs = append(errs, MsgAuthorRequired)
	}

	// null and absent both mean "no year".
	if c.Year.Invalid || (c.Year.HasValue() && (c.Year.Value < 0 || c.Year.Value > currentYear)) {
		errs = append(errs, MsgYearInvalid)
	}

	return errs
}
