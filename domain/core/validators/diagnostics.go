package validators

import (
	"fmt"
	"slices"

	pkgerrors "sketchddd/pkg/errors"
)

// Severity ranks a diagnostic
type Severity int

const (
	// SeverityError blocks an IsOK judgment
	SeverityError Severity = iota
	// SeverityWarning is advisory
	SeverityWarning
	// SeverityHint is reserved
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(data []byte) error {
	switch string(data) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "hint":
		*s = SeverityHint
	default:
		return fmt.Errorf("unknown severity %q", data)
	}
	return nil
}

// SourceLocation points into the declaration a diagnostic came from
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// ValidationError is one diagnostic. Code is a stable identifier such as
// "E0100"; Suggestion and Notes are advisory text only.
type ValidationError struct {
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Severity   Severity        `json:"severity"`
	Location   *SourceLocation `json:"location,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
	Notes      []string        `json:"notes,omitempty"`
}

// NewError creates an error diagnostic
func NewError(code, message string) ValidationError {
	return ValidationError{Code: code, Message: message, Severity: SeverityError}
}

// NewWarning creates a warning diagnostic
func NewWarning(code, message string) ValidationError {
	return ValidationError{Code: code, Message: message, Severity: SeverityWarning}
}

// NewHint creates a hint diagnostic
func NewHint(code, message string) ValidationError {
	return ValidationError{Code: code, Message: message, Severity: SeverityHint}
}

// WithLocation returns a copy pointing at loc
func (e ValidationError) WithLocation(loc SourceLocation) ValidationError {
	e.Location = &loc
	return e
}

// WithSuggestion returns a copy carrying a suggestion
func (e ValidationError) WithSuggestion(suggestion string) ValidationError {
	e.Suggestion = suggestion
	return e
}

// WithNote returns a copy with an extra note appended
func (e ValidationError) WithNote(note string) ValidationError {
	e.Notes = append(slices.Clone(e.Notes), note)
	return e
}

// IsError reports whether the diagnostic blocks IsOK
func (e ValidationError) IsError() bool {
	return e.Severity == SeverityError
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s[%s]: %s", e.Severity, e.Code, e.Message)
}

// ValidationResult accumulates diagnostics in discovery order
type ValidationResult struct {
	Issues []ValidationError `json:"issues"`
}

// NewValidationResult creates an empty result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Issues: []ValidationError{}}
}

// Add appends a diagnostic
func (r *ValidationResult) Add(issue ValidationError) {
	r.Issues = append(r.Issues, issue)
}

// Merge appends every diagnostic of other
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
}

// MergePrefixed appends every diagnostic of other with prefix put in front
// of its message
func (r *ValidationResult) MergePrefixed(other *ValidationResult, prefix string) {
	if other == nil {
		return
	}
	for _, issue := range other.Issues {
		issue.Message = prefix + issue.Message
		r.Issues = append(r.Issues, issue)
	}
}

// IsOK reports whether no error was found; warnings do not count
func (r *ValidationResult) IsOK() bool {
	return r.ErrorCount() == 0
}

// Errors returns the error diagnostics
func (r *ValidationResult) Errors() []ValidationError {
	return r.filter(SeverityError)
}

// Warnings returns the warning diagnostics
func (r *ValidationResult) Warnings() []ValidationError {
	return r.filter(SeverityWarning)
}

// ErrorCount returns the number of errors
func (r *ValidationResult) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warnings
func (r *ValidationResult) WarningCount() int {
	return r.count(SeverityWarning)
}

// Codes returns every diagnostic code in order
func (r *ValidationResult) Codes() []string {
	codes := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		codes[i] = issue.Code
	}
	return codes
}

// HasCode reports whether any diagnostic carries code
func (r *ValidationResult) HasCode(code string) bool {
	return slices.ContainsFunc(r.Issues, func(e ValidationError) bool { return e.Code == code })
}

// GroupByCode buckets diagnostics by code, keeping order within a bucket
func (r *ValidationResult) GroupByCode() map[string][]ValidationError {
	groups := make(map[string][]ValidationError)
	for _, issue := range r.Issues {
		groups[issue.Code] = append(groups[issue.Code], issue)
	}
	return groups
}

// Err converts the error diagnostics into a *errors.ValidationErrors, or
// returns nil when the result is OK
func (r *ValidationResult) Err() error {
	if r.IsOK() {
		return nil
	}
	errs := pkgerrors.NewValidationErrors()
	for _, issue := range r.Errors() {
		de := pkgerrors.NewDomainError(pkgerrors.DomainValidationError, issue.Code, issue.Message)
		if issue.Suggestion != "" {
			de.WithDetail("suggestion", issue.Suggestion)
		}
		if issue.Location != nil {
			de.WithDetail("location", issue.Location.String())
		}
		errs.AddError(de)
	}
	return errs
}

func (r *ValidationResult) filter(s Severity) []ValidationError {
	out := []ValidationError{}
	for _, issue := range r.Issues {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}
	return out
}

func (r *ValidationResult) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}
