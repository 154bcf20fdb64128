package types

// Well-known keys for the ValidationResult details map. The details map is a
// side channel: checkers use it to publish machine-readable context (extracted
// offset/limit values) and to signal later checkers in the same pipeline run.
const (
	// DetailEarlyReturn is set to true by a checker whose CRITICAL finding
	// subsumes the weaker findings of checkers that run after it.
	DetailEarlyReturn = "earlyReturn"
	// DetailOffset carries the extracted pagination offset.
	DetailOffset = "offset"
	// DetailLimit carries the extracted pagination row count.
	DetailLimit = "limit"
	// DetailPaginationType carries the classification string (NONE/LOGICAL/PHYSICAL).
	DetailPaginationType = "paginationType"
)

// ValidationResult accumulates the violations for one statement validation
// pass. One instance is created per statement and shared by every checker in
// the pipeline; it is not safe for concurrent use.
type ValidationResult struct {
	violations []Violation
	details    map[string]any
}

// NewResult returns an empty, passing result.
func NewResult() *ValidationResult {
	return &ValidationResult{
		details: make(map[string]any),
	}
}

// AddViolation appends a violation. Insertion order is preserved, so the
// violation list mirrors checker execution order.
func (r *ValidationResult) AddViolation(level RiskLevel, message, suggestion string) {
	r.violations = append(r.violations, Violation{
		Level:      level,
		Message:    message,
		Suggestion: suggestion,
	})
}

// Passed reports whether no checker recorded a violation.
func (r *ValidationResult) Passed() bool {
	return len(r.violations) == 0
}

// RiskLevel is the maximum level across all violations, or RiskSafe when the
// result passed.
func (r *ValidationResult) RiskLevel() RiskLevel {
	level := RiskSafe
	for _, v := range r.violations {
		if v.Level > level {
			level = v.Level
		}
	}
	return level
}

// Violations returns the recorded violations in insertion order. The returned
// slice is the result's backing storage; callers must not modify it.
func (r *ValidationResult) Violations() []Violation {
	return r.violations
}

// SetDetail stores a diagnostic or cross-checker signal under key.
func (r *ValidationResult) SetDetail(key string, value any) {
	if r.details == nil {
		r.details = make(map[string]any)
	}
	r.details[key] = value
}

// Detail looks up a value from the details side channel.
func (r *ValidationResult) Detail(key string) (any, bool) {
	v, ok := r.details[key]
	return v, ok
}

// Details exposes the full side-channel map for report generation.
func (r *ValidationResult) Details() map[string]any {
	return r.details
}

// EarlyReturn reports whether an earlier checker flagged the statement so
// severely that weaker pagination findings would be redundant.
func (r *ValidationResult) EarlyReturn() bool {
	v, ok := r.details[DetailEarlyReturn]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
