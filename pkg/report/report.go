// Package report renders validation results for humans and machines. It sits
// outside the core contract: the engine hands over ValidationResults and
// makes no assumption about how they are displayed.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/nsxbet/sql-guard/pkg/types"
)

// Finding pairs one validated statement with its result.
type Finding struct {
	StatementID string            `json:"statementId"`
	SQL         string            `json:"sql"`
	Passed      bool              `json:"passed"`
	RiskLevel   string            `json:"riskLevel"`
	Violations  []types.Violation `json:"violations"`
	Details     map[string]any    `json:"details,omitempty"`

	level types.RiskLevel
}

// NewFinding builds a Finding from a statement and its validation result.
func NewFinding(statementID, sql string, result *types.ValidationResult) Finding {
	return Finding{
		StatementID: statementID,
		SQL:         sql,
		Passed:      result.Passed(),
		RiskLevel:   result.RiskLevel().String(),
		Violations:  result.Violations(),
		Details:     result.Details(),
		level:       result.RiskLevel(),
	}
}

// Reporter renders a batch of findings.
type Reporter interface {
	Render(findings []Finding) error
}

// ConsoleReporter writes colorized human-readable output.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter builds a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Render prints one block per failed statement and a summary line.
func (r *ConsoleReporter) Render(findings []Finding) error {
	failed := 0
	violations := 0
	for _, f := range findings {
		if f.Passed {
			continue
		}
		failed++
		violations += len(f.Violations)

		fmt.Fprintf(r.out, "%s  %s\n", levelColor(f.level).Sprintf("[%s]", f.RiskLevel), f.StatementID)
		fmt.Fprintf(r.out, "  %s\n", color.CyanString(truncate(f.SQL, 120)))
		for _, v := range f.Violations {
			fmt.Fprintf(r.out, "  - %s %s\n", levelColor(v.Level).Sprintf("%s:", v.Level), v.Message)
			if v.Suggestion != "" {
				fmt.Fprintf(r.out, "    suggestion: %s\n", v.Suggestion)
			}
		}
		fmt.Fprintln(r.out)
	}

	if failed == 0 {
		fmt.Fprintln(r.out, color.GreenString("✔ %d statements checked, no risks found", len(findings)))
		return nil
	}
	fmt.Fprintf(r.out, "%s %d of %d statements flagged, %d violations\n",
		color.RedString("✘"), failed, len(findings), violations)
	return nil
}

// JSONReporter writes the findings as a JSON array.
type JSONReporter struct {
	out io.Writer
}

// NewJSONReporter builds a reporter writing JSON to out.
func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{out: out}
}

func (r *JSONReporter) Render(findings []Finding) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

func levelColor(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskCritical:
		return color.New(color.FgRed, color.Bold)
	case types.RiskHigh:
		return color.New(color.FgRed)
	case types.RiskMedium:
		return color.New(color.FgYellow)
	case types.RiskLow:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgGreen)
	}
}

// truncate shortens s to at most max runes, cutting on a rune boundary so
// multi-byte characters in SQL literals stay intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}
