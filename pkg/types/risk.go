// Package types defines the shared data model for SQL risk validation:
// risk levels, violations, validation results, and the enums describing
// how a statement reached the validator.
package types

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RiskLevel is the severity of a violation. Levels are totally ordered;
// a ValidationResult's overall level is the maximum of its violations.
type RiskLevel int

const (
	RiskSafe RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

var riskLevelNames = map[RiskLevel]string{
	RiskSafe:     "SAFE",
	RiskLow:      "LOW",
	RiskMedium:   "MEDIUM",
	RiskHigh:     "HIGH",
	RiskCritical: "CRITICAL",
}

func (l RiskLevel) String() string {
	if name, ok := riskLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("RiskLevel(%d)", int(l))
}

// ParseRiskLevel converts a level name (case-sensitive, as written in
// configuration files) into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for level, name := range riskLevelNames {
		if name == s {
			return level, nil
		}
	}
	return RiskSafe, fmt.Errorf("unknown risk level: %q", s)
}

// UnmarshalYAML lets checker configs carry levels as plain strings.
func (l *RiskLevel) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

func (l RiskLevel) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// MarshalJSON renders the level name rather than the numeric value.
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// Violation is one finding produced by a checker. Violations are created
// while a checker runs and never mutated afterward.
type Violation struct {
	Level      RiskLevel `json:"level"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
}
