package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/types"
)

func TestMultiStatement(t *testing.T) {
	c := NewMultiStatement(&config.MultiStatementConfig{Enabled: true})

	tests := []struct {
		name       string
		sql        string
		wantIssues int
	}{
		{"single statement", "SELECT * FROM users WHERE id = 1", 0},
		{"trailing semicolon", "SELECT * FROM users WHERE id = 1;", 0},
		{"trailing semicolon and whitespace", "SELECT * FROM users WHERE id = 1;  \n", 0},
		{"semicolon inside string literal", "SELECT * FROM users WHERE name = 'John; test'", 0},
		{"semicolon inside escaped quote", "SELECT * FROM users WHERE name = 'it''s; fine'", 0},
		{"classic injection", "SELECT * FROM users WHERE id = 1; DROP TABLE users", 1},
		{"stacked queries", "SELECT 1; SELECT 2; SELECT 3", 1},
		{"injection with trailing comment", "SELECT * FROM users; DELETE FROM users--", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runRawCheck(t, c, tt.sql)
			require.Len(t, result.Violations(), tt.wantIssues)
			if tt.wantIssues > 0 {
				requireSingleViolation(t, result, types.RiskCritical)
			}
		})
	}
}

func TestMultiStatement_RunsWithoutParsedForm(t *testing.T) {
	c := NewMultiStatement(&config.MultiStatementConfig{Enabled: true})
	// Deliberately unparseable second statement; detection must not depend
	// on the AST.
	result := runRawCheck(t, c, "SELECT * FROM users; GARBAGE !!!")
	requireSingleViolation(t, result, types.RiskCritical)
}

func TestMultiStatement_Disabled(t *testing.T) {
	c := NewMultiStatement(&config.MultiStatementConfig{Enabled: false})
	result := runRawCheck(t, c, "SELECT 1; SELECT 2")
	require.True(t, result.Passed())
}
