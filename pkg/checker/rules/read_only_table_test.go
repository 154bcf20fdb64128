package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/types"
)

func TestReadOnlyTable(t *testing.T) {
	c := NewReadOnlyTable(&config.ReadOnlyTableConfig{
		Enabled: true,
		Tables:  []string{"audit_log", "history_*"},
	})

	tests := []struct {
		name       string
		sql        string
		wantIssues int
	}{
		{"select from read-only table passes", "SELECT * FROM audit_log WHERE id = 1", 0},
		{"update other table", "UPDATE users SET name = 'x' WHERE id = 1", 0},
		{"update read-only table", "UPDATE audit_log SET note = 'x' WHERE id = 1", 1},
		{"delete from read-only table", "DELETE FROM audit_log WHERE id = 1", 1},
		{"insert into read-only table", "INSERT INTO audit_log (id) VALUES (1)", 1},
		{"wildcard prefix match", "DELETE FROM history_orders WHERE id = 1", 1},
		{"case-insensitive", "UPDATE AUDIT_LOG SET note = 'x' WHERE id = 1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runCheck(t, c, tt.sql)
			require.Len(t, result.Violations(), tt.wantIssues)
			if tt.wantIssues > 0 {
				v := requireSingleViolation(t, result, types.RiskHigh)
				require.Contains(t, v.Message, "read-only")
			}
		})
	}
}

func TestReadOnlyTable_MessageNamesOperationAndTable(t *testing.T) {
	c := NewReadOnlyTable(&config.ReadOnlyTableConfig{
		Enabled: true,
		Tables:  []string{"audit_log"},
	})
	result := runCheck(t, c, "DELETE FROM audit_log WHERE id = 1")
	v := requireSingleViolation(t, result, types.RiskHigh)
	require.Contains(t, v.Message, "DELETE")
	require.Contains(t, v.Message, "audit_log")
}

func TestReadOnlyTable_EmptyConfig(t *testing.T) {
	c := NewReadOnlyTable(&config.ReadOnlyTableConfig{Enabled: true})
	result := runCheck(t, c, "DELETE FROM audit_log WHERE id = 1")
	require.True(t, result.Passed())
}
