package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/types"
)

func TestDeniedTable(t *testing.T) {
	c := NewDeniedTable(&config.DeniedTableConfig{
		Enabled: true,
		Tables:  []string{"credentials", "sys_*"},
	})

	tests := []struct {
		name       string
		sql        string
		wantIssues int
	}{
		{"allowed table", "SELECT * FROM users WHERE id = 1", 0},
		{"exact match", "SELECT * FROM credentials WHERE id = 1", 1},
		{"case-insensitive", "SELECT * FROM CREDENTIALS WHERE id = 1", 1},
		{"wildcard match", "SELECT * FROM sys_user WHERE id = 1", 1},
		{"wildcard does not cross underscore", "SELECT * FROM sys_user_detail WHERE id = 1", 0},
		{"wildcard requires the separator", "SELECT * FROM system WHERE id = 1", 0},
		{"denied table in join", "SELECT u.id FROM users u JOIN sys_config s ON u.id = s.uid", 1},
		{"denied table in subquery", "SELECT * FROM users WHERE id IN (SELECT uid FROM credentials)", 1},
		{"denied update", "UPDATE sys_user SET name = 'x' WHERE id = 1", 1},
		{"denied insert", "INSERT INTO credentials (id) VALUES (1)", 1},
		{"denied delete", "DELETE FROM sys_config WHERE id = 1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runCheck(t, c, tt.sql)
			require.Len(t, result.Violations(), tt.wantIssues)
			if tt.wantIssues > 0 {
				v := requireSingleViolation(t, result, types.RiskCritical)
				require.Contains(t, v.Message, "denied")
			}
		})
	}
}

func TestDeniedTable_MessageNamesTables(t *testing.T) {
	c := NewDeniedTable(&config.DeniedTableConfig{
		Enabled: true,
		Tables:  []string{"credentials", "sys_*"},
	})
	result := runCheck(t, c, "SELECT * FROM credentials c JOIN sys_user s ON c.uid = s.id")
	v := requireSingleViolation(t, result, types.RiskCritical)
	require.Contains(t, v.Message, "credentials")
	require.Contains(t, v.Message, "sys_user")
}

func TestDeniedTable_EmptyConfig(t *testing.T) {
	c := NewDeniedTable(&config.DeniedTableConfig{Enabled: true})
	result := runCheck(t, c, "SELECT * FROM sys_user WHERE id = 1")
	require.True(t, result.Passed())
}

func TestDeniedTable_NilConfig(t *testing.T) {
	c := NewDeniedTable(nil)
	result := runCheck(t, c, "SELECT * FROM sys_user WHERE id = 1")
	require.True(t, result.Passed())
}
