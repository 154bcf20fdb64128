package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/types"
)

func TestNoConditionPagination(t *testing.T) {
	c := NewNoConditionPagination(&config.NoConditionPaginationConfig{
		Enabled: true,
		Level:   types.RiskCritical,
	}, noPlugins())

	tests := []struct {
		name       string
		sql        string
		wantIssues int
	}{
		{"limit without WHERE", "SELECT * FROM logs LIMIT 10", 1},
		{"limit with dummy WHERE", "SELECT * FROM logs WHERE 1=1 LIMIT 10", 1},
		{"limit with real WHERE", "SELECT * FROM logs WHERE user_id = 42 LIMIT 10", 0},
		{"no pagination at all", "SELECT * FROM logs", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runCheck(t, c, tt.sql)
			require.Len(t, result.Violations(), tt.wantIssues)
			if tt.wantIssues > 0 {
				require.Equal(t, types.RiskCritical, result.RiskLevel())
				require.True(t, result.EarlyReturn(), "a finding must raise the early-return flag")
			} else {
				require.False(t, result.EarlyReturn())
			}
		})
	}
}

func TestNoConditionPagination_PublishesBounds(t *testing.T) {
	c := NewNoConditionPagination(&config.NoConditionPaginationConfig{
		Enabled: true,
		Level:   types.RiskCritical,
	}, noPlugins())

	result := runCheck(t, c, "SELECT * FROM logs LIMIT 10 OFFSET 200")
	offset, ok := result.Detail(types.DetailOffset)
	require.True(t, ok)
	require.Equal(t, int64(200), offset)
	limit, _ := result.Detail(types.DetailLimit)
	require.Equal(t, int64(10), limit)
}

func TestNoConditionPagination_ConfiguredLevel(t *testing.T) {
	c := NewNoConditionPagination(&config.NoConditionPaginationConfig{
		Enabled: true,
		Level:   types.RiskHigh,
	}, noPlugins())

	result := runCheck(t, c, "SELECT * FROM logs LIMIT 10")
	requireSingleViolation(t, result, types.RiskHigh)
}
