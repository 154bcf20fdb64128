package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-guard/pkg/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.Enabled)
	require.Equal(t, StrategyBlock, cfg.Strategy)

	require.True(t, cfg.Rules.NoWhere.IsEnabled())
	require.True(t, cfg.Rules.DummyCondition.IsEnabled())
	require.False(t, cfg.Rules.WhitelistFields.IsEnabled())
	require.True(t, cfg.Rules.MultiStatement.IsEnabled())
	require.True(t, cfg.Rules.SQLComment.IsEnabled())
	require.True(t, cfg.Rules.SQLComment.AllowHints)
	require.True(t, cfg.Rules.IntoOutfile.IsEnabled())
	require.Equal(t, DefaultDeniedFunctions, cfg.Rules.DangerousFunction.Functions)
	require.Empty(t, cfg.Rules.DeniedTable.Tables)
	require.Equal(t, DefaultMaxOffset, cfg.Rules.DeepPagination.MaxOffset)
	require.Equal(t, DefaultMaxPageSize, cfg.Rules.LargePageSize.MaxPageSize)
}

func TestIsEnabled_NilSafe(t *testing.T) {
	var nw *NoWhereConfig
	require.False(t, nw.IsEnabled())
	require.False(t, (&NoWhereConfig{}).IsEnabled())
	require.True(t, (&NoWhereConfig{Enabled: true}).IsEnabled())
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sql-guard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempConfig(t, `
enabled: true
violationStrategy: WARN
deduplication:
  enabled: true
rules:
  noWhere:
    enabled: true
  dummyCondition:
    enabled: true
    level: CRITICAL
  deepPagination:
    enabled: true
    maxOffset: 5000
  dangerousFunction:
    enabled: true
  deniedTable:
    enabled: true
    tables: ["sys_*"]
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, StrategyWarn, cfg.Strategy)
	require.Equal(t, types.RiskCritical, cfg.Rules.DummyCondition.Level)
	require.Equal(t, int64(5000), cfg.Rules.DeepPagination.MaxOffset)

	// Omitted values are defaulted, not zero.
	require.Equal(t, 1000, cfg.Dedup.CacheSize)
	require.Equal(t, int64(100), cfg.Dedup.TTLMillis)
	require.Equal(t, DefaultDummyPatterns, cfg.Rules.DummyCondition.Patterns)
	require.Equal(t, DefaultDeniedFunctions, cfg.Rules.DangerousFunction.Functions)
	require.Equal(t, []string{"sys_*"}, cfg.Rules.DeniedTable.Tables)

	// Checkers absent from the file stay disabled.
	require.False(t, cfg.Rules.LargePageSize.IsEnabled())
	require.False(t, cfg.Rules.MultiStatement.IsEnabled())
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad strategy",
			content: `
violationStrategy: EXPLODE
`,
		},
		{
			name: "negative max offset",
			content: `
rules:
  deepPagination:
    enabled: true
    maxOffset: -1
`,
		},
		{
			name: "negative cache size",
			content: `
deduplication:
  enabled: true
  cacheSize: -5
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeTempConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_DummyPatternsRequired(t *testing.T) {
	cfg := Default()
	cfg.Rules.DummyCondition.Patterns = nil
	cfg.Rules.DummyCondition.CustomPatterns = nil
	require.Error(t, cfg.Validate())

	cfg.Rules.DummyCondition.CustomPatterns = []string{"1>0"}
	require.NoError(t, cfg.Validate())
}

func TestHolder_Swap(t *testing.T) {
	holder := NewHolder(Default())
	require.Equal(t, StrategyBlock, holder.Load().Strategy)

	next := Default()
	next.Strategy = StrategyLog
	require.NoError(t, holder.Swap(next))
	require.Equal(t, StrategyLog, holder.Load().Strategy)

	// An invalid replacement is rejected and the old snapshot survives.
	bad := Default()
	bad.Strategy = "EXPLODE"
	require.Error(t, holder.Swap(bad))
	require.Equal(t, StrategyLog, holder.Load().Strategy)
}
