package sqlparser

import (
	"testing"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, sql string) ast.StmtNode {
	t.Helper()
	stmt, err := New().Parse(sql)
	require.NoError(t, err)
	return stmt
}

func TestExtractWhere(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		hasWhere bool
	}{
		{"select with where", "SELECT * FROM users WHERE id = 1", true},
		{"select without where", "SELECT * FROM users", false},
		{"update with where", "UPDATE users SET a = 1 WHERE id = 1", true},
		{"delete without where", "DELETE FROM users", false},
		{"insert has no where", "INSERT INTO users (id) VALUES (1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := ExtractWhere(mustParse(t, tt.sql))
			require.Equal(t, tt.hasWhere, where != nil)
		})
	}
}

func TestExtractTableName(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		table string
	}{
		{"select", "SELECT * FROM Users WHERE id = 1", "users"},
		{"select with join", "SELECT * FROM orders o JOIN users u ON o.uid = u.id", "orders"},
		{"update", "UPDATE accounts SET balance = 0 WHERE id = 1", "accounts"},
		{"delete", "DELETE FROM logs WHERE id = 1", "logs"},
		{"insert", "INSERT INTO events (id) VALUES (1)", "events"},
		{"no table", "SELECT 1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.table, ExtractTableName(mustParse(t, tt.sql)))
		})
	}
}

func TestExtractTableNames(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		tables []string
	}{
		{"single table", "SELECT * FROM Users WHERE id = 1", []string{"users"}},
		{"join", "SELECT * FROM orders o JOIN users u ON o.uid = u.id", []string{"orders", "users"}},
		{"subquery", "SELECT * FROM users WHERE id IN (SELECT uid FROM blocked)", []string{"users", "blocked"}},
		{"same table once", "SELECT * FROM t a JOIN t b ON a.id = b.id", []string{"t"}},
		{"no table", "SELECT 1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.tables, ExtractTableNames(mustParse(t, tt.sql)))
		})
	}

	require.Nil(t, ExtractTableNames(nil))
}

func TestExtractFunctionNames(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		funcs []string
	}{
		{"no functions", "SELECT * FROM t WHERE id = 1", nil},
		{"where clause call", "SELECT * FROM t WHERE SLEEP(5)", []string{"sleep"}},
		{"select list call", "SELECT LOAD_FILE('/etc/passwd') FROM t WHERE id = 1", []string{"load_file"}},
		{"nested calls", "SELECT * FROM t WHERE a = IF(SLEEP(2), 1, 2)", []string{"if", "sleep"}},
		{"duplicate call once", "SELECT lower(a) FROM t WHERE lower(b) = 'x'", []string{"lower"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.funcs, ExtractFunctionNames(mustParse(t, tt.sql)))
		})
	}

	require.Nil(t, ExtractFunctionNames(nil))
}

func TestExtractWhereFields(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		fields []string
	}{
		{
			name:   "single field",
			sql:    "SELECT * FROM t WHERE id = 1",
			fields: []string{"id"},
		},
		{
			name:   "compound condition keeps first-appearance order",
			sql:    "SELECT * FROM t WHERE Status = 1 AND create_time > '2024-01-01' OR status = 2",
			fields: []string{"status", "create_time"},
		},
		{
			name:   "nested and function arguments",
			sql:    "SELECT * FROM t WHERE (a = 1 OR b IN (2, 3)) AND lower(c) = 'x'",
			fields: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := ExtractWhere(mustParse(t, tt.sql))
			require.Equal(t, tt.fields, ExtractWhereFields(where))
		})
	}

	require.Nil(t, ExtractWhereFields(nil))
}

func TestMatchesField(t *testing.T) {
	set := []string{"status", "Type", "create_*"}

	tests := []struct {
		field    string
		expected bool
	}{
		{"status", true},
		{"STATUS", true},
		{"type", true},
		{"create_time", true},
		{"create_user", true},
		{"created", false},
		{"update_time", false},
		{"id", false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			require.Equal(t, tt.expected, MatchesField(tt.field, set))
		})
	}
}
