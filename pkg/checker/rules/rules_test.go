package rules

import (
	"testing"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/pagination"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

var testParser = sqlparser.New()

func mustParse(t *testing.T, sql string) ast.StmtNode {
	t.Helper()
	stmt, err := testParser.Parse(sql)
	require.NoError(t, err)
	return stmt
}

// runCheck parses sql, builds a context, and runs the checker against a
// fresh result.
func runCheck(t *testing.T, c checker.Checker, sql string, opts ...statement.Option) *types.ValidationResult {
	t.Helper()
	result := types.NewResult()
	c.Check(buildContext(t, sql, opts...), result)
	return result
}

func buildContext(t *testing.T, sql string, opts ...statement.Option) *statement.Context {
	t.Helper()
	stmt := mustParse(t, sql)
	opts = append([]statement.Option{
		statement.WithStmt(stmt),
		statement.WithCommand(sqlparser.CommandTypeOf(stmt)),
	}, opts...)
	return statement.NewContext(sql, opts...)
}

// runRawCheck runs the checker against raw SQL with no parsed form, the way
// the pipeline sees unparseable statements.
func runRawCheck(t *testing.T, c checker.Checker, sql string) *types.ValidationResult {
	t.Helper()
	result := types.NewResult()
	c.Check(statement.NewContext(sql), result)
	return result
}

func noPlugins() *pagination.Detector {
	return pagination.NewDetector(nil)
}

func requireSingleViolation(t *testing.T, result *types.ValidationResult, level types.RiskLevel) types.Violation {
	t.Helper()
	require.Len(t, result.Violations(), 1)
	v := result.Violations()[0]
	require.Equal(t, level, v.Level)
	return v
}
