package rules

import (
	"regexp"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
)

// NewDummyCondition flags WHERE clauses that reduce to a tautology (1=1,
// 'a'='a', bare TRUE). Such a clause is syntactically present but filters
// nothing, which usually means a query-builder bug or an injectable
// always-true fragment.
func NewDummyCondition(cfg *config.DummyConditionConfig) checker.Checker {
	c := &dummyCondition{cfg: cfg}
	c.Base = checker.NewBase("dummy-condition", cfg.IsEnabled, c)
	return c
}

type dummyCondition struct {
	*checker.Base
	checker.NoHooks
	cfg *config.DummyConditionConfig
}

func (c *dummyCondition) OnSelect(run *checker.Run, stmt *ast.SelectStmt, _ *statement.Context) {
	c.checkWhere(run, stmt.Where)
}

func (c *dummyCondition) OnUpdate(run *checker.Run, stmt *ast.UpdateStmt, _ *statement.Context) {
	c.checkWhere(run, stmt.Where)
}

func (c *dummyCondition) OnDelete(run *checker.Run, stmt *ast.DeleteStmt, _ *statement.Context) {
	c.checkWhere(run, stmt.Where)
}

func (c *dummyCondition) checkWhere(run *checker.Run, where ast.ExprNode) {
	if where == nil {
		return
	}

	// AST detection first: it is immune to whitespace and quoting
	// variation in the source text.
	dummy := sqlparser.IsDummyCondition(where)

	if !dummy {
		normalized := normalizeCondition(sqlparser.RestoreExpr(where))
		for _, pattern := range append(c.cfg.Patterns, c.cfg.CustomPatterns...) {
			if strings.Contains(normalized, normalizeCondition(pattern)) {
				dummy = true
				break
			}
		}
	}

	if dummy {
		run.AddViolation(c.cfg.Level,
			"WHERE clause is an always-true condition and filters nothing",
			"Replace the placeholder condition with a real business filter")
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func normalizeCondition(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), " ")
}
