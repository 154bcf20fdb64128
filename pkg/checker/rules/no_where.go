// Package rules contains the checker family: independent policies over one
// statement context, all built on the checker dispatch framework. Each file
// holds one rule.
package rules

import (
	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewNoWhere flags UPDATE and DELETE statements that have no WHERE clause at
// all. An unconditioned mutation touches every row in the table.
func NewNoWhere(cfg *config.NoWhereConfig) checker.Checker {
	c := &noWhere{cfg: cfg}
	c.Base = checker.NewBase("no-where-clause", cfg.IsEnabled, c)
	return c
}

type noWhere struct {
	*checker.Base
	checker.NoHooks
	cfg *config.NoWhereConfig
}

func (c *noWhere) OnUpdate(run *checker.Run, stmt *ast.UpdateStmt, _ *statement.Context) {
	if stmt.Where == nil {
		run.AddViolation(types.RiskCritical,
			"UPDATE statement has no WHERE clause and will modify every row",
			"Add a WHERE clause to bound the update")
	}
}

func (c *noWhere) OnDelete(run *checker.Run, stmt *ast.DeleteStmt, _ *statement.Context) {
	if stmt.Where == nil {
		run.AddViolation(types.RiskCritical,
			"DELETE statement has no WHERE clause and will remove every row",
			"Add a WHERE clause to bound the delete")
	}
}
