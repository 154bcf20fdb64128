package rules

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
)

// NewBlacklistFields flags WHERE clauses touching configured sensitive or
// low-selectivity fields (status flags, audit timestamps). A single matching
// column is enough to raise the finding: this is a compliance signal, not a
// selectivity verdict, which is why its level defaults low. The no-pagination
// checker separately escalates conditions built from such fields exclusively.
func NewBlacklistFields(cfg *config.BlacklistFieldsConfig) checker.Checker {
	c := &blacklistFields{cfg: cfg}
	c.Base = checker.NewBase("blacklist-fields", cfg.IsEnabled, c)
	return c
}

type blacklistFields struct {
	*checker.Base
	checker.NoHooks
	cfg *config.BlacklistFieldsConfig
}

func (c *blacklistFields) OnSelect(run *checker.Run, stmt *ast.SelectStmt, _ *statement.Context) {
	c.checkWhere(run, stmt.Where)
}

func (c *blacklistFields) OnUpdate(run *checker.Run, stmt *ast.UpdateStmt, _ *statement.Context) {
	c.checkWhere(run, stmt.Where)
}

func (c *blacklistFields) OnDelete(run *checker.Run, stmt *ast.DeleteStmt, _ *statement.Context) {
	c.checkWhere(run, stmt.Where)
}

func (c *blacklistFields) checkWhere(run *checker.Run, where ast.ExprNode) {
	if where == nil {
		// Missing WHERE is the no-where-clause checker's finding.
		return
	}

	var matched []string
	for _, field := range sqlparser.ExtractWhereFields(where) {
		if sqlparser.MatchesField(field, c.cfg.Fields) {
			matched = append(matched, field)
		}
	}
	if len(matched) == 0 {
		return
	}
	run.AddViolation(c.cfg.Level,
		fmt.Sprintf("WHERE clause references blacklisted fields [%s]", strings.Join(matched, ", ")),
		"Review whether filtering on these fields is intended; prefer indexed business columns")
}
