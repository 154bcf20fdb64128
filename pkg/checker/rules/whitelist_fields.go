package rules

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewWhitelistFields requires every WHERE clause to touch at least one
// acceptable filter column: either the table's own list from the per-table
// mapping, or the global fallback list. Tables absent from the mapping are
// exempt unless enforceForUnknownTables is set.
func NewWhitelistFields(cfg *config.WhitelistFieldsConfig) checker.Checker {
	c := &whitelistFields{cfg: cfg}
	c.Base = checker.NewBase("whitelist-fields", cfg.IsEnabled, c)
	return c
}

type whitelistFields struct {
	*checker.Base
	checker.NoHooks
	cfg *config.WhitelistFieldsConfig
}

func (c *whitelistFields) OnSelect(run *checker.Run, stmt *ast.SelectStmt, _ *statement.Context) {
	c.checkStmt(run, stmt)
}

func (c *whitelistFields) OnUpdate(run *checker.Run, stmt *ast.UpdateStmt, _ *statement.Context) {
	c.checkStmt(run, stmt)
}

func (c *whitelistFields) OnDelete(run *checker.Run, stmt *ast.DeleteStmt, _ *statement.Context) {
	c.checkStmt(run, stmt)
}

func (c *whitelistFields) checkStmt(run *checker.Run, stmt ast.StmtNode) {
	table := sqlparser.ExtractTableName(stmt)
	if table == "" {
		return
	}
	where := sqlparser.ExtractWhere(stmt)
	if where == nil {
		return
	}

	required, known := c.lookupTable(table)
	if !known {
		if !c.cfg.EnforceForUnknownTables {
			return
		}
		required = c.cfg.Fields
	}
	if len(required) == 0 {
		return
	}

	for _, field := range sqlparser.ExtractWhereFields(where) {
		if sqlparser.MatchesField(field, required) {
			return
		}
	}
	run.AddViolation(types.RiskMedium,
		fmt.Sprintf("WHERE clause on table %s must include one of the acceptable filter columns [%s]",
			table, strings.Join(required, ", ")),
		"Filter on a primary key or an indexed business column")
}

// lookupTable resolves the table's whitelist with case-insensitive matching
// on the configured table names.
func (c *whitelistFields) lookupTable(table string) ([]string, bool) {
	for name, fields := range c.cfg.ByTable {
		if strings.EqualFold(name, table) {
			return fields, true
		}
	}
	return nil, false
}
