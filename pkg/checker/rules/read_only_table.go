package rules

import (
	"fmt"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewReadOnlyTable flags mutations against tables configured as read-only
// (audit logs, archived history). Reads pass untouched. Entries compare
// case-insensitively and may end in "*" for prefix matching.
func NewReadOnlyTable(cfg *config.ReadOnlyTableConfig) checker.Checker {
	c := &readOnlyTable{cfg: cfg}
	c.Base = checker.NewBase("read-only-table", cfg.IsEnabled, c)
	return c
}

type readOnlyTable struct {
	*checker.Base
	checker.NoHooks
	cfg *config.ReadOnlyTableConfig
}

func (c *readOnlyTable) OnUpdate(run *checker.Run, stmt *ast.UpdateStmt, ctx *statement.Context) {
	c.checkWrite(run, stmt, ctx)
}

func (c *readOnlyTable) OnDelete(run *checker.Run, stmt *ast.DeleteStmt, ctx *statement.Context) {
	c.checkWrite(run, stmt, ctx)
}

func (c *readOnlyTable) OnInsert(run *checker.Run, stmt *ast.InsertStmt, ctx *statement.Context) {
	c.checkWrite(run, stmt, ctx)
}

func (c *readOnlyTable) checkWrite(run *checker.Run, stmt ast.StmtNode, ctx *statement.Context) {
	if len(c.cfg.Tables) == 0 {
		return
	}
	table := sqlparser.ExtractTableName(stmt)
	if table == "" || !sqlparser.MatchesField(table, c.cfg.Tables) {
		return
	}
	run.AddViolation(types.RiskHigh,
		fmt.Sprintf("write operation %s on read-only table %s", ctx.Command, table),
		"Read-only tables must not be mutated; write to the owning table instead")
}
