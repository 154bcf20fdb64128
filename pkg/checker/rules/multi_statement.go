package rules

import (
	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewMultiStatement flags SQL carrying more than one statement, the classic
// stacked-query injection (SELECT ...; DROP TABLE ...). Detection works on
// the raw text: statement separators do not survive parsing, and injected
// SQL may not parse at all.
func NewMultiStatement(cfg *config.MultiStatementConfig) checker.Checker {
	c := &multiStatement{cfg: cfg}
	c.Base = checker.NewBase("multi-statement", cfg.IsEnabled, c)
	return c
}

type multiStatement struct {
	*checker.Base
	checker.NoHooks
	cfg *config.MultiStatementConfig
}

func (c *multiStatement) OnRawSQL(run *checker.Run, ctx *statement.Context) {
	if sqlparser.HasMultipleStatements(ctx.SQL) {
		run.AddViolation(types.RiskCritical,
			"multiple SQL statements detected in one execution (stacked-query injection risk)",
			"Remove the statement separator or ensure the input is properly escaped")
	}
}
