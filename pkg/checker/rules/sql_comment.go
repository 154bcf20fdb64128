package rules

import (
	"fmt"
	"strings"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewSQLComment flags comments embedded in executed SQL. Attackers use them
// to comment out the rest of a WHERE clause or hide a payload, and parsers
// strip them, so detection works on the raw text. Optimizer hints
// (/*+ ... */) pass when AllowHints is set.
func NewSQLComment(cfg *config.SQLCommentConfig) checker.Checker {
	c := &sqlComment{cfg: cfg}
	c.Base = checker.NewBase("sql-comment", cfg.IsEnabled, c)
	return c
}

type sqlComment struct {
	*checker.Base
	checker.NoHooks
	cfg *config.SQLCommentConfig
}

func (c *sqlComment) OnRawSQL(run *checker.Run, ctx *statement.Context) {
	for _, comment := range sqlparser.FindComments(ctx.SQL) {
		if comment.Kind == sqlparser.CommentHint && c.cfg.AllowHints {
			continue
		}
		run.AddViolation(types.RiskCritical,
			fmt.Sprintf("SQL comment detected: %s (may hide or disable part of the statement)",
				summarizeComment(comment.Text)),
			"Remove the comment from the executed SQL")
	}
}

func summarizeComment(text string) string {
	text = strings.TrimSpace(text)
	const limit = 40
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}
