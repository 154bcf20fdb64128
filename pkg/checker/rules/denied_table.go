package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewDeniedTable flags any statement touching a denied table, including
// through joins and subqueries. Entries compile to anchored patterns where
// "*" matches a run of non-underscore characters, so "sys_*" matches
// sys_user but neither system nor sys_user_detail. Database permissions
// remain the primary access control; this adds an application-level layer.
func NewDeniedTable(cfg *config.DeniedTableConfig) checker.Checker {
	c := &deniedTable{cfg: cfg}
	if cfg != nil {
		c.patterns = compileTablePatterns(cfg.Tables)
	}
	c.Base = checker.NewBase("denied-table", cfg.IsEnabled, c)
	return c
}

type deniedTable struct {
	*checker.Base
	checker.NoHooks
	cfg      *config.DeniedTableConfig
	patterns []*regexp.Regexp
}

func (c *deniedTable) OnSelect(run *checker.Run, stmt *ast.SelectStmt, _ *statement.Context) {
	c.checkTables(run, stmt)
}

func (c *deniedTable) OnUpdate(run *checker.Run, stmt *ast.UpdateStmt, _ *statement.Context) {
	c.checkTables(run, stmt)
}

func (c *deniedTable) OnDelete(run *checker.Run, stmt *ast.DeleteStmt, _ *statement.Context) {
	c.checkTables(run, stmt)
}

func (c *deniedTable) OnInsert(run *checker.Run, stmt *ast.InsertStmt, _ *statement.Context) {
	c.checkTables(run, stmt)
}

func (c *deniedTable) checkTables(run *checker.Run, stmt ast.StmtNode) {
	if len(c.patterns) == 0 {
		return
	}
	var denied []string
	for _, table := range sqlparser.ExtractTableNames(stmt) {
		for _, pattern := range c.patterns {
			if pattern.MatchString(table) {
				denied = append(denied, table)
				break
			}
		}
	}
	if len(denied) == 0 {
		return
	}
	run.AddViolation(types.RiskCritical,
		fmt.Sprintf("access to denied tables [%s] is not allowed", strings.Join(denied, ", ")),
		"Remove the denied table from the statement or request access")
}

// compileTablePatterns turns wildcard entries into anchored case-insensitive
// regexes. "*" stands for one or more non-underscore characters; everything
// else matches literally.
func compileTablePatterns(entries []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		var sb strings.Builder
		sb.WriteString("(?i)^")
		for _, r := range entry {
			if r == '*' {
				sb.WriteString("[^_]+")
			} else {
				sb.WriteString(regexp.QuoteMeta(string(r)))
			}
		}
		sb.WriteString("$")
		if p, err := regexp.Compile(sb.String()); err == nil {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
