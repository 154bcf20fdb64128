package rules

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/opcode"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/pagination"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewNoPagination flags SELECT statements with no pagination of any kind.
// Exemptions, in precedence order: statement identifiers matching a
// configured glob pattern, tables on the allow-list, and single-row lookups
// (an equality or one-element IN on a unique key column).
//
// Remaining statements are stratified: CRITICAL when there is no real WHERE
// clause, HIGH when the WHERE uses only blacklisted fields, and MEDIUM for
// everything else when enforceForAllQueries demands pagination even behind a
// legitimate business filter.
func NewNoPagination(
	cfg *config.NoPaginationConfig,
	blacklist *config.BlacklistFieldsConfig,
	detector *pagination.Detector,
) checker.Checker {
	c := &noPagination{cfg: cfg, blacklist: blacklist, detector: detector}
	c.Base = checker.NewBase("no-pagination", cfg.IsEnabled, c)
	return c
}

type noPagination struct {
	*checker.Base
	checker.NoHooks
	cfg       *config.NoPaginationConfig
	blacklist *config.BlacklistFieldsConfig
	detector  *pagination.Detector
}

func (c *noPagination) OnSelect(run *checker.Run, stmt *ast.SelectStmt, ctx *statement.Context) {
	if c.detector.Classify(ctx) != types.PaginationNone {
		// Some pagination exists; whether it is sound is for the
		// logical/physical pagination checkers to judge.
		return
	}
	if c.isExempt(stmt, ctx) {
		return
	}
	c.assessRisk(run, stmt)
}

func (c *noPagination) isExempt(stmt *ast.SelectStmt, ctx *statement.Context) bool {
	if matchesStatementID(ctx.StatementID, c.cfg.AllowStatements) {
		return true
	}
	table := sqlparser.ExtractTableName(stmt)
	if table != "" {
		for _, allowed := range c.cfg.AllowTables {
			if strings.EqualFold(allowed, table) {
				return true
			}
		}
	}
	return c.hasUniqueKeyCondition(stmt.Where)
}

func (c *noPagination) assessRisk(run *checker.Run, stmt *ast.SelectStmt) {
	where := stmt.Where
	if where == nil || sqlparser.IsDummyCondition(where) {
		run.AddViolation(types.RiskCritical,
			"SELECT has no real condition and no pagination; it can return the whole table",
			"Add a WHERE clause and a row limit (LIMIT or a paging request)")
		return
	}

	fields := sqlparser.ExtractWhereFields(where)
	if len(fields) > 0 && c.allBlacklisted(fields) {
		run.AddViolation(types.RiskHigh,
			fmt.Sprintf("SELECT filters only on blacklisted fields [%s] with no pagination; the result may be very large",
				strings.Join(fields, ", ")),
			"Add a business field condition or a row limit")
		return
	}

	if c.cfg.EnforceForAllQueries {
		run.AddViolation(types.RiskMedium,
			"SELECT has no pagination",
			"Add a LIMIT clause or a paging request")
	}
}

func (c *noPagination) allBlacklisted(fields []string) bool {
	if c.blacklist == nil {
		return false
	}
	for _, field := range fields {
		if !sqlparser.MatchesField(field, c.blacklist.Fields) {
			return false
		}
	}
	return true
}

// hasUniqueKeyCondition reports whether the WHERE clause contains an
// equality (or one-element IN) against a configured unique key column with a
// constant or bound-parameter value. Such a lookup returns at most one row
// per key, so pagination adds nothing.
func (c *noPagination) hasUniqueKeyCondition(where ast.ExprNode) bool {
	if where == nil {
		return false
	}
	keys := make(map[string]bool, len(c.cfg.UniqueKeyFields)+1)
	keys["id"] = true
	for _, k := range c.cfg.UniqueKeyFields {
		keys[strings.ToLower(k)] = true
	}
	finder := &uniqueKeyFinder{keys: keys}
	where.Accept(finder)
	return finder.found
}

type uniqueKeyFinder struct {
	keys  map[string]bool
	found bool
}

func (f *uniqueKeyFinder) Enter(n ast.Node) (ast.Node, bool) {
	if f.found {
		return n, true
	}
	switch e := n.(type) {
	case *ast.BinaryOperationExpr:
		if e.Op == opcode.EQ && f.isUniqueKeyColumn(e.L) && isConstantOrParam(e.R) {
			f.found = true
			return n, true
		}
	case *ast.PatternInExpr:
		if !e.Not && len(e.List) == 1 && f.isUniqueKeyColumn(e.Expr) && isConstantOrParam(e.List[0]) {
			f.found = true
			return n, true
		}
	}
	return n, false
}

func (f *uniqueKeyFinder) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

func (f *uniqueKeyFinder) isUniqueKeyColumn(expr ast.ExprNode) bool {
	col, ok := expr.(*ast.ColumnNameExpr)
	return ok && f.keys[col.Name.Name.L]
}

func isConstantOrParam(expr ast.ExprNode) bool {
	if _, ok := expr.(ast.ParamMarkerExpr); ok {
		return true
	}
	_, ok := expr.(ast.ValueExpr)
	return ok
}

// matchesStatementID matches an opaque statement identifier against glob
// patterns ("com.example.mapper.*", "*FindAll").
func matchesStatementID(id string, patterns []string) bool {
	if id == "" {
		return false
	}
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, id); err == nil && ok {
			return true
		}
	}
	return false
}
