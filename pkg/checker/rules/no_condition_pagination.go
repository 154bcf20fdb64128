package rules

import (
	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/pagination"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewNoConditionPagination flags physically paginated SELECTs with no real
// WHERE clause: the LIMIT bounds the returned rows but the database still
// scans the whole table. On a finding it sets the early-return flag so the
// deep-offset and page-size checkers skip their weaker, now redundant
// findings for the same statement.
func NewNoConditionPagination(cfg *config.NoConditionPaginationConfig, detector *pagination.Detector) checker.Checker {
	c := &noConditionPagination{cfg: cfg, detector: detector}
	c.Base = checker.NewBase("no-condition-pagination", cfg.IsEnabled, c)
	return c
}

type noConditionPagination struct {
	*checker.Base
	checker.NoHooks
	cfg      *config.NoConditionPaginationConfig
	detector *pagination.Detector
}

func (c *noConditionPagination) OnSelect(run *checker.Run, stmt *ast.SelectStmt, ctx *statement.Context) {
	if c.detector.Classify(ctx) != types.PaginationPhysical {
		return
	}
	if stmt.Where != nil && !sqlparser.IsDummyCondition(stmt.Where) {
		return
	}

	// Publish the extracted bounds for reports before the violation so the
	// details are present even if a reader stops at the first finding.
	if info := sqlparser.SelectLimit(stmt); info.HasLimit {
		if info.HasRowCount {
			run.SetDetail(types.DetailLimit, info.RowCount)
		}
		if info.HasOffset {
			run.SetDetail(types.DetailOffset, info.Offset)
		}
	}

	run.AddViolation(c.cfg.Level,
		"paginated SELECT has no real condition; the limit bounds the rows returned but the scan still covers the whole table",
		"Add a business WHERE condition to bound the scanned range")
	run.SetDetail(types.DetailEarlyReturn, true)
}
