package rules

import (
	"fmt"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/pagination"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewLargePageSize flags physical pagination whose row count exceeds the
// configured threshold. A huge page defeats the point of paginating.
func NewLargePageSize(cfg *config.LargePageSizeConfig, detector *pagination.Detector) checker.Checker {
	c := &largePageSize{cfg: cfg, detector: detector}
	c.Base = checker.NewBase("large-page-size", cfg.IsEnabled, c)
	return c
}

type largePageSize struct {
	*checker.Base
	checker.NoHooks
	cfg      *config.LargePageSizeConfig
	detector *pagination.Detector
}

func (c *largePageSize) OnSelect(run *checker.Run, stmt *ast.SelectStmt, ctx *statement.Context) {
	if c.detector.Classify(ctx) != types.PaginationPhysical {
		return
	}
	if run.Result().EarlyReturn() {
		return
	}

	info := sqlparser.SelectLimit(stmt)
	if !info.HasLimit || !info.HasRowCount {
		return
	}

	if info.RowCount > c.cfg.MaxPageSize {
		run.AddViolation(types.RiskMedium,
			fmt.Sprintf("page size %d exceeds the configured maximum of %d", info.RowCount, c.cfg.MaxPageSize),
			fmt.Sprintf("Lower the page size to %d or less", c.cfg.MaxPageSize))
	}
}
