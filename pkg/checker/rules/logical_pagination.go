package rules

import (
	"fmt"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/pagination"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewLogicalPagination flags queries classified as logically paginated: the
// caller supplies paging parameters but nothing rewrites the query, so the
// database returns the full result set and the excess rows are discarded in
// application memory. This is an unconditional memory-exhaustion risk, so no
// table or statement exemption applies.
func NewLogicalPagination(cfg *config.LogicalPaginationConfig, detector *pagination.Detector) checker.Checker {
	c := &logicalPagination{cfg: cfg, detector: detector}
	c.Base = checker.NewBase("logical-pagination", cfg.IsEnabled, c)
	return c
}

type logicalPagination struct {
	*checker.Base
	checker.NoHooks
	cfg      *config.LogicalPaginationConfig
	detector *pagination.Detector
}

func (c *logicalPagination) OnSelect(run *checker.Run, _ *ast.SelectStmt, ctx *statement.Context) {
	paginationType := c.detector.Classify(ctx)
	if paginationType != types.PaginationLogical {
		return
	}

	offset, limit := requestedBounds(ctx)
	run.AddViolation(types.RiskCritical,
		fmt.Sprintf("logical pagination detected (offset=%d, limit=%d): the full result set is loaded into memory", offset, limit),
		"Register a pagination plugin or add an explicit LIMIT so the database enforces the page")

	run.SetDetail(types.DetailOffset, offset)
	run.SetDetail(types.DetailLimit, limit)
	run.SetDetail(types.DetailPaginationType, paginationType.String())
}

// requestedBounds recovers the offset/row-count the caller asked for, from
// the explicit paging request or from a bound framework page object.
func requestedBounds(ctx *statement.Context) (offset, limit int64) {
	if ctx.Page.Requested() {
		return ctx.Page.Offset, ctx.Page.RowCount
	}
	for _, v := range ctx.Params {
		if page, ok := v.(types.PageParam); ok {
			size := page.PageSize()
			number := page.PageNumber()
			if number > 0 {
				return (number - 1) * size, size
			}
			return 0, size
		}
	}
	return 0, 0
}
