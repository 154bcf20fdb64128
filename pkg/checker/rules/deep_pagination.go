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

// NewDeepPagination flags physical pagination whose OFFSET exceeds the
// configured threshold. The database must scan and discard every skipped
// row, so page N gets slower the deeper N goes.
func NewDeepPagination(cfg *config.DeepPaginationConfig, detector *pagination.Detector) checker.Checker {
	c := &deepPagination{cfg: cfg, detector: detector}
	c.Base = checker.NewBase("deep-pagination", cfg.IsEnabled, c)
	return c
}

type deepPagination struct {
	*checker.Base
	checker.NoHooks
	cfg      *config.DeepPaginationConfig
	detector *pagination.Detector
}

func (c *deepPagination) OnSelect(run *checker.Run, stmt *ast.SelectStmt, ctx *statement.Context) {
	if c.detector.Classify(ctx) != types.PaginationPhysical {
		return
	}
	if run.Result().EarlyReturn() {
		// A full-scan pagination finding already subsumes this one.
		return
	}

	info := sqlparser.SelectLimit(stmt)
	if !info.HasLimit || !info.HasOffset {
		// No structural limit, or the offset is a bound parameter whose
		// value static analysis cannot see.
		return
	}

	if info.Offset > c.cfg.MaxOffset {
		run.AddViolation(types.RiskMedium,
			fmt.Sprintf("deep pagination offset=%d: the database scans and discards %d rows before the page starts", info.Offset, info.Offset),
			"Use cursor (seek) pagination, e.g. WHERE id > :lastSeenId, instead of a large OFFSET")
	}
}
