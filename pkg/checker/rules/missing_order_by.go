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

// NewMissingOrderBy flags paginated SELECTs without an ORDER BY clause.
// Without a defined order, page boundaries drift between calls and rows get
// skipped or repeated.
func NewMissingOrderBy(cfg *config.MissingOrderByConfig, detector *pagination.Detector) checker.Checker {
	c := &missingOrderBy{cfg: cfg, detector: detector}
	c.Base = checker.NewBase("missing-order-by", cfg.IsEnabled, c)
	return c
}

type missingOrderBy struct {
	*checker.Base
	checker.NoHooks
	cfg      *config.MissingOrderByConfig
	detector *pagination.Detector
}

func (c *missingOrderBy) OnSelect(run *checker.Run, stmt *ast.SelectStmt, ctx *statement.Context) {
	if c.detector.Classify(ctx) != types.PaginationPhysical {
		return
	}
	if stmt.Limit == nil {
		// Plugin-injected pagination orders by whatever the plugin decides;
		// only statements carrying their own limiting clause are judged.
		return
	}
	if !sqlparser.HasOrderBy(stmt) {
		run.AddViolation(types.RiskLow,
			"paginated SELECT has no ORDER BY; page boundaries are not deterministic across calls",
			"Add an ORDER BY on a unique column to stabilize page boundaries")
	}
}
