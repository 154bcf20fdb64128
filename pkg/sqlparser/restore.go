package sqlparser

import (
	"strings"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/format"
)

// RestoreExpr renders an expression node back to SQL text. Used for pattern
// matching against configured condition fragments; falls back to the node's
// original source text when restore fails.
func RestoreExpr(expr ast.ExprNode) string {
	var sb strings.Builder
	ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(ctx); err != nil {
		return expr.Text()
	}
	return sb.String()
}
