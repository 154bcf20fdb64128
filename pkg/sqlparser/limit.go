package sqlparser

import (
	"github.com/pingcap/tidb/parser/ast"
)

// LimitInfo describes the row-limiting clause of a SELECT statement. The
// parser normalizes every MySQL syntax (LIMIT n, LIMIT m,n, LIMIT n OFFSET m)
// into the same Count/Offset pair, so checkers never deal with dialect
// variation directly.
//
// HasRowCount/HasOffset are false when the corresponding value is a bound
// parameter placeholder rather than a literal; static analysis cannot
// evaluate those.
type LimitInfo struct {
	HasLimit    bool
	RowCount    int64
	HasRowCount bool
	Offset      int64
	HasOffset   bool
}

// SelectLimit extracts the limiting clause of a SELECT statement. The zero
// LimitInfo is returned for statements without one.
func SelectLimit(stmt *ast.SelectStmt) LimitInfo {
	if stmt == nil || stmt.Limit == nil {
		return LimitInfo{}
	}
	info := LimitInfo{HasLimit: true}
	if stmt.Limit.Count != nil {
		info.RowCount, info.HasRowCount = literalInt(stmt.Limit.Count)
	}
	if stmt.Limit.Offset != nil {
		info.Offset, info.HasOffset = literalInt(stmt.Limit.Offset)
	} else {
		// LIMIT without OFFSET pages from the start.
		info.Offset, info.HasOffset = 0, true
	}
	return info
}

// HasStructuralLimit reports whether the parsed statement carries a
// row-limiting clause.
func HasStructuralLimit(stmt ast.StmtNode) bool {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return s.Limit != nil
	case *ast.UpdateStmt:
		return s.Limit != nil
	case *ast.DeleteStmt:
		return s.Limit != nil
	default:
		return false
	}
}

// HasOrderBy reports whether the SELECT has a non-empty ORDER BY clause.
func HasOrderBy(stmt *ast.SelectStmt) bool {
	return stmt != nil && stmt.OrderBy != nil && len(stmt.OrderBy.Items) > 0
}

// literalInt evaluates an expression to an integer when it is a numeric
// literal. Parameter markers and computed expressions yield ok=false.
func literalInt(expr ast.ExprNode) (int64, bool) {
	if _, ok := expr.(ast.ParamMarkerExpr); ok {
		return 0, false
	}
	v, ok := expr.(ast.ValueExpr)
	if !ok {
		return 0, false
	}
	switch val := v.GetValue().(type) {
	case int64:
		return val, true
	case uint64:
		return int64(val), true
	default:
		return 0, false
	}
}
