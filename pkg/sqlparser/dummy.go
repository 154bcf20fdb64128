package sqlparser

import (
	"fmt"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/opcode"
)

// IsDummyCondition reports whether the expression is a tautology: a WHERE
// clause that is syntactically present but semantically always true, such as
// 1=1, 'a'='a', or a bare TRUE literal. Detection works on the expression
// tree, so whitespace and quoting variations in the source text do not
// matter.
//
// An AND is dummy only when both operands are; an OR is dummy when either
// operand is, since one always-true branch defeats the whole filter.
func IsDummyCondition(expr ast.ExprNode) bool {
	switch e := expr.(type) {
	case nil:
		return false
	case *ast.ParenthesesExpr:
		return IsDummyCondition(e.Expr)
	case *ast.BinaryOperationExpr:
		switch e.Op {
		case opcode.LogicAnd:
			return IsDummyCondition(e.L) && IsDummyCondition(e.R)
		case opcode.LogicOr:
			return IsDummyCondition(e.L) || IsDummyCondition(e.R)
		case opcode.EQ:
			l, lok := constantValue(e.L)
			r, rok := constantValue(e.R)
			return lok && rok && l == r
		}
		return false
	default:
		return isTruthyConstant(expr)
	}
}

// constantValue returns a canonical string form of a constant literal.
// Parameter markers are not constants: their value is unknown at validation
// time.
func constantValue(expr ast.ExprNode) (string, bool) {
	if _, ok := expr.(ast.ParamMarkerExpr); ok {
		return "", false
	}
	v, ok := expr.(ast.ValueExpr)
	if !ok {
		return "", false
	}
	val := v.GetValue()
	if val == nil {
		return "", false
	}
	return fmt.Sprintf("%v", val), true
}

// isTruthyConstant reports whether the expression is a bare constant that
// evaluates to true (e.g. WHERE true, which parses to the literal 1).
func isTruthyConstant(expr ast.ExprNode) bool {
	if _, ok := expr.(ast.ParamMarkerExpr); ok {
		return false
	}
	v, ok := expr.(ast.ValueExpr)
	if !ok {
		return false
	}
	switch val := v.GetValue().(type) {
	case int64:
		return val != 0
	case uint64:
		return val != 0
	case bool:
		return val
	default:
		return false
	}
}
