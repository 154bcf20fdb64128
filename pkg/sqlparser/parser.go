// Package sqlparser wraps the TiDB SQL parser and provides the AST helpers
// shared by the rule checkers: WHERE extraction, field collection, tautology
// detection, and limit/offset extraction across dialect syntaxes.
package sqlparser

import (
	"sync"

	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"
	_ "github.com/pingcap/tidb/parser/test_driver"
	"github.com/pkg/errors"

	"github.com/nsxbet/sql-guard/pkg/types"
)

// Parser converts SQL text into TiDB AST statement nodes. A single Parser is
// safe for concurrent use; the underlying TiDB parser instances are pooled
// because they keep per-parse state.
type Parser struct {
	pool sync.Pool
}

// New creates a Parser.
func New() *Parser {
	return &Parser{
		pool: sync.Pool{
			New: func() any { return parser.New() },
		},
	}
}

// Parse parses a single statement. For input containing multiple statements
// the first one is returned.
func (p *Parser) Parse(sql string) (ast.StmtNode, error) {
	stmts, err := p.ParseAll(sql)
	if err != nil {
		return nil, err
	}
	return stmts[0], nil
}

// ParseAll parses every statement in the input.
func (p *Parser) ParseAll(sql string) ([]ast.StmtNode, error) {
	tp := p.pool.Get().(*parser.Parser)
	defer p.pool.Put(tp)

	stmts, _, err := tp.Parse(sql, "", "")
	if err != nil {
		return nil, errors.Wrap(err, "parse SQL")
	}
	if len(stmts) == 0 {
		return nil, errors.New("no statement found")
	}
	return stmts, nil
}

// CommandTypeOf maps a parsed statement to its command kind.
func CommandTypeOf(stmt ast.StmtNode) types.SQLCommandType {
	switch stmt.(type) {
	case *ast.SelectStmt:
		return types.CommandSelect
	case *ast.UpdateStmt:
		return types.CommandUpdate
	case *ast.DeleteStmt:
		return types.CommandDelete
	case *ast.InsertStmt:
		return types.CommandInsert
	default:
		return types.CommandUnknown
	}
}
