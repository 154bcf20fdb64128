// Package statement defines the immutable per-statement context consumed by
// the pagination classifier and the rule checkers.
package statement

import (
	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/types"
)

// Context carries everything the validator knows about one SQL statement.
// It is created once per statement execution or scan and never mutated
// afterward, which makes it safe to share across checkers without locking.
//
// Stmt may be nil for statements the parser could not structurally parse.
// Structural checkers treat a nil Stmt as "cannot evaluate, skip"; raw-text
// checks and the pagination keyword fallback inspect SQL directly.
//
// Prefer NewContext over a struct literal: it initializes Page to
// types.NoPageRequest. A zero Page still reads as "not requested", so a
// literal Context stays classifiable, it just cannot express an explicit
// offset-0 request.
type Context struct {
	// SQL is the raw statement text.
	SQL string
	// Stmt is the parsed statement, nil if unparseable.
	Stmt ast.StmtNode
	// Command is the statement's command kind.
	Command types.SQLCommandType
	// StatementID is an opaque identifier (mapper id, file:offset, query
	// name) used for allowlist matching.
	StatementID string
	// Layer records which layer produced the statement.
	Layer types.ExecutionLayer
	// Page is the caller's explicit pagination request;
	// types.NoPageRequest when pagination was never requested.
	Page types.PageRequest
	// Params is the bound parameter map keyed by name, nil when unknown.
	Params map[string]any
}

// Option customizes a Context at construction time.
type Option func(*Context)

// WithStmt attaches the parsed form of the statement.
func WithStmt(stmt ast.StmtNode) Option {
	return func(c *Context) { c.Stmt = stmt }
}

// WithCommand sets the command kind.
func WithCommand(cmd types.SQLCommandType) Option {
	return func(c *Context) { c.Command = cmd }
}

// WithStatementID sets the opaque statement identifier.
func WithStatementID(id string) Option {
	return func(c *Context) { c.StatementID = id }
}

// WithLayer sets the producing execution layer.
func WithLayer(layer types.ExecutionLayer) Option {
	return func(c *Context) { c.Layer = layer }
}

// WithPage sets the caller's explicit pagination request.
func WithPage(page types.PageRequest) Option {
	return func(c *Context) { c.Page = page }
}

// WithParams sets the bound parameter map.
func WithParams(params map[string]any) Option {
	return func(c *Context) { c.Params = params }
}

// NewContext builds a Context for the given raw SQL. The pagination request
// defaults to types.NoPageRequest.
func NewContext(sql string, opts ...Option) *Context {
	c := &Context{
		SQL:  sql,
		Page: types.NoPageRequest,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasPageParam reports whether any bound parameter is structurally a
// framework page object.
func (c *Context) HasPageParam() bool {
	for _, v := range c.Params {
		if _, ok := v.(types.PageParam); ok {
			return true
		}
	}
	return false
}
