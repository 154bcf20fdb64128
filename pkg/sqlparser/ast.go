package sqlparser

import (
	"strings"

	"github.com/pingcap/tidb/parser/ast"
)

// ExtractWhere returns the WHERE clause of a SELECT, UPDATE, or DELETE
// statement, nil when the statement has none or does not carry one.
func ExtractWhere(stmt ast.StmtNode) ast.ExprNode {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return s.Where
	case *ast.UpdateStmt:
		return s.Where
	case *ast.DeleteStmt:
		return s.Where
	default:
		return nil
	}
}

// ExtractTableName returns the lowercased name of the statement's primary
// target table: the first table referenced in FROM for SELECT/DELETE, the
// updated table for UPDATE, the target for INSERT. Empty when no plain table
// reference exists (derived tables, unsupported kinds).
func ExtractTableName(stmt ast.StmtNode) string {
	var refs *ast.TableRefsClause
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		refs = s.From
	case *ast.UpdateStmt:
		refs = s.TableRefs
	case *ast.DeleteStmt:
		refs = s.TableRefs
	case *ast.InsertStmt:
		refs = s.Table
	}
	if refs == nil {
		return ""
	}
	finder := &tableNameFinder{}
	refs.Accept(finder)
	return finder.name
}

type tableNameFinder struct {
	name string
}

func (f *tableNameFinder) Enter(n ast.Node) (ast.Node, bool) {
	if f.name != "" {
		return n, true
	}
	if tn, ok := n.(*ast.TableName); ok {
		f.name = tn.Name.L
		return n, true
	}
	return n, false
}

func (f *tableNameFinder) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

// ExtractTableNames collects the distinct lowercased names of every table the
// statement references, including join operands and subqueries. Order follows
// first appearance.
func ExtractTableNames(stmt ast.StmtNode) []string {
	if stmt == nil {
		return nil
	}
	collector := &tableNameCollector{seen: make(map[string]bool)}
	stmt.Accept(collector)
	return collector.names
}

type tableNameCollector struct {
	seen  map[string]bool
	names []string
}

func (c *tableNameCollector) Enter(n ast.Node) (ast.Node, bool) {
	if tn, ok := n.(*ast.TableName); ok {
		name := tn.Name.L
		if !c.seen[name] {
			c.seen[name] = true
			c.names = append(c.names, name)
		}
	}
	return n, false
}

func (c *tableNameCollector) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

// ExtractFunctionNames collects the distinct lowercased names of every
// function called anywhere in the statement, including calls nested in
// arguments, CASE arms, and subqueries.
func ExtractFunctionNames(stmt ast.StmtNode) []string {
	if stmt == nil {
		return nil
	}
	collector := &funcNameCollector{seen: make(map[string]bool)}
	stmt.Accept(collector)
	return collector.names
}

type funcNameCollector struct {
	seen  map[string]bool
	names []string
}

func (c *funcNameCollector) Enter(n ast.Node) (ast.Node, bool) {
	if fn, ok := n.(*ast.FuncCallExpr); ok {
		name := fn.FnName.L
		if !c.seen[name] {
			c.seen[name] = true
			c.names = append(c.names, name)
		}
	}
	return n, false
}

func (c *funcNameCollector) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

// ExtractWhereFields collects the distinct lowercased column names appearing
// anywhere in the expression. Order follows first appearance.
func ExtractWhereFields(where ast.ExprNode) []string {
	if where == nil {
		return nil
	}
	collector := &fieldCollector{seen: make(map[string]bool)}
	where.Accept(collector)
	return collector.fields
}

type fieldCollector struct {
	seen   map[string]bool
	fields []string
}

func (c *fieldCollector) Enter(n ast.Node) (ast.Node, bool) {
	if col, ok := n.(*ast.ColumnNameExpr); ok {
		name := col.Name.Name.L
		if !c.seen[name] {
			c.seen[name] = true
			c.fields = append(c.fields, name)
		}
	}
	return n, false
}

func (c *fieldCollector) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

// MatchesField reports whether field matches any entry of the set. Entries
// compare case-insensitively and may end in "*" for prefix matching
// (e.g. "create_*" matches "create_time").
func MatchesField(field string, set []string) bool {
	f := strings.ToLower(field)
	for _, entry := range set {
		e := strings.ToLower(entry)
		if prefix, ok := strings.CutSuffix(e, "*"); ok {
			if strings.HasPrefix(f, prefix) {
				return true
			}
			continue
		}
		if f == e {
			return true
		}
	}
	return false
}
