// Package pagination classifies how a statement's pagination, if any, is
// enforced: by the database (physical), by discarding rows in application
// memory (logical), or not at all.
package pagination

import (
	"reflect"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// PluginRecognizer decides whether a registered host component is a
// pagination plugin, i.e. something that rewrites queries to inject a LIMIT
// before execution. Recognition is supplied by the host integration layer so
// the classifier has no dependency on any plugin library's types.
type PluginRecognizer func(plugin any) bool

// NameRecognizer matches plugins whose concrete type name contains any of
// the given substrings. This mirrors how paging interceptors are usually
// identified when the plugin library itself is not a compile-time dependency.
func NameRecognizer(substrings ...string) PluginRecognizer {
	return func(plugin any) bool {
		if plugin == nil {
			return false
		}
		name := reflect.TypeOf(plugin).String()
		for _, s := range substrings {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

// defaultRecognizer covers the common paging interceptor naming conventions.
var defaultRecognizer = NameRecognizer(
	"PaginationInterceptor",
	"PageInterceptor",
	"PagePlugin",
)

// Detector answers, for one statement context, whether pagination is present
// and whether it is enforced in the database. A Detector is stateless apart
// from its construction-time plugin view and safe for concurrent use.
type Detector struct {
	plugins     []any
	recognizers []PluginRecognizer
}

// NewDetector builds a Detector over the host's registered plugin list.
// When no recognizers are supplied, type-name matching against well-known
// paging interceptor names is used.
func NewDetector(plugins []any, recognizers ...PluginRecognizer) *Detector {
	if len(recognizers) == 0 {
		recognizers = []PluginRecognizer{defaultRecognizer}
	}
	return &Detector{plugins: plugins, recognizers: recognizers}
}

// HasPaginationPlugin reports whether any registered host component is
// recognized as a pagination plugin.
func (d *Detector) HasPaginationPlugin() bool {
	for _, plugin := range d.plugins {
		for _, recognize := range d.recognizers {
			if recognize(plugin) {
				return true
			}
		}
	}
	return false
}

// Classify determines the pagination type for one statement:
//
//	limiting clause present                     -> PHYSICAL
//	no clause, no paging request                -> NONE
//	no clause, paging request, plugin present   -> PHYSICAL (plugin injects the limit)
//	no clause, paging request, no plugin        -> LOGICAL  (nothing enforces it)
//
// A nil context or an unparsed statement classifies as NONE; classification
// never fails.
func (d *Detector) Classify(ctx *statement.Context) types.PaginationType {
	if ctx == nil || ctx.Stmt == nil {
		return types.PaginationNone
	}

	hasLimit := hasLimitingClause(ctx.Stmt, ctx.SQL)
	hasPageParam := ctx.Page.Requested() || ctx.HasPageParam()
	hasPlugin := d.HasPaginationPlugin()

	switch {
	case hasPageParam && !hasLimit && !hasPlugin:
		return types.PaginationLogical
	case hasLimit || (hasPageParam && hasPlugin):
		return types.PaginationPhysical
	default:
		return types.PaginationNone
	}
}

// hasLimitingClause combines the structural check with the raw-text keyword
// fallback. The fallback covers nested subqueries, UNIONs, and dialect
// syntax the parser does not fully model.
func hasLimitingClause(stmt ast.StmtNode, sql string) bool {
	if sqlparser.HasStructuralLimit(stmt) {
		return true
	}
	return sqlparser.HasPaginationKeyword(sql)
}
