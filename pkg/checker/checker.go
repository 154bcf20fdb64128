// Package checker provides the rule-checker dispatch framework. A checker
// implements per-statement-kind hooks; the framework owns enablement,
// dispatch by statement kind, and the failure boundary that keeps one broken
// rule from taking down the whole pipeline.
package checker

import (
	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/logger"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// Checker is one validation policy over a statement context.
type Checker interface {
	// Name identifies the checker in logs and reports.
	Name() string
	// Enabled reports whether the checker should run at all.
	Enabled() bool
	// Check validates one statement, appending any violations to result.
	Check(ctx *statement.Context, result *types.ValidationResult)
}

// Hooks are the per-statement-kind callbacks a checker implements. Embed
// NoHooks to get no-op defaults and override only the kinds the rule reasons
// about.
//
// Hooks receive the Run handle explicitly; it is the only way to append
// violations, and it is valid solely for the duration of the enclosing
// Check call.
type Hooks interface {
	OnSelect(run *Run, stmt *ast.SelectStmt, ctx *statement.Context)
	OnUpdate(run *Run, stmt *ast.UpdateStmt, ctx *statement.Context)
	OnDelete(run *Run, stmt *ast.DeleteStmt, ctx *statement.Context)
	OnInsert(run *Run, stmt *ast.InsertStmt, ctx *statement.Context)
}

// RawHooks is implemented by checkers that inspect the raw SQL text instead
// of the parsed statement. Statement separators and comments do not survive
// parsing, and injection-shaped SQL may not parse at all, so these checkers
// run even when the context has no parsed form.
type RawHooks interface {
	OnRawSQL(run *Run, ctx *statement.Context)
}

// NoHooks provides no-op defaults for every hook.
type NoHooks struct{}

func (NoHooks) OnSelect(*Run, *ast.SelectStmt, *statement.Context) {}
func (NoHooks) OnUpdate(*Run, *ast.UpdateStmt, *statement.Context) {}
func (NoHooks) OnDelete(*Run, *ast.DeleteStmt, *statement.Context) {}
func (NoHooks) OnInsert(*Run, *ast.InsertStmt, *statement.Context) {}

// Base implements the dispatch template. Concrete checkers embed *Base (which
// supplies Name, Enabled, and Check) and implement Hooks for the statement
// kinds they care about. Check is final in the sense that overriding it
// forfeits the framework's dispatch and failure boundary, so checkers never
// do.
type Base struct {
	name    string
	enabled func() bool
	hooks   Hooks
	logger  logger.Interface
}

// NewBase wires a checker's hooks into the dispatch template. The enabled
// func is consulted on every Check call; a nil func means permanently
// disabled, matching "absent config implies disabled".
func NewBase(name string, enabled func() bool, hooks Hooks) *Base {
	return &Base{
		name:    name,
		enabled: enabled,
		hooks:   hooks,
		logger:  logger.New().Component("checker"),
	}
}

// SetLogger replaces the framework logger. Nil loggers are ignored.
func (b *Base) SetLogger(l logger.Interface) {
	if l != nil {
		b.logger = l
	}
}

// Name returns the checker name.
func (b *Base) Name() string { return b.name }

// Enabled reports whether the checker should run.
func (b *Base) Enabled() bool { return b.enabled != nil && b.enabled() }

// Check dispatches to the hook matching the statement kind. Disabled
// checkers contribute nothing. Checkers implementing RawHooks see the raw
// SQL text first and run even when the context has no parsed form; AST
// dispatch requires one. A panic inside a hook is recovered and logged: a
// broken rule degrades to "no opinion" for the statement instead of
// aborting the pipeline.
func (b *Base) Check(ctx *statement.Context, result *types.ValidationResult) {
	if !b.Enabled() {
		return
	}
	if ctx == nil || result == nil {
		return
	}

	run := &Run{ctx: ctx, result: result, checker: b.name, logger: b.logger}
	// The run handle must be dead once Check returns, on every exit path,
	// so a retained handle cannot leak violations into a later statement.
	defer func() {
		run.closed = true
		if r := recover(); r != nil {
			b.logger.Warn("checker failed, skipping statement",
				"checker", b.name,
				"statement_id", ctx.StatementID,
				"error", r)
		}
	}()

	if raw, ok := b.hooks.(RawHooks); ok {
		raw.OnRawSQL(run, ctx)
	}
	if ctx.Stmt == nil {
		return
	}

	switch stmt := ctx.Stmt.(type) {
	case *ast.SelectStmt:
		b.hooks.OnSelect(run, stmt, ctx)
	case *ast.UpdateStmt:
		b.hooks.OnUpdate(run, stmt, ctx)
	case *ast.DeleteStmt:
		b.hooks.OnDelete(run, stmt, ctx)
	case *ast.InsertStmt:
		b.hooks.OnInsert(run, stmt, ctx)
	default:
		b.logger.Debug("unsupported statement kind",
			"checker", b.name,
			"statement_id", ctx.StatementID)
	}
}

// Run is the call-scoped handle through which hooks report violations. It is
// created per Check invocation and invalidated before Check returns, so
// nothing about one statement's validation can leak into the next call on a
// reused checker instance.
type Run struct {
	ctx     *statement.Context
	result  *types.ValidationResult
	checker string
	logger  logger.Interface
	closed  bool
}

// AddViolation appends a violation to the current result.
func (r *Run) AddViolation(level types.RiskLevel, message, suggestion string) {
	if r.closed {
		r.logger.Warn("AddViolation called outside check scope", "checker", r.checker)
		return
	}
	r.result.AddViolation(level, message, suggestion)
}

// SetDetail publishes a value on the result's side-channel map.
func (r *Run) SetDetail(key string, value any) {
	if r.closed {
		r.logger.Warn("SetDetail called outside check scope", "checker", r.checker)
		return
	}
	r.result.SetDetail(key, value)
}

// Result exposes the result being accumulated, for checkers that read
// side-channel flags set by earlier checkers in the same pipeline run.
func (r *Run) Result() *types.ValidationResult {
	return r.result
}
