// Package validator assembles the validation pipeline: the orchestrator that
// runs the configured checkers in a fixed order, the deduplication front-end
// that collapses repeated validations of identical statements, and the
// high-level Validator tying them to the SQL parser.
package validator

import (
	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// Orchestrator runs an ordered list of checkers against one shared result.
// Order is part of the contract: the no-condition-pagination checker must
// run before the deep-pagination and large-page-size checkers so its
// early-return flag is visible to them.
type Orchestrator struct {
	checkers []checker.Checker
}

// NewOrchestrator builds an orchestrator over the given checkers, run in
// argument order.
func NewOrchestrator(checkers ...checker.Checker) *Orchestrator {
	return &Orchestrator{checkers: checkers}
}

// Orchestrate runs every checker against the context, accumulating into
// result. The orchestrator performs no SQL-specific logic itself.
func (o *Orchestrator) Orchestrate(ctx *statement.Context, result *types.ValidationResult) {
	for _, c := range o.checkers {
		c.Check(ctx, result)
	}
}

// Checkers exposes the configured chain, mainly for tests and reporting.
func (o *Orchestrator) Checkers() []checker.Checker {
	return o.checkers
}
