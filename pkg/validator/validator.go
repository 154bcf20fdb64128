package validator

import (
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/checker/rules"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/logger"
	"github.com/nsxbet/sql-guard/pkg/pagination"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// DefaultCheckers builds the standard checker chain in its fixed order: the
// condition checkers, then the injection and access-control checkers, then
// the pagination checkers. The no-condition-pagination checker precedes
// deep-pagination and large-page-size so its early-return flag takes effect.
func DefaultCheckers(cfg *config.Config, detector *pagination.Detector) []checker.Checker {
	r := cfg.Rules
	return []checker.Checker{
		rules.NewNoWhere(r.NoWhere),
		rules.NewDummyCondition(r.DummyCondition),
		rules.NewBlacklistFields(r.BlacklistFields),
		rules.NewWhitelistFields(r.WhitelistFields),
		rules.NewMultiStatement(r.MultiStatement),
		rules.NewSQLComment(r.SQLComment),
		rules.NewIntoOutfile(r.IntoOutfile),
		rules.NewDangerousFunction(r.DangerousFunction),
		rules.NewDeniedTable(r.DeniedTable),
		rules.NewReadOnlyTable(r.ReadOnlyTable),
		rules.NewNoPagination(r.NoPagination, r.BlacklistFields, detector),
		rules.NewLogicalPagination(r.LogicalPagination, detector),
		rules.NewNoConditionPagination(r.NoConditionPagination, detector),
		rules.NewDeepPagination(r.DeepPagination, detector),
		rules.NewLargePageSize(r.LargePageSize, detector),
		rules.NewMissingOrderBy(r.MissingOrderBy, detector),
	}
}

// Validator is the high-level entry point: it parses statements once,
// optionally deduplicates by fingerprint, and runs the checker pipeline.
//
// Validator is safe for concurrent use by multiple goroutines.
type Validator struct {
	parser *sqlparser.Parser
	orch   *Orchestrator
	dedup  *DedupFilter
	group  singleflight.Group
	logger logger.Interface
}

// Option customizes a Validator.
type Option func(*Validator)

// WithDedup replaces the deduplication filter; nil disables deduplication.
func WithDedup(filter *DedupFilter) Option {
	return func(v *Validator) { v.dedup = filter }
}

// WithOrchestrator replaces the default checker chain.
func WithOrchestrator(orch *Orchestrator) Option {
	return func(v *Validator) { v.orch = orch }
}

// WithLogger replaces the validator's logger. Nil loggers are ignored.
func WithLogger(l logger.Interface) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New builds a Validator from a validated configuration and the host's
// pagination detector.
func New(cfg *config.Config, detector *pagination.Detector, opts ...Option) *Validator {
	v := &Validator{
		parser: sqlparser.New(),
		orch:   NewOrchestrator(DefaultCheckers(cfg, detector)...),
		logger: logger.New().Component("validator"),
	}
	if cfg.Dedup.Enabled {
		v.dedup = NewDedupFilter(cfg.Dedup.CacheSize, time.Duration(cfg.Dedup.TTLMillis)*time.Millisecond)
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the pipeline for one statement context. When the context has
// no parsed form yet, the SQL is parsed here, once; statements the parser
// cannot handle still flow through so raw-text checks can contribute.
//
// With deduplication enabled, a fingerprint validated within the TTL window
// returns a passing result without re-running the pipeline, and concurrent
// callers validating the same fingerprint share one in-flight computation.
func (v *Validator) Validate(ctx *statement.Context) *types.ValidationResult {
	if ctx == nil {
		return types.NewResult()
	}
	if v.dedup == nil {
		return v.validate(ctx)
	}

	fingerprint := Fingerprint(ctx.SQL)
	if !v.dedup.ShouldCheck(fingerprint) {
		return types.NewResult()
	}
	result, _, _ := v.group.Do(fingerprint, func() (any, error) {
		return v.validate(ctx), nil
	})
	return result.(*types.ValidationResult)
}

// ValidateSQL is a convenience wrapper that builds the context from raw SQL.
func (v *Validator) ValidateSQL(sql string, opts ...statement.Option) *types.ValidationResult {
	return v.Validate(statement.NewContext(sql, opts...))
}

func (v *Validator) validate(ctx *statement.Context) *types.ValidationResult {
	ctx = v.ensureParsed(ctx)
	result := types.NewResult()
	v.orch.Orchestrate(ctx, result)
	return result
}

// ensureParsed fills in the parsed statement and command kind when the
// producer supplied only raw text. Contexts are immutable, so a new one is
// derived rather than mutating the caller's.
func (v *Validator) ensureParsed(ctx *statement.Context) *statement.Context {
	if ctx.Stmt != nil {
		return ctx
	}
	stmt, err := v.parser.Parse(ctx.SQL)
	if err != nil {
		// Structural checkers treat a missing parsed form as insufficient
		// evidence; raw-text checks still apply.
		v.logger.Debug("statement not parseable, only raw-text checks apply",
			"statement_id", ctx.StatementID, "error", err)
		return ctx
	}
	derived := *ctx
	derived.Stmt = stmt
	if derived.Command == types.CommandUnknown {
		derived.Command = sqlparser.CommandTypeOf(stmt)
	}
	return &derived
}
