package config

import "github.com/nsxbet/sql-guard/pkg/types"

// Per-checker configuration structs. Each carries at minimum an enabled
// flag; an absent (nil) config disables the checker. All structs are treated
// as immutable once loaded; reconfiguration swaps the whole Config object.

// NoWhereConfig configures the no-WHERE-clause checker.
type NoWhereConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

func (c *NoWhereConfig) IsEnabled() bool { return c != nil && c.Enabled }

// DummyConditionConfig configures tautology detection. Patterns are
// normalized (lowercased, whitespace collapsed) before substring matching;
// AST detection runs regardless, so patterns only add to the built-in
// constant-comparison analysis.
type DummyConditionConfig struct {
	Enabled        bool            `yaml:"enabled" json:"enabled"`
	Level          types.RiskLevel `yaml:"level" json:"level"`
	Patterns       []string        `yaml:"patterns" json:"patterns"`
	CustomPatterns []string        `yaml:"customPatterns" json:"customPatterns"`
}

func (c *DummyConditionConfig) IsEnabled() bool { return c != nil && c.Enabled }

// BlacklistFieldsConfig lists sensitive or low-selectivity field names.
// Entries may end in "*" for prefix matching (e.g. "create_*").
type BlacklistFieldsConfig struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Level   types.RiskLevel `yaml:"level" json:"level"`
	Fields  []string        `yaml:"fields" json:"fields"`
}

func (c *BlacklistFieldsConfig) IsEnabled() bool { return c != nil && c.Enabled }

// WhitelistFieldsConfig requires WHERE clauses to touch at least one
// acceptable filter column. ByTable maps a table to its own list; Fields is
// the global fallback. EnforceForUnknownTables controls whether tables
// absent from ByTable are checked against the global list or exempt.
type WhitelistFieldsConfig struct {
	Enabled                 bool                `yaml:"enabled" json:"enabled"`
	Fields                  []string            `yaml:"fields" json:"fields"`
	ByTable                 map[string][]string `yaml:"byTable" json:"byTable"`
	EnforceForUnknownTables bool                `yaml:"enforceForUnknownTables" json:"enforceForUnknownTables"`
}

func (c *WhitelistFieldsConfig) IsEnabled() bool { return c != nil && c.Enabled }

// NoPaginationConfig configures the unpaginated-SELECT checker.
// AllowStatements entries are glob patterns matched against the statement
// identifier; AllowTables is an exact-match table exemption list;
// UniqueKeyFields extends the built-in "id" unique-key set. With
// EnforceForAllQueries set, even statements with a legitimate business
// filter draw a MEDIUM violation.
type NoPaginationConfig struct {
	Enabled              bool     `yaml:"enabled" json:"enabled"`
	AllowStatements      []string `yaml:"allowStatements" json:"allowStatements"`
	AllowTables          []string `yaml:"allowTables" json:"allowTables"`
	UniqueKeyFields      []string `yaml:"uniqueKeyFields" json:"uniqueKeyFields"`
	EnforceForAllQueries bool     `yaml:"enforceForAllQueries" json:"enforceForAllQueries"`
}

func (c *NoPaginationConfig) IsEnabled() bool { return c != nil && c.Enabled }

// LogicalPaginationConfig configures the logical-pagination checker.
type LogicalPaginationConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

func (c *LogicalPaginationConfig) IsEnabled() bool { return c != nil && c.Enabled }

// NoConditionPaginationConfig configures the paginated-full-scan checker.
type NoConditionPaginationConfig struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Level   types.RiskLevel `yaml:"level" json:"level"`
}

func (c *NoConditionPaginationConfig) IsEnabled() bool { return c != nil && c.Enabled }

// DeepPaginationConfig bounds how deep an OFFSET may reach.
type DeepPaginationConfig struct {
	Enabled   bool  `yaml:"enabled" json:"enabled"`
	MaxOffset int64 `yaml:"maxOffset" json:"maxOffset"`
}

func (c *DeepPaginationConfig) IsEnabled() bool { return c != nil && c.Enabled }

// LargePageSizeConfig bounds the page size of a physical pagination.
type LargePageSizeConfig struct {
	Enabled     bool  `yaml:"enabled" json:"enabled"`
	MaxPageSize int64 `yaml:"maxPageSize" json:"maxPageSize"`
}

func (c *LargePageSizeConfig) IsEnabled() bool { return c != nil && c.Enabled }

// MissingOrderByConfig configures the unordered-pagination checker.
type MissingOrderByConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

func (c *MissingOrderByConfig) IsEnabled() bool { return c != nil && c.Enabled }

// MultiStatementConfig configures stacked-statement detection.
type MultiStatementConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

func (c *MultiStatementConfig) IsEnabled() bool { return c != nil && c.Enabled }

// SQLCommentConfig configures comment detection in raw SQL. AllowHints
// exempts optimizer hints of the form /*+ ... */.
type SQLCommentConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled"`
	AllowHints bool `yaml:"allowHints" json:"allowHints"`
}

func (c *SQLCommentConfig) IsEnabled() bool { return c != nil && c.Enabled }

// IntoOutfileConfig configures detection of INTO OUTFILE/DUMPFILE file
// writes.
type IntoOutfileConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

func (c *IntoOutfileConfig) IsEnabled() bool { return c != nil && c.Enabled }

// DangerousFunctionConfig lists function names whose presence anywhere in a
// statement is denied. Names compare case-insensitively; an empty list falls
// back to DefaultDeniedFunctions.
type DangerousFunctionConfig struct {
	Enabled   bool     `yaml:"enabled" json:"enabled"`
	Functions []string `yaml:"functions" json:"functions"`
}

func (c *DangerousFunctionConfig) IsEnabled() bool { return c != nil && c.Enabled }

// DeniedTableConfig lists tables no statement may touch. Entries may contain
// "*", which matches a run of non-underscore characters, so "sys_*" matches
// sys_user but neither system nor sys_user_detail.
type DeniedTableConfig struct {
	Enabled bool     `yaml:"enabled" json:"enabled"`
	Tables  []string `yaml:"tables" json:"tables"`
}

func (c *DeniedTableConfig) IsEnabled() bool { return c != nil && c.Enabled }

// ReadOnlyTableConfig lists tables that accept reads but no mutations.
// Entries may end in "*" for prefix matching (e.g. "history_*").
type ReadOnlyTableConfig struct {
	Enabled bool     `yaml:"enabled" json:"enabled"`
	Tables  []string `yaml:"tables" json:"tables"`
}

func (c *ReadOnlyTableConfig) IsEnabled() bool { return c != nil && c.Enabled }

// Default thresholds and patterns.
const (
	DefaultMaxOffset   int64 = 10000
	DefaultMaxPageSize int64 = 1000
)

// DefaultDummyPatterns are the always-true WHERE fragments recognized out of
// the box, complementing the AST constant-comparison analysis.
var DefaultDummyPatterns = []string{"1=1", "1 = 1", "'a'='a'", "true"}

// DefaultDeniedFunctions are the file-access, command-execution, and
// time-delay functions denied out of the box across the supported dialects.
var DefaultDeniedFunctions = []string{
	"load_file",
	"sys_exec",
	"sys_eval",
	"sleep",
	"benchmark",
	"pg_sleep",
	"waitfor",
	"xp_cmdshell",
	"dbms_pipe",
}
