// Package config defines the validator's configuration model: one struct per
// checker plus the aggregate Config loaded from YAML or JSON. Validation is
// fail-fast at load time; the core never re-validates thresholds per call.
package config

import (
	"encoding/json"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-guard/pkg/types"
)

// ViolationStrategy is the downstream policy for failed validations. The
// core engine never enforces it; it is carried for hosts and the CLI.
type ViolationStrategy string

const (
	StrategyBlock ViolationStrategy = "BLOCK"
	StrategyWarn  ViolationStrategy = "WARN"
	StrategyLog   ViolationStrategy = "LOG"
)

// DedupConfig configures the optional statement-fingerprint deduplication
// front-end.
type DedupConfig struct {
	Enabled   bool  `yaml:"enabled" json:"enabled"`
	CacheSize int   `yaml:"cacheSize" json:"cacheSize"`
	TTLMillis int64 `yaml:"ttlMs" json:"ttlMs"`
}

// RulesConfig aggregates every checker's configuration. A nil entry disables
// that checker.
type RulesConfig struct {
	NoWhere               *NoWhereConfig               `yaml:"noWhere" json:"noWhere"`
	DummyCondition        *DummyConditionConfig        `yaml:"dummyCondition" json:"dummyCondition"`
	BlacklistFields       *BlacklistFieldsConfig       `yaml:"blacklistFields" json:"blacklistFields"`
	WhitelistFields       *WhitelistFieldsConfig       `yaml:"whitelistFields" json:"whitelistFields"`
	MultiStatement        *MultiStatementConfig        `yaml:"multiStatement" json:"multiStatement"`
	SQLComment            *SQLCommentConfig            `yaml:"sqlComment" json:"sqlComment"`
	IntoOutfile           *IntoOutfileConfig           `yaml:"intoOutfile" json:"intoOutfile"`
	DangerousFunction     *DangerousFunctionConfig     `yaml:"dangerousFunction" json:"dangerousFunction"`
	DeniedTable           *DeniedTableConfig           `yaml:"deniedTable" json:"deniedTable"`
	ReadOnlyTable         *ReadOnlyTableConfig         `yaml:"readOnlyTable" json:"readOnlyTable"`
	NoPagination          *NoPaginationConfig          `yaml:"noPagination" json:"noPagination"`
	LogicalPagination     *LogicalPaginationConfig     `yaml:"logicalPagination" json:"logicalPagination"`
	NoConditionPagination *NoConditionPaginationConfig `yaml:"noConditionPagination" json:"noConditionPagination"`
	DeepPagination        *DeepPaginationConfig        `yaml:"deepPagination" json:"deepPagination"`
	LargePageSize         *LargePageSizeConfig         `yaml:"largePageSize" json:"largePageSize"`
	MissingOrderBy        *MissingOrderByConfig        `yaml:"missingOrderBy" json:"missingOrderBy"`
}

// Config is the root configuration object. It is read-only for the lifetime
// of a validation run; reloads swap the whole object through a Holder.
type Config struct {
	Enabled  bool              `yaml:"enabled" json:"enabled"`
	Strategy ViolationStrategy `yaml:"violationStrategy" json:"violationStrategy"`
	Dedup    DedupConfig       `yaml:"deduplication" json:"deduplication"`
	Rules    RulesConfig       `yaml:"rules" json:"rules"`
}

// Default returns a configuration with every checker enabled and default
// thresholds.
func Default() *Config {
	return &Config{
		Enabled:  true,
		Strategy: StrategyBlock,
		Dedup: DedupConfig{
			Enabled:   true,
			CacheSize: 1000,
			TTLMillis: 100,
		},
		Rules: RulesConfig{
			NoWhere: &NoWhereConfig{Enabled: true},
			DummyCondition: &DummyConditionConfig{
				Enabled:  true,
				Level:    types.RiskHigh,
				Patterns: DefaultDummyPatterns,
			},
			BlacklistFields: &BlacklistFieldsConfig{
				Enabled: true,
				Level:   types.RiskLow,
				Fields:  []string{"status", "type", "deleted", "create_*", "update_*"},
			},
			WhitelistFields: &WhitelistFieldsConfig{Enabled: false},
			MultiStatement:  &MultiStatementConfig{Enabled: true},
			SQLComment:      &SQLCommentConfig{Enabled: true, AllowHints: true},
			IntoOutfile:     &IntoOutfileConfig{Enabled: true},
			DangerousFunction: &DangerousFunctionConfig{
				Enabled:   true,
				Functions: DefaultDeniedFunctions,
			},
			DeniedTable:   &DeniedTableConfig{Enabled: true},
			ReadOnlyTable: &ReadOnlyTableConfig{Enabled: true},
			NoPagination: &NoPaginationConfig{
				Enabled:         true,
				UniqueKeyFields: []string{"id"},
			},
			LogicalPagination:     &LogicalPaginationConfig{Enabled: true},
			NoConditionPagination: &NoConditionPaginationConfig{Enabled: true, Level: types.RiskCritical},
			DeepPagination:        &DeepPaginationConfig{Enabled: true, MaxOffset: DefaultMaxOffset},
			LargePageSize:         &LargePageSizeConfig{Enabled: true, MaxPageSize: DefaultMaxPageSize},
			MissingOrderBy:        &MissingOrderByConfig{Enabled: true},
		},
	}
}

// LoadFromFile reads a Config from a YAML or JSON file and validates it.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", filename)
	}

	var cfg Config
	// YAML first, JSON as fallback for tooling that emits it.
	if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return nil, errors.Wrapf(yamlErr, "parse config file %s", filename)
		}
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", filename)
	}
	return &cfg, nil
}

// applyDefaults fills zero-value thresholds on enabled checkers so a file
// can flip a checker on without restating every default.
func applyDefaults(cfg *Config) {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyBlock
	}
	if cfg.Dedup.Enabled {
		if cfg.Dedup.CacheSize == 0 {
			cfg.Dedup.CacheSize = 1000
		}
		if cfg.Dedup.TTLMillis == 0 {
			cfg.Dedup.TTLMillis = 100
		}
	}
	if c := cfg.Rules.DummyCondition; c != nil {
		if c.Level == types.RiskSafe {
			c.Level = types.RiskHigh
		}
		if len(c.Patterns) == 0 {
			c.Patterns = DefaultDummyPatterns
		}
	}
	if c := cfg.Rules.BlacklistFields; c != nil && c.Level == types.RiskSafe {
		c.Level = types.RiskLow
	}
	if c := cfg.Rules.DangerousFunction; c != nil && len(c.Functions) == 0 {
		c.Functions = DefaultDeniedFunctions
	}
	if c := cfg.Rules.NoConditionPagination; c != nil && c.Level == types.RiskSafe {
		c.Level = types.RiskCritical
	}
	if c := cfg.Rules.NoPagination; c != nil && len(c.UniqueKeyFields) == 0 {
		c.UniqueKeyFields = []string{"id"}
	}
	if c := cfg.Rules.DeepPagination; c != nil && c.MaxOffset == 0 {
		c.MaxOffset = DefaultMaxOffset
	}
	if c := cfg.Rules.LargePageSize; c != nil && c.MaxPageSize == 0 {
		c.MaxPageSize = DefaultMaxPageSize
	}
}

// Validate fails fast on misconfiguration so no statement is ever checked
// against a half-valid rule set.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyBlock, StrategyWarn, StrategyLog:
	default:
		return errors.Errorf("violationStrategy must be one of [BLOCK, WARN, LOG], got %q", c.Strategy)
	}
	if c.Dedup.Enabled {
		if c.Dedup.CacheSize <= 0 {
			return errors.Errorf("deduplication.cacheSize must be > 0, got %d", c.Dedup.CacheSize)
		}
		if c.Dedup.TTLMillis <= 0 {
			return errors.Errorf("deduplication.ttlMs must be > 0, got %d", c.Dedup.TTLMillis)
		}
	}
	if dc := c.Rules.DummyCondition; dc.IsEnabled() {
		if len(dc.Patterns) == 0 && len(dc.CustomPatterns) == 0 {
			return errors.New("dummyCondition.patterns or customPatterns must not be empty when the rule is enabled")
		}
	}
	if dp := c.Rules.DeepPagination; dp.IsEnabled() && dp.MaxOffset <= 0 {
		return errors.Errorf("deepPagination.maxOffset must be > 0, got %d", dp.MaxOffset)
	}
	if lp := c.Rules.LargePageSize; lp.IsEnabled() && lp.MaxPageSize <= 0 {
		return errors.Errorf("largePageSize.maxPageSize must be > 0, got %d", lp.MaxPageSize)
	}
	if wf := c.Rules.WhitelistFields; wf.IsEnabled() && wf.EnforceForUnknownTables && len(wf.Fields) == 0 {
		return errors.New("whitelistFields.fields must not be empty when enforceForUnknownTables is set")
	}
	return nil
}

// Holder supports hot reload as an atomic swap of the whole Config, so a
// validation pass in flight always observes one consistent snapshot.
type Holder struct {
	current atomic.Pointer[Config]
}

// NewHolder seeds a holder with the initial configuration.
func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	h.current.Store(cfg)
	return h
}

// Load returns the current configuration snapshot.
func (h *Holder) Load() *Config {
	return h.current.Load()
}

// Swap replaces the configuration after validating the replacement.
func (h *Holder) Swap(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "rejecting config swap")
	}
	h.current.Store(cfg)
	return nil
}
