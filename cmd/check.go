package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/logger"
	"github.com/nsxbet/sql-guard/pkg/pagination"
	"github.com/nsxbet/sql-guard/pkg/report"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
	"github.com/nsxbet/sql-guard/pkg/validator"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <sql-file>...",
	Short: "Check SQL statements against risk rules",
	Long: `Check SQL statements in one or more files against the configured
risk rules.

Each file is split into statements; every statement is validated and the
flagged ones are reported with their risk level and a suggestion.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("rules", "r", "", "path to rules configuration file")
	checkCmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	checkCmd.Flags().String("fail-on", "high", "lowest risk level that fails the run (low, medium, high, critical, never)")

	_ = viper.BindPFlag("rules", checkCmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("output", checkCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("fail-on", checkCmd.Flags().Lookup("fail-on"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	level, err := logger.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	log := logger.NewWithLevel(level)

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	if !cfg.Enabled {
		log.Warn("validation disabled by configuration, nothing to do")
		return nil
	}

	threshold, err := parseFailOn(viper.GetString("fail-on"))
	if err != nil {
		return err
	}

	v := validator.New(cfg, pagination.NewDetector(nil), validator.WithLogger(log.Component("validator")))

	var findings []report.Finding
	worst := types.RiskSafe
	for _, sqlFile := range args {
		fileFindings, err := checkFile(v, sqlFile)
		if err != nil {
			return err
		}
		for _, f := range fileFindings {
			if lvl, perr := types.ParseRiskLevel(f.RiskLevel); perr == nil && lvl > worst {
				worst = lvl
			}
		}
		findings = append(findings, fileFindings...)
	}

	if err := renderFindings(findings, viper.GetString("output")); err != nil {
		return err
	}

	if threshold > types.RiskSafe && worst >= threshold {
		if cfg.Strategy == config.StrategyBlock {
			os.Exit(1)
		}
		log.Warn("risk threshold exceeded but strategy is not block",
			"strategy", cfg.Strategy, "risk", worst.String())
	}
	return nil
}

func checkFile(v *validator.Validator, sqlFile string) ([]report.Finding, error) {
	content, err := os.ReadFile(sqlFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read SQL file: %s", sqlFile)
	}

	stmts, err := sqlparser.New().ParseAll(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse SQL file: %s", sqlFile)
	}

	base := filepath.Base(sqlFile)
	findings := make([]report.Finding, 0, len(stmts))
	for i, stmt := range stmts {
		id := fmt.Sprintf("%s:%d", base, i+1)
		ctx := statement.NewContext(stmt.Text(),
			statement.WithStmt(stmt),
			statement.WithCommand(sqlparser.CommandTypeOf(stmt)),
			statement.WithStatementID(id),
		)
		findings = append(findings, report.NewFinding(id, strings.TrimSpace(stmt.Text()), v.Validate(ctx)))
	}
	return findings, nil
}

func loadConfiguration() (*config.Config, error) {
	rulesPath := viper.GetString("rules")
	if rulesPath != "" {
		return config.LoadFromFile(rulesPath)
	}
	return config.Default(), nil
}

func parseFailOn(s string) (types.RiskLevel, error) {
	if strings.EqualFold(s, "never") {
		return types.RiskSafe, nil
	}
	level, err := types.ParseRiskLevel(strings.ToUpper(s))
	if err != nil {
		return types.RiskSafe, errors.Wrap(err, "invalid --fail-on value")
	}
	return level, nil
}

func renderFindings(findings []report.Finding, format string) error {
	switch format {
	case "json":
		return report.NewJSONReporter(os.Stdout).Render(findings)
	case "text":
		return report.NewConsoleReporter(os.Stdout).Render(findings)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}
