package rules

import (
	"fmt"
	"regexp"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// The quoted path is captured for the violation message. Oracle-style
// SELECT ... INTO variable assignment carries no quoted path and never
// matches.
var (
	intoOutfilePattern  = regexp.MustCompile(`(?i)\binto\s+outfile\s+['"]([^'"]*)['"]`)
	intoDumpfilePattern = regexp.MustCompile(`(?i)\binto\s+dumpfile\s+['"]([^'"]*)['"]`)
)

// NewIntoOutfile flags MySQL file-write clauses (INTO OUTFILE, INTO
// DUMPFILE), an arbitrary-file-write and data-exfiltration vector. The
// clause is MySQL-specific syntax that not every parser accepts, so
// detection works on the raw text.
func NewIntoOutfile(cfg *config.IntoOutfileConfig) checker.Checker {
	c := &intoOutfile{cfg: cfg}
	c.Base = checker.NewBase("into-outfile", cfg.IsEnabled, c)
	return c
}

type intoOutfile struct {
	*checker.Base
	checker.NoHooks
	cfg *config.IntoOutfileConfig
}

func (c *intoOutfile) OnRawSQL(run *checker.Run, ctx *statement.Context) {
	if m := intoOutfilePattern.FindStringSubmatch(ctx.SQL); m != nil {
		run.AddViolation(types.RiskCritical,
			fmt.Sprintf("file write detected: INTO OUTFILE '%s'", m[1]),
			"Remove the INTO OUTFILE clause; export data through the application layer")
		return
	}
	if m := intoDumpfilePattern.FindStringSubmatch(ctx.SQL); m != nil {
		run.AddViolation(types.RiskCritical,
			fmt.Sprintf("file write detected: INTO DUMPFILE '%s'", m[1]),
			"Remove the INTO DUMPFILE clause; export data through the application layer")
	}
}
