package rules

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/nsxbet/sql-guard/pkg/checker"
	"github.com/nsxbet/sql-guard/pkg/config"
	"github.com/nsxbet/sql-guard/pkg/sqlparser"
	"github.com/nsxbet/sql-guard/pkg/statement"
	"github.com/nsxbet/sql-guard/pkg/types"
)

// NewDangerousFunction flags calls to denied functions anywhere in a
// statement: file access (load_file), command execution (sys_exec,
// xp_cmdshell), and time delays (sleep, benchmark, pg_sleep). One
// violation per distinct function found.
func NewDangerousFunction(cfg *config.DangerousFunctionConfig) checker.Checker {
	c := &dangerousFunction{cfg: cfg, denied: map[string]bool{}}
	if cfg != nil {
		for _, name := range cfg.Functions {
			c.denied[strings.ToLower(name)] = true
		}
	}
	c.Base = checker.NewBase("dangerous-function", cfg.IsEnabled, c)
	return c
}

type dangerousFunction struct {
	*checker.Base
	checker.NoHooks
	cfg    *config.DangerousFunctionConfig
	denied map[string]bool
}

func (c *dangerousFunction) OnSelect(run *checker.Run, stmt *ast.SelectStmt, _ *statement.Context) {
	c.checkFunctions(run, stmt)
}

func (c *dangerousFunction) OnUpdate(run *checker.Run, stmt *ast.UpdateStmt, _ *statement.Context) {
	c.checkFunctions(run, stmt)
}

func (c *dangerousFunction) OnDelete(run *checker.Run, stmt *ast.DeleteStmt, _ *statement.Context) {
	c.checkFunctions(run, stmt)
}

func (c *dangerousFunction) OnInsert(run *checker.Run, stmt *ast.InsertStmt, _ *statement.Context) {
	c.checkFunctions(run, stmt)
}

func (c *dangerousFunction) checkFunctions(run *checker.Run, stmt ast.StmtNode) {
	if len(c.denied) == 0 {
		return
	}
	for _, name := range sqlparser.ExtractFunctionNames(stmt) {
		if c.denied[name] {
			run.AddViolation(types.RiskCritical,
				fmt.Sprintf("dangerous function call detected: %s", name),
				fmt.Sprintf("Remove the %s call or replace it with a safe alternative", name))
		}
	}
}
