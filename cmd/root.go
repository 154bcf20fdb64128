package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sql-guard",
	Short: "A risk validation tool for runtime SQL",
	Long: `sql-guard analyzes DML statements against configurable risk rules:
missing WHERE clauses, dummy conditions, low-selectivity filters, and
unsafe pagination patterns such as logical pagination, deep offsets, and
oversized pages.

It is the same engine applications embed at the ORM or driver layer,
exposed as a command line for CI pipelines and ad-hoc review.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sql-guard.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sql-guard" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sql-guard")
	}

	viper.SetEnvPrefix("SQLGUARD")
	viper.AutomaticEnv() // read in environment variables that match

	// A missing config file is fine; flags and defaults cover everything.
	_ = viper.ReadInConfig()
}
