package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gosuda/tarobot/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tarobot",
	Short: "Run and inspect robot programs",
	Long: `tarobot runs programs written in the robot scripting language against a
simulated maze robot.

Commands:
  run     - execute a program, optionally animated in the terminal
  check   - report syntax errors without running
  tokens  - print the token stream
  ast     - print the syntax tree and procedure table`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(newRunCmd(), newCheckCmd(), newTokensCmd(), newASTCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errStyle.Render("error:"), err)
		os.Exit(1)
	}
}

// setup loads the config file and builds the stderr logger.
func setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel()
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "tarobot",
	})
	return cfg, logger, nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(b), nil
}
