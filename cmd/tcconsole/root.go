package main

import (
	"os"

	"github.com/spf13/cobra"
)

// options holds the root command's flag values.
type options struct {
	configPath string
	mode       string
	headless   bool
	sets       []string
	execs      []string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "tcconsole",
	Short: "Team-Capture command console",
	Long: `tcconsole runs the game's command console. Lines read from standard input
are executed as console commands; a line ending in TAB completes a command
name. Batch files are resolved as <config_dir>/<name>.cfg.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, opts)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to configuration file; empty uses defaults and TCCONSOLE_* environment")
	flags.StringVar(&opts.mode, "mode", "", "run mode override: offline, client or server")
	flags.BoolVar(&opts.headless, "headless", false, "skip graphics-only commands and variables")
	flags.StringArrayVar(&opts.sets, "set", nil, "assign a variable at launch, as name=value (repeatable)")
	flags.StringArrayVar(&opts.execs, "exec", nil, "batch file to run after autoexec (repeatable)")
}
