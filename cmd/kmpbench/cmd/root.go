package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coregx/kmp/internal/config"
	"github.com/coregx/kmp/internal/logging"
)

// globals holds the persistent flags and the configuration they resolve to.
type globals struct {
	configPath string
	logLevel   string
	color      string

	cfg config.Config
}

// NewRootCmd builds the kmpbench command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "kmpbench",
		Short: "Instrumented KMP substring search",
		Long: "Runs Knuth-Morris-Pratt searches over JSON datasets and reports every match\n" +
			"together with character comparisons, prefix-table steps, fallbacks and resets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&g.color, "color", "", "table colors: auto, always, never")

	root.AddCommand(newRunCmd(g))
	root.AddCommand(newSearchCmd(g))
	root.AddCommand(newLPSCmd(g))
	root.AddCommand(newWatchCmd(g))
	root.AddCommand(newHistoryCmd(g))
	root.AddCommand(newGenerateCmd(g))
	root.AddCommand(newConfigCmd(g))
	return root
}

// resolve loads the configuration file, applies persistent flag overrides
// and initialises logging.
func (g *globals) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.color != "" {
		cfg.Color = g.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	logging.Init(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))
	return nil
}

// Execute runs the root command until completion or an interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}
