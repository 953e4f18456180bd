package cli

import (
	"fmt"
	"os"

	"github.com/danmuck/scadmin/internal/config"
	"github.com/danmuck/scadmin/internal/logging"
	"github.com/danmuck/scadmin/internal/output"
	"github.com/danmuck/scadmin/internal/protocol/codec"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	cfgFile    string
	outputFmt  string
	apiVersion int16
	logLevel   string

	cfg       config.Config
	formatter output.Formatter
}

// NewRootCmd builds a fresh scadminctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "scadminctl",
		Short: "Encode, decode and serve control-plane admin delete requests",
		Long: `scadminctl works with the admin delete request wire format: it encodes
requests for topics, custom SPUs and SPU groups, decodes captured payloads
or frames, and answers a single request frame in dry-run mode.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "TOML config file")
	root.PersistentFlags().StringVarP(&a.outputFmt, "output", "o", "", "output format: text, json, yaml")
	root.PersistentFlags().Int16Var(&a.apiVersion, "api-version", 0, "protocol version used for encode/decode")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")

	root.AddCommand(
		a.encodeCmd(),
		a.decodeCmd(),
		a.labelsCmd(),
		a.serveOnceCmd(),
		configCmd(),
	)
	return root
}

// Execute runs scadminctl with the process arguments.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = a.outputFmt
	}
	if flags.Changed("api-version") {
		cfg.APIVersion = codec.Version(a.apiVersion)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	zerolog.SetGlobalLevel(resolveLevel(cfg.LogLevel, flags.Changed("log-level")))

	a.cfg = cfg
	a.formatter = output.NewFormatter(cfg.Output)
	return nil
}

// resolveLevel orders level sources as flag, then SCADMIN_LOG_LEVEL, then
// the config file or default.
func resolveLevel(configured string, fromFlag bool) zerolog.Level {
	level, _ := logging.ParseLevel(configured)
	if fromFlag {
		return level
	}
	if env, ok := logging.EnvLevel(); ok {
		return env
	}
	return level
}
