// Package cli implements the scaffoldsieve command tree: global flags,
// configuration and logger initialisation, and output rendering shared by
// every subcommand.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/ScaffoldSieve/internal/config"
	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	Verbose      bool
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "scaffoldsieve",
		Short: "Screen candidate molecules by scaffold and exclusion patterns",
		Long: "ScaffoldSieve loads a table of candidate molecules, keeps those carrying the\n" +
			"required scaffold, drops those with excluded groups such as carboxylates, and\n" +
			"reports how many molecules survive.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./scaffoldsieve.yaml, then ~/.scaffoldsieve/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "", "output format (text, json, yaml, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		NewFilterCmd(),
		NewMatchCmd(),
		NewPatternsCmd(),
	)
	return cmd
}

// persistentPreRun initializes config and logger, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := initConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg, opts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "logger initialization failed")
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: cfg.Output.Format,
		Verbose:      opts.Verbose,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format = strings.ToLower(opts.OutputFormat)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initLogger creates a logger configured for CLI usage (output to stderr).
func initLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	level := logging.ParseLevel(cfg.Log.Level)
	if opts.Verbose {
		level = logging.LevelDebug
	}

	logCfg := logging.LogConfig{
		Level:            level,
		Format:           cfg.Log.Format,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return logging.NewLogger(logCfg)
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.NewValidationError("context", "command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.NewValidationError("context", "CLIContext not found in command context")
	}

	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}

	return nil
}

// PrintResult outputs data in the format specified by CLIContext.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		// Fallback to JSON if context unavailable.
		return printJSON(cmd, data)
	}

	switch strings.ToLower(cliCtx.OutputFormat) {
	case config.FormatJSON:
		return printJSON(cmd, data)
	case config.FormatYAML:
		return printYAML(cmd, data)
	case config.FormatTable:
		return printTable(cmd, data)
	default:
		return printText(cmd, data)
	}
}

// printJSON outputs data as indented JSON to stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode JSON output")
	}
	return nil
}

// printYAML outputs data as YAML to stdout.
func printYAML(cmd *cobra.Command, data interface{}) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode YAML output")
	}
	return enc.Close()
}

// printText outputs data as a simple string representation to stdout.
func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

// tableProvider is implemented by results that render as a grid.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// footerProvider adds free-form lines under a table.
type footerProvider interface {
	TableFooter() []string
}

// printTable outputs data as a table if it implements tableProvider,
// otherwise falls back to text.
func printTable(cmd *cobra.Command, data interface{}) error {
	tp, ok := data.(tableProvider)
	if !ok {
		return printText(cmd, data)
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, FormatTable(tp.TableHeaders(), tp.TableRows()))
	if fp, ok := data.(footerProvider); ok {
		for _, line := range fp.TableFooter() {
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	// Compute column widths.
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			if len(row[i]) > colWidths[i] {
				colWidths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, colWidths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(colWidths))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

// padRight pads s with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

//Personal.AI order the ending
