package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/ScaffoldSieve/internal/application/screening"
	"github.com/turtacn/ScaffoldSieve/internal/config"
	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/prometheus"
	miniostore "github.com/turtacn/ScaffoldSieve/internal/infrastructure/storage/minio"
	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/tabular"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// FilterOptions holds flags of the filter command.  Set flags override the
// matching config keys.
type FilterOptions struct {
	Delimiter       string
	Encoding        string
	SMILESColumn    string
	Export          string
	ExportDelimiter string
	Workers         int
	MetricsTextfile string
	Watch           bool
	WatchDebounce   time.Duration
}

// NewFilterCmd creates the filter command.
func NewFilterCmd() *cobra.Command {
	opts := &FilterOptions{}

	cmd := &cobra.Command{
		Use:   "filter [INPUT]",
		Short: "Screen a candidate table and report surviving molecules",
		Long: "Load INPUT (a local path, - for stdin, or an s3://bucket/key URI), keep the\n" +
			"molecules that pass every configured screening stage and print the counts.\n" +
			"INPUT defaults to input.path from the configuration.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Delimiter, "delimiter", "", "input field delimiter (default: tab for .tsv, comma otherwise)")
	f.StringVar(&opts.Encoding, "encoding", "", "input text encoding (utf-8, latin1, windows-1252)")
	f.StringVar(&opts.SMILESColumn, "smiles-column", "", "name of the SMILES column")
	f.StringVar(&opts.Export, "export", "", "write surviving rows to this path or s3:// URI")
	f.StringVar(&opts.ExportDelimiter, "export-delimiter", "", "field delimiter for --export")
	f.IntVar(&opts.Workers, "workers", 0, "parallel workers (default: GOMAXPROCS)")
	f.StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
	f.BoolVar(&opts.Watch, "watch", false, "rerun the screening whenever the local input file changes")
	f.DurationVar(&opts.WatchDebounce, "watch-debounce", defaultWatchDebounce, "quiet period before a rerun in --watch mode")

	return cmd
}

func runFilter(cmd *cobra.Command, opts *FilterOptions, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := applyFilterFlags(cmd, *cliCtx.Config, opts, args)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.Watch && !watchable(cfg.Input.Path) {
		return errors.New(errors.ErrCodeConfigInvalid, "config: --watch requires a local input path").WithDetail("path=" + cfg.Input.Path)
	}
	log := cliCtx.Logger
	ctx := cmd.Context()

	stages, err := screening.StagesFromConfig(cfg.Screening.Stages)
	if err != nil {
		return err
	}

	router, err := buildRouter(cmd, &cfg, log)
	if err != nil {
		return err
	}

	loader, err := tabular.NewFileLoader(router, cfg.Input.Path, tabular.LoaderOptions{
		Delimiter:    cfg.Input.Delimiter,
		Encoding:     cfg.Input.Encoding,
		SMILESColumn: cfg.Input.SMILESColumn,
	}, log)
	if err != nil {
		return err
	}

	collector, recorder, err := buildMetrics(&cfg, log)
	if err != nil {
		return err
	}

	pipeline, err := screening.NewPipeline(loader, stages, screening.Options{
		Workers:   cfg.Pipeline.Workers,
		ChunkSize: cfg.Pipeline.ChunkSize,
	}, recorder, log)
	if err != nil {
		return err
	}

	runOnce := func(ctx context.Context) error {
		result, runErr := pipeline.Run(ctx)
		if collector != nil {
			writeTextfile(collector, cfg.Metrics.Textfile, log)
		}
		if runErr != nil {
			return runErr
		}

		// Keep stdout clean for exported rows.
		if cfg.Output.Export == tabular.StdioLocation {
			cmd.SetOut(cmd.ErrOrStderr())
		}
		if err := PrintResult(cmd, result.Report); err != nil {
			return err
		}

		if cfg.Output.Export != "" {
			if err := tabular.Export(ctx, router, cfg.Output.Export, cfg.Output.ExportDelimiter, result.Survivors); err != nil {
				return err
			}
			log.Info("Exported surviving records",
				logging.String("location", cfg.Output.Export),
				logging.Int("records", result.Survivors.Len()))
		}
		return nil
	}

	if !opts.Watch {
		return runOnce(ctx)
	}
	if err := runOnce(ctx); err != nil {
		PrintError(cmd, err)
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return watchInput(ctx, cfg.Input.Path, opts.WatchDebounce, log, runOnce)
}

// applyFilterFlags returns a copy of cfg with the positional input and any
// explicitly set flags applied.
func applyFilterFlags(cmd *cobra.Command, cfg config.Config, opts *FilterOptions, args []string) config.Config {
	if len(args) == 1 {
		cfg.Input.Path = args[0]
	}
	f := cmd.Flags()
	if f.Changed("delimiter") {
		cfg.Input.Delimiter = opts.Delimiter
	}
	if f.Changed("encoding") {
		cfg.Input.Encoding = opts.Encoding
	}
	if f.Changed("smiles-column") {
		cfg.Input.SMILESColumn = opts.SMILESColumn
	}
	if f.Changed("export") {
		cfg.Output.Export = opts.Export
	}
	if f.Changed("export-delimiter") {
		cfg.Output.ExportDelimiter = opts.ExportDelimiter
	}
	if f.Changed("workers") {
		cfg.Pipeline.Workers = opts.Workers
	}
	if f.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = opts.MetricsTextfile
		cfg.Metrics.Enabled = opts.MetricsTextfile != ""
	}
	return cfg
}

// buildRouter serves local paths and the standard streams, plus s3:// when
// any configured location needs it.
func buildRouter(cmd *cobra.Command, cfg *config.Config, log logging.Logger) (*tabular.Router, error) {
	router := tabular.NewRouter(&tabular.LocalStore{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout()})
	if !cfg.NeedsObjectStorage() {
		return router, nil
	}
	client, err := miniostore.NewMinIOClient(&miniostore.MinIOConfig{
		Endpoint:        cfg.Storage.MinIO.Endpoint,
		AccessKeyID:     cfg.Storage.MinIO.AccessKey,
		SecretAccessKey: cfg.Storage.MinIO.SecretKey,
		UseSSL:          cfg.Storage.MinIO.UseSSL,
		Region:          cfg.Storage.MinIO.Region,
		CreateBucket:    cfg.Storage.MinIO.CreateBucket,
	}, log)
	if err != nil {
		return nil, err
	}
	router.Register(miniostore.Scheme, miniostore.NewObjectStore(client, log))
	return router, nil
}

// buildMetrics returns a nil collector and recorder when metrics are off.
func buildMetrics(cfg *config.Config, log logging.Logger) (prometheus.MetricsCollector, screening.MetricsRecorder, error) {
	if !cfg.Metrics.Enabled {
		return nil, nil, nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: cfg.Metrics.Namespace,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return collector, prometheus.NewSieveMetrics(collector), nil
}

func writeTextfile(collector prometheus.MetricsCollector, path string, log logging.Logger) {
	if path == "" {
		return
	}
	if err := collector.WriteTextfile(path); err != nil {
		log.Warn("Failed to write metrics textfile", logging.String("path", path), logging.Err(err))
		return
	}
	log.Debug("Wrote metrics textfile", logging.String("path", path))
}

//Personal.AI order the ending
