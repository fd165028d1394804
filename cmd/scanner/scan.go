package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goran-ethernal/ChainActivity/internal/aggregator"
	"github.com/goran-ethernal/ChainActivity/internal/chainreader"
	"github.com/goran-ethernal/ChainActivity/internal/common"
	"github.com/goran-ethernal/ChainActivity/internal/config"
	"github.com/goran-ethernal/ChainActivity/internal/db"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/internal/metrics"
	"github.com/goran-ethernal/ChainActivity/internal/report"
	"github.com/goran-ethernal/ChainActivity/internal/rpc"
	"github.com/goran-ethernal/ChainActivity/internal/scanner"
	"github.com/goran-ethernal/ChainActivity/internal/store/instrumented"
	"github.com/goran-ethernal/ChainActivity/internal/store/postgres"
	"github.com/goran-ethernal/ChainActivity/internal/store/sqlite"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
	pkgconfig "github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
	"github.com/spf13/cobra"
)

type scanOptions struct {
	configPath string
	export     bool
	out        string
	driver     string
	dbPath     string
	workers    int
}

func newScanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan <endpoint> [startBlock] [endBlock]",
		Short: "Scan a block range and aggregate activity per address",
		Long: `Scan reads every log in [startBlock, endBlock] from the node at endpoint.
startBlock defaults to 0 and endBlock to "latest". Blocks may be decimal or 0x hex.`,
		Args: cobra.RangeArgs(1, 3), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, from, to, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), banner, version)
			return runScan(ctx, cfg, from, to)
		},
	}

	opts.bind(cmd)
	return cmd
}

func (o *scanOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "path to configuration file (yaml, json or toml)")
	f.BoolVar(&o.export, "export", true, "write the plain-text report")
	f.StringVarP(&o.out, "out", "o", "", "report path (overrides export.path)")
	f.StringVar(&o.driver, "driver", "", "durable store driver: memory, sqlite or postgres")
	f.StringVar(&o.dbPath, "db", "", "SQLite database path, implies --driver=sqlite")
	f.IntVarP(&o.workers, "workers", "w", 0, "concurrent per-log context fetches")
}

// resolve loads the configuration, applies flag and argument overrides and parses the block range.
func (o *scanOptions) resolve(cmd *cobra.Command, args []string) (*pkgconfig.Config, activity.BlockTag,
	activity.BlockTag, error) {
	from, to := activity.BlockNumber(0), activity.LatestBlock()

	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, from, to, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Scanner.RPCURL = args[0]

	if len(args) > 1 {
		if from, err = activity.ParseBlockTag(args[1]); err != nil {
			return nil, from, to, fmt.Errorf("invalid start block: %w", err)
		}
	}
	if len(args) > 2 { //nolint:mnd
		if to, err = activity.ParseBlockTag(args[2]); err != nil {
			return nil, from, to, fmt.Errorf("invalid end block: %w", err)
		}
	}
	if from.IsLatest() {
		return nil, from, to, errors.New("invalid start block: must be a block number")
	}
	if !to.IsLatest() && from.Uint64() > to.Uint64() {
		return nil, from, to, fmt.Errorf("start block %d is after end block %d", from.Uint64(), to.Uint64())
	}

	flags := cmd.Flags()
	if flags.Changed("export") {
		cfg.Export.Enabled = &o.export
	}
	if o.out != "" {
		cfg.Export.Path = o.out
	}
	if o.dbPath != "" {
		cfg.DB.Driver, cfg.DB.Path = pkgconfig.DriverSQLite, o.dbPath
	}
	if o.driver != "" {
		cfg.DB.Driver = o.driver
	}
	if o.workers != 0 {
		cfg.Scanner.Workers, cfg.Scanner.QueueSize = o.workers, 0
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, from, to, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Scanner.RequireEndpoint(); err != nil {
		return nil, from, to, err
	}

	return cfg, from, to, nil
}

func runScan(ctx context.Context, cfg *pkgconfig.Config, from, to activity.BlockTag) error {
	log := logger.NewComponentLoggerFromConfig(common.ComponentScanner, cfg.Logging)
	defer func() { _ = log.Sync() }()

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, log)
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := metricsServer.Stop(context.Background()); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	log.Infow("connecting to Ethereum node", "endpoint", cfg.Scanner.RPCURL)
	client, err := rpc.NewClient(ctx, cfg.Scanner.RPCURL)
	if err != nil {
		return err
	}
	defer client.Close()

	memory := aggregator.NewMemoryBackend()
	backends := []aggregator.Backend{memory}

	durable, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if durable != nil {
		defer durable.close(log)
		backends = append(backends, aggregator.NewDurableBackend(
			durable.store,
			logger.NewComponentLoggerFromConfig(common.ComponentStore, cfg.Logging),
		))
	}

	reader := chainreader.New(client, &cfg.Scanner,
		logger.NewComponentLoggerFromConfig(common.ComponentChainReader, cfg.Logging))
	agg := aggregator.New(logger.NewComponentLoggerFromConfig(common.ComponentAggregator, cfg.Logging), backends...)
	sc := scanner.New(reader, activity.DefaultSignatureTable(), agg, log)

	res, err := sc.Run(ctx, from, to)
	if err != nil {
		return err
	}

	log.Infow("scan finished",
		"from", res.FromBlock, "to", res.ToBlock, "logs", res.Logs, "events", res.Events,
		"skipped", len(res.Failures), "addresses", len(memory.Addresses()),
		"partial", res.Partial, "duration", res.Duration)
	if res.Partial {
		log.Warnw("scan was interrupted, results cover a prefix of the range", "next_block", res.NextBlock)
	}

	if durable != nil && durable.maintenance != nil {
		if err := durable.maintenance.Run(context.WithoutCancel(ctx)); err != nil {
			log.Warnw("database maintenance failed", "error", err)
		}
	}

	if cfg.Export.IsEnabled() {
		exportReport(cfg, res, memory)
	}

	return nil
}

// exportReport writes the report. A failure is logged and leaves the scan result intact.
func exportReport(cfg *pkgconfig.Config, res *scanner.Result, memory *aggregator.MemoryBackend) {
	log := logger.NewComponentLoggerFromConfig(common.ComponentReport, cfg.Logging)

	err := report.Export(cfg.Export.Path, report.Input{
		Source:       memory,
		FromBlock:    res.FromBlock,
		ToBlock:      res.ToBlock,
		Partial:      res.Partial,
		Skipped:      len(res.Failures),
		GeneratedAt:  time.Now().UTC(),
		TopAddresses: cfg.Export.TopAddresses,
		RecentEvents: cfg.Export.RecentEvents,
	})
	if err != nil {
		var exportErr *report.ExportError
		if errors.As(err, &exportErr) {
			log.Errorw("report export failed", "path", exportErr.Path, "error", exportErr.Err)
			return
		}
		log.Errorw("report export failed", "error", err)
		return
	}

	log.Infow("report written", "path", cfg.Export.Path)
}

type durableStore struct {
	store       store.Store
	maintenance *db.Maintenance
}

func (d *durableStore) close(log *logger.Logger) {
	if err := d.store.Close(); err != nil {
		log.Warnw("failed to close store", "error", err)
	}
}

// openStore opens the configured durable store, nil for the memory driver.
func openStore(ctx context.Context, cfg *pkgconfig.Config) (*durableStore, error) {
	log := logger.NewComponentLoggerFromConfig(common.ComponentStore, cfg.Logging)

	switch cfg.DB.Driver {
	case pkgconfig.DriverSQLite:
		s, err := sqlite.Open(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &durableStore{
			store: instrumented.Wrap(s, pkgconfig.DriverSQLite),
			maintenance: db.NewMaintenance(cfg.DB.Path, s.DB(), cfg.DB.Maintenance,
				logger.NewComponentLoggerFromConfig(common.ComponentMaintenance, cfg.Logging)),
		}, nil
	case pkgconfig.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &durableStore{store: instrumented.Wrap(s, pkgconfig.DriverPostgres)}, nil
	default:
		return nil, nil //nolint:nilnil
	}
}
