package main

import (
	"context"
	"fmt"
	"os"

	"goperiod/adapters/excel"
	"goperiod/adapters/export"
	"goperiod/adapters/postgres"
	"goperiod/app"
	"goperiod/domain/core"
	"goperiod/domain/grid"
	"goperiod/internal"
	"goperiod/internal/config"
	"goperiod/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "goperiod",
		Short: "Dominant return-period detection for extreme-event time series",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newGridCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var dataFile string
	var detrend bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze indicator series for dominant return periods",
		Long: `Read indicator time series from an Excel or CSV file, autocorrelate each
observation window and detect the dominant return period.

Example: goperiod analyze --data events.xlsx --detrend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.Data.InputFile = dataFile
			}
			if cmd.Flags().Changed("detrend") {
				cfg.Analysis.Detrend = detrend
			}
			if cfg.Data.InputFile == "" {
				return fmt.Errorf("no input file: set DATA_FILE or pass --data")
			}
			return runAnalyze(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Input Excel or CSV file")
	cmd.Flags().BoolVar(&detrend, "detrend", false, "Remove the linear slope before detection")

	return cmd
}

func newGridCmd() *cobra.Command {
	var dataFile string
	var outFile string
	var workers int
	var detrend bool

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Run the detection over a gridded field of indicator cells",
		Long: `Treat each event column of the input file as one grid cell of a single
row and run the detection on every cell in parallel. Results are written
as one CSV row per cell.

Example: goperiod grid --data field.csv --out grid_results.csv --workers 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.Data.InputFile = dataFile
			}
			if workers > 0 {
				cfg.Analysis.Workers = workers
			}
			if cfg.Data.InputFile == "" {
				return fmt.Errorf("no input file: set DATA_FILE or pass --data")
			}
			return runGrid(cmd.Context(), cfg, outFile, detrend)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Input Excel or CSV file")
	cmd.Flags().StringVar(&outFile, "out", "grid_results.csv", "Output CSV file")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent cells (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&detrend, "detrend", false, "Remove the linear slope before detection")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config) error {
	logger := internal.NewDefaultLogger()

	store, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	source := excel.NewDataReader(cfg.Data.InputFile)
	service := app.NewAnalysisService(source, store, logger, cfg.Params(), cfg.Analysis.ReferenceTimes)

	summary, err := service.Run(ctx, cfg.Analysis.Detrend)
	if err != nil {
		return err
	}

	fmt.Printf("indicators: %d\nwindows:    %d\nperiodic:   %d\nskipped:    %d\n",
		summary.Indicators, summary.Windows, summary.Periodic, summary.SkippedGaps)
	if summary.Periodic > 0 {
		fmt.Printf("mean period: %.2f\nmean adj r2: %.3f\n", summary.MeanPeriod, summary.MeanAdjR2)
	}
	return nil
}

func runGrid(ctx context.Context, cfg *config.Config, outFile string, detrend bool) error {
	logger := internal.NewDefaultLogger()

	source := excel.NewDataReader(cfg.Data.InputFile)
	indicators, err := source.Indicators(ctx)
	if err != nil {
		return err
	}
	if len(indicators) == 0 {
		return core.ErrEventNotFound
	}

	// One row, one cell per event column; each cell's window starts at the
	// series' own first year.
	batch := make(grid.Batch, 1)
	for _, ind := range indicators {
		w, err := ind.Window(core.ReferenceTime(ind.Start), cfg.Analysis.WindowHalfLen)
		if err != nil {
			return fmt.Errorf("series %s too short for window: %w", ind.Event, err)
		}
		batch[0] = append(batch[0], w)
	}

	results, err := grid.AnalyzeAuto(ctx, batch, cfg.Params(), grid.Options{
		Workers:      cfg.Analysis.Workers,
		DetrendSlope: detrend,
	})
	if err != nil {
		return err
	}

	if err := export.WriteGridResults(outFile, results); err != nil {
		return err
	}
	logger.Info("grid results written to %s (%d cells)", outFile, len(results[0]))

	periodic := 0
	for _, res := range results[0] {
		if res.HasPeriod() {
			periodic++
		}
	}
	fmt.Printf("cells:    %d\nperiodic: %d\n", len(results[0]), periodic)
	return nil
}

// buildStore prefers Postgres when DATABASE_URL is set, falling back to CSV
// files in the output directory.
func buildStore(ctx context.Context, cfg *config.Config, logger *internal.Logger) (ports.ResultStore, func(), error) {
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("storing results in Postgres")
		return postgres.NewDecisionRepository(db), func() { db.Close() }, nil
	}

	store, err := export.NewCSVStore(cfg.Data.OutputDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("storing results as CSV under %s", cfg.Data.OutputDir)
	return store, func() {}, nil
}
