package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/clustools"
	"github.com/TrevorS/clustools/internal/config"
	"github.com/TrevorS/clustools/internal/input"
	"github.com/TrevorS/clustools/internal/logging"
	"github.com/TrevorS/clustools/internal/report"
	"github.com/TrevorS/clustools/internal/store"
)

var version = "dev"

type options struct {
	verbose    bool
	configPath string
	file       string
	policy     string
	measure    string
	cutoff     float64
	seed       int64
	maxIter    int
	dbPath     string
	jsonOut    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "clustools",
		Short: "Cluster elements from pairwise scores",
		Long: "clustools reads a file of pairwise scores, normalizes it into a distance matrix " +
			"and clusters it with a hierarchical, SPICKER or k-medoid policy.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCluster(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database recording runs")

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "Score file")
	f.StringVarP(&opts.policy, "policy", "s", "", "Policy name or code (0 hierarchical_cutoff, 1 spicker, 2 kmedoid, 3 strict, 4 upgma)")
	f.StringVarP(&opts.measure, "measure", "m", "", "Score measure (0 distance, 1 similarity)")
	f.Float64VarP(&opts.cutoff, "cutoff", "d", 0, "Cutoff, or cluster count for kmedoid")
	f.Int64Var(&opts.seed, "seed", 0, "k-medoid sampling seed (0 picks one)")
	f.IntVar(&opts.maxIter, "max-iter", 0, "k-medoid iteration cap")
	f.BoolVar(&opts.jsonOut, "json", false, "Print the report as JSON")

	cmd.AddCommand(newVersionCmd(), newInitCmd(), newRunsCmd(opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "clustools", version)
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "clustools.yaml"
			if len(args) == 1 {
				target = args[0]
			}
			if _, err := os.Stat(target); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists: %s\n", target)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config: %s\n", target)
			return nil
		},
	}
}

func newRunsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.Output.Database == "" {
				return fmt.Errorf("%w: no database configured, use --db", clustools.ErrInvalidConfiguration)
			}
			db, err := store.Open(cfg.Output.Database, nil)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.Runs(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tPOLICY\tELEMENTS\tCLUSTERS\tSILHOUETTE\tCONVERGED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.3f\t%s\n",
					r.ID, humanize.Time(r.CreatedAt), r.Policy,
					humanize.Comma(int64(r.Elements)), r.ActiveClusters, r.Silhouette,
					yesNo(r.Converged))
			}
			return tw.Flush()
		},
	}
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Input = opts.file
	}
	if flags.Changed("policy") {
		p, err := parsePolicy(opts.policy)
		if err != nil {
			return nil, err
		}
		cfg.Policy = string(p)
	}
	if flags.Changed("measure") {
		m, err := parseMeasure(opts.measure)
		if err != nil {
			return nil, err
		}
		cfg.Measure = string(m)
	}
	if flags.Changed("cutoff") {
		cfg.Cutoff = opts.cutoff
	}
	if flags.Changed("seed") {
		cfg.KMedoid.Seed = opts.seed
	}
	if flags.Changed("max-iter") {
		cfg.KMedoid.MaxIterations = opts.maxIter
	}
	if flags.Changed("json") && opts.jsonOut {
		cfg.Output.Format = "json"
	}
	if flags.Changed("db") {
		cfg.Output.Database = opts.dbPath
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCluster(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	scores, err := input.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("scores loaded", zap.String("file", cfg.Input), zap.Int("elements", scores.N))

	cc := cfg.Clustering()
	cc.Logger = logger
	res, runErr := clustools.Run(scores.Raw, scores.N, cc)
	switch {
	case errors.Is(runErr, clustools.ErrNonConvergence) && res != nil:
		logger.Warn("k-medoid did not converge, reporting last assignment", zap.Int("iterations", res.Iterations))
	case runErr != nil:
		return runErr
	}

	// A non-converged run is still reported and stored, then fails the command.
	rep := res.Report()
	out := cmd.OutOrStdout()
	if cfg.Output.Format == "json" {
		err = report.WriteJSON(out, rep)
	} else {
		err = report.WriteText(out, rep)
	}
	if err != nil {
		return err
	}

	if cfg.Output.Database != "" {
		if err := saveRun(cmd.Context(), cfg.Output.Database, rep, logger); err != nil {
			return err
		}
	}
	return runErr
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func saveRun(ctx context.Context, path string, rep clustools.Report, logger *zap.Logger) error {
	db, err := store.Open(path, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, rep)
	if err != nil {
		return err
	}
	logger.Info("run saved", zap.String("run", id), zap.String("db", db.Path()))
	return nil
}
