package cmd

import (
	"context"
	"log"
	"os"

	"github.com/familiarcat/candid-sub002/internal/logger"
	"github.com/familiarcat/candid-sub002/internal/report"
	"github.com/familiarcat/candid-sub002/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved match runs",
	Run: func(cmd *cobra.Command, _ []string) {
		history(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 10, "number of runs to show, 0 for all")
	historyCmd.Flags().String("run", "", "show the matches of one saved run by its id")
}

func history(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	path := storePath(config)

	st, err := store.Open(path)
	if err != nil {
		logger.Fatal("opening the store",
			zap.Error(err),
			zap.String("store", path),
			zap.String("hint", "set the 'store.path' key in the configuration file"),
		)
	}
	defer st.Close()

	if runID := cmd.Flag("run").Value.String(); runID != "" {
		showRun(ctx, st, runID, logger)
		return
	}

	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		logger.Fatal("listing saved runs", zap.Error(err))
	}

	if len(runs) == 0 {
		logger.Info("exiting", zap.String("reason", "no saved runs yet"))
		return
	}

	if err := report.Runs(os.Stdout, runs); err != nil {
		logger.Fatal("rendering the run table", zap.Error(err))
	}
}

func showRun(ctx context.Context, st *store.Store, runID string, logger *zap.Logger) {
	run, err := st.GetRun(ctx, runID)
	if err != nil {
		logger.Fatal("getting the run", zap.Error(err), zap.String("run_id", runID))
	}

	if run == nil {
		logger.Fatal("run with given id not found", zap.String("run_id", runID))
	}

	logger.Info("showing saved run",
		zap.String("run_id", run.ID),
		zap.Time("created_at", run.CreatedAt),
		zap.String("source", run.Source),
		zap.Int("matches", run.Matches),
		zap.Int("recommended", run.Recommended),
	)

	matches, err := st.RunMatches(ctx, runID)
	if err != nil {
		logger.Fatal("getting the run matches", zap.Error(err))
	}

	if err := report.Matches(os.Stdout, matches, 0); err != nil {
		logger.Fatal("rendering the match table", zap.Error(err))
	}
}
