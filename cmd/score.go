package cmd

import (
	"context"
	"log"
	"os"

	"github.com/familiarcat/candid-sub002/internal/logger"
	"github.com/familiarcat/candid-sub002/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score <job-seeker-key> <hiring-authority-key>",
	Short: "Score a single job seeker against a hiring authority",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("dataset", "f", "", "a dataset export file. Overrides the config.")
}

// score explains one pairing: every factor, its weight and the reasons.
func score(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	source, ds, err := loadDataset(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal(
			"loading the dataset",
			zap.Error(err),
			zap.String("hint", "set the --dataset flag, the CANDID_DATASET_FILE environment variable or the 'dataset' section in the configuration file"),
		)
	}

	for _, pruneErr := range ds.Prune() {
		logger.Warn("dropping invalid record", zap.Error(pruneErr))
	}

	logger.Debug("dataset loaded", zap.String("source", source))

	seeker := ds.JobSeekers.FindByKey(args[0])
	if seeker == nil {
		logger.Fatal("job seeker with given key not found",
			zap.String("job seeker key", args[0]),
			zap.Any("existed job seeker keys", ds.JobSeekers.Keys()),
		)
	}

	authority := ds.HiringAuthorities.FindByKey(args[1])
	if authority == nil {
		logger.Fatal("hiring authority with given key not found",
			zap.String("hiring authority key", args[1]),
			zap.Any("existed hiring authority keys", ds.HiringAuthorities.Keys()),
		)
	}

	company := ds.Companies.Resolve(authority.CompanyID)
	if company == nil {
		logger.Debug("company is not resolvable, scoring without company context",
			zap.String("company_id", authority.CompanyID),
		)
	}

	scorer, err := buildScorer(config, logger)
	if err != nil {
		logger.Fatal("building the scorer", zap.Error(err))
	}

	match := scorer.Score(seeker, authority, company)

	if err := report.Breakdown(os.Stdout, match); err != nil {
		logger.Fatal("rendering the breakdown", zap.Error(err))
	}
}
