package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/familiarcat/candid-sub002/internal/ai"
	"github.com/familiarcat/candid-sub002/internal/ai/gemini"
	"github.com/familiarcat/candid-sub002/internal/dataset"
	"github.com/familiarcat/candid-sub002/internal/logger"
	"github.com/familiarcat/candid-sub002/internal/matching"
	"github.com/familiarcat/candid-sub002/internal/report"
	"github.com/familiarcat/candid-sub002/internal/secrets"
	"github.com/familiarcat/candid-sub002/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptSaveRun             = "Save run"
	PromptNo                  = "No"
	PromptBack                = "back"
	PromptReportByAuthorities = "Report by authorities"
	PromptInspectMatch        = "Inspect a match"
	PromptComposeIntros       = "Compose intros for recommended matches"
	PromptMatchesToFile       = "Dump matches to file"

	defaultStorePath = "candid-match.db"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the candid-match main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "save the run without asking for confirmation")
	runCmd.Flags().IntP("top", "t", 20, "number of matches to show in the report table, 0 for all")
	runCmd.Flags().StringP("dataset", "f", "", "a dataset export file. Overrides the config.")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the candid-match", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

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

	logger.Info("dataset loaded",
		zap.String("source", source),
		zap.Int("job_seekers", ds.JobSeekers.Len()),
		zap.Int("hiring_authorities", ds.HiringAuthorities.Len()),
		zap.Int("companies", ds.Companies.Len()),
	)

	if ds.JobSeekers.Len() == 0 || ds.HiringAuthorities.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "nothing to score in the dataset"))
		return
	}

	scorer, err := buildScorer(config, logger)
	if err != nil {
		logger.Fatal("building the scorer", zap.Error(err))
	}

	matches, err := scorer.ScoreAll(ctx, ds.JobSeekers, ds.HiringAuthorities, ds.Companies)
	if err != nil {
		logger.Fatal("scoring the dataset", zap.Error(err))
	}

	if matches.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no matches above the score threshold"))
		return
	}

	top, _ := cmd.Flags().GetInt("top")
	if err := report.Matches(os.Stdout, matches, top); err != nil {
		logger.Fatal("rendering the match table", zap.Error(err))
	}

	composer := prepareComposer(ctx, config, logger)

	items := []string{PromptSaveRun, PromptNo, PromptReportByAuthorities, PromptInspectMatch}
	if composer != nil {
		items = append(items, PromptComposeIntros)
	}
	items = append(items, PromptMatchesToFile)

	prompt := promptui.Select{
		Label: "Proceed?",
		Items: items,
	}

	action := PromptSaveRun
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of matches",
			zap.Int("count", matches.Len()),
			zap.Int("recommended", matches.Recommended().Len()),
		)

		if err := handleAction(ctx, action, config, source, ds, matches, composer, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, config *Config, source string, ds *dataset.Dataset, matches *matching.Matches, composer ai.Composer, logger *zap.Logger) error {
	switch action {
	case PromptSaveRun:
		if err := saveRun(ctx, config, source, ds, matches, logger); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByAuthorities:
		return report.ByAuthority(os.Stdout, matches)
	case PromptInspectMatch:
		return inspectMatch(matches)
	case PromptComposeIntros:
		return composeIntros(ctx, composer, ds, matches, logger)
	case PromptMatchesToFile:
		filename, err := matches.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// loadDataset reads the export named by the flag, the environment or the
// config: a local file when one is set, the export endpoint otherwise.
func loadDataset(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (string, *dataset.Dataset, error) {
	file := strings.TrimSpace(cmd.Flag("dataset").Value.String())
	if file == "" {
		file = strings.TrimSpace(viper.GetString("dataset.file"))
	}

	if file != "" {
		ds, err := dataset.Load(file)
		return file, ds, err
	}

	if config.Dataset == nil || strings.TrimSpace(config.Dataset.URL) == "" {
		return "", nil, errors.New("dataset source is not configured")
	}

	url := strings.TrimSpace(config.Dataset.URL)

	token := ""
	if tokenFile := strings.TrimSpace(config.Dataset.TokenFile); tokenFile != "" {
		var err error
		token, err = secrets.Load(secrets.Source{
			Name: "dataset token",
			File: tokenFile,
		})
		if err != nil {
			return "", nil, err
		}
	}

	ds, err := dataset.NewClient(ctx, logger, token).FetchExport(url)
	return url, ds, err
}

func buildScorer(config *Config, logger *zap.Logger) (*matching.Scorer, error) {
	opts := []matching.Option{matching.WithLogger(logger)}

	if config != nil && config.Matching != nil {
		if config.Matching.Workers > 0 {
			opts = append(opts, matching.WithWorkers(config.Matching.Workers))
		}

		if file := strings.TrimSpace(config.Matching.RelationsFile); file != "" {
			relations, err := matching.LoadRelations(file)
			if err != nil {
				return nil, fmt.Errorf("loading skill relations: %w", err)
			}
			opts = append(opts, matching.WithRelations(relations))
		}
	}

	return matching.NewScorer(opts...), nil
}

func storePath(config *Config) string {
	if config != nil && config.Store != nil {
		if path := strings.TrimSpace(config.Store.Path); path != "" {
			return path
		}
	}
	return defaultStorePath
}

func saveRun(ctx context.Context, config *Config, source string, ds *dataset.Dataset, matches *matching.Matches, logger *zap.Logger) error {
	path := storePath(config)

	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening the store: %w", err)
	}
	defer st.Close()

	run := store.NewRun(source, ds, matches)
	if err := st.SaveRun(ctx, run, matches); err != nil {
		return fmt.Errorf("saving the run: %w", err)
	}

	logger.Info("run saved",
		zap.String("run_id", run.ID),
		zap.String("store", path),
		zap.Int("matches", run.Matches),
		zap.Int("recommended", run.Recommended),
	)

	return nil
}

func inspectMatch(matches *matching.Matches) error {
	for {
		items := make([]string, 0, matches.Len())

		for _, match := range matches.Items {
			label := fmt.Sprintf("%s %s -> %s / %d / %s",
				match.Key, match.JobSeekerName, match.AuthorityName, match.Score, match.ConnectionStrength,
			)

			items = append(items, label)
		}

		matchPrompt := promptui.Select{
			Label: "Choose a match and press ENTER",
			Items: append(items, PromptBack),
		}

		_, matchSelected, err := matchPrompt.Run()
		if err != nil {
			return err
		}

		if matchSelected == PromptBack {
			return nil
		}

		matchKey := strings.Split(matchSelected, " ")[0]

		match := matches.FindByKey(matchKey)
		if match == nil {
			return fmt.Errorf("there is no such match key %s", matchKey)
		}

		if err := report.Breakdown(os.Stdout, match); err != nil {
			return err
		}
	}
}

func composeIntros(ctx context.Context, composer ai.Composer, ds *dataset.Dataset, matches *matching.Matches, logger *zap.Logger) error {
	if composer == nil {
		return errors.New("ai composer is not configured")
	}

	recommended := matches.Recommended()
	if recommended.Len() == 0 {
		logger.Info("no recommended matches to compose intros for")
		return nil
	}

	composed := 0
	for _, match := range recommended.Items {
		seeker := ds.JobSeekers.FindByKey(match.JobSeekerKey)
		authority := ds.HiringAuthorities.FindByKey(match.AuthorityKey)

		if seeker == nil || authority == nil {
			logger.Warn("skipping intro for incomplete match", zap.String("match_key", match.Key))
			continue
		}

		intro, err := composer.Compose(ctx, &ai.IntroRequest{
			Seeker:    seeker,
			Authority: authority,
			Company:   ds.Companies.FindByKey(match.CompanyKey),
			Match:     match,
		})
		if err != nil {
			logger.Warn("composing intro failed", zap.String("match_key", match.Key), zap.Error(err))
			continue
		}

		fmt.Printf("\n--- %s -> %s ---\nSubject: %s\n\n%s\n", match.JobSeekerName, match.AuthorityName, intro.Subject, intro.Message)
		composed++
	}

	logger.Info("composed intros", zap.Int("count", composed), zap.Int("recommended", recommended.Len()))
	return nil
}

// prepareComposer builds the intro composer when the ai section enables one.
// A broken AI setup downgrades to a warning: scoring works without it.
func prepareComposer(ctx context.Context, config *Config, logger *zap.Logger) ai.Composer {
	if config == nil || config.AI == nil || !config.AI.Enabled {
		return nil
	}

	composer, err := newAIComposer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping intro composing", zap.Error(err))
		return nil
	}

	return composer
}

func newAIComposer(ctx context.Context, cfg *AIConfig, base *zap.Logger) (ai.Composer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithCommonFields(base, "gemini", cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	composerLogger := logger.WithCommonFields(base, "gemini", generator.Model())

	return gemini.NewComposer(generator, cfg.Gemini.MaxLogLength, composerLogger), nil
}
