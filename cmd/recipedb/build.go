package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/franz/recipedb/internal/pipeline"
	"github.com/franz/recipedb/internal/report"
	"github.com/franz/recipedb/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the SQLite snapshot (default command)",
	Long: `Build the SQLite snapshot from the recipe CSV and the optional
interaction logs.

The previous snapshot (and its -wal/-shm/-journal files) is removed once the
recipe CSV has been read successfully. When the build finishes, the row count
of every table is printed to stdout as JSON.

Set --interactions-validation or --interactions-test to "" to leave a log out.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	// Build flags live on the root so that a bare "recipedb" accepts them too
	flags := rootCmd.PersistentFlags()
	flags.Int("max-recipes", pipeline.DefaultMaxRecipes, "maximum number of recipe rows to read")
	flags.Int("recipe-batch", pipeline.DefaultRecipeBatchSize, "recipes per insert transaction (0 = all in one)")
	flags.Int("ingredient-batch", pipeline.DefaultIngredientBatchSize, "buffered ingredient pairs before a flush")
	flags.Int("interaction-batch", pipeline.DefaultInteractionBatch, "buffered interactions before a flush")
	flags.String("events-dir", "artifacts", "directory for the JSONL event log and build report (empty disables)")
	flags.Bool("report", true, "write a markdown build report to the events directory")

	for _, name := range []string{"max-recipes", "recipe-batch", "ingredient-batch", "interaction-batch", "events-dir", "report"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	cfg.ShowProgress = util.ProgressEnabled()

	eventsDir := viper.GetString("events-dir")
	logger := report.NullLogger()
	if eventsDir != "" {
		var err error
		logger, err = report.NewEventLogger(eventsDir, report.LevelInfo)
		if err != nil {
			util.WarnLog("Failed to create event logger: %v", err)
			logger = report.NullLogger()
		}
	}
	defer logger.Close()
	cfg.Logger = logger

	if logger.Path() != "" {
		util.DebugLog("Event log: %s", logger.Path())
	}

	result, err := pipeline.New(cfg).Run(cmd.Context())
	if err != nil {
		logger.LogError(report.EventError, cfg.DatabasePath, err)
		return fmt.Errorf("build failed: %w", err)
	}

	summary := &report.BuildSummary{
		GeneratedAt:    time.Now(),
		Duration:       result.Duration,
		RunID:          logger.RunID(),
		Counts:         result.Counts,
		RecipeLimit:    cfg.MaxRecipes,
		RecipesRead:    result.RecipesRead,
		RecipesSkipped: result.RecipesSkipped,
		Sources:        result.Sources,
		DatabasePath:   cfg.DatabasePath,
		DatabaseSize:   pipeline.DatabaseSize(cfg.DatabasePath),
		EventLogPath:   logger.Path(),
	}
	report.LogSummary(summary)

	if eventsDir != "" && viper.GetBool("report") {
		reportPath := filepath.Join(eventsDir, "build-report.md")
		if err := report.WriteMarkdownReport(summary, reportPath); err != nil {
			util.WarnLog("Failed to write build report: %v", err)
		} else {
			util.InfoLog("Report: %s", reportPath)
		}
	}

	return report.WriteCounts(cmd.OutOrStdout(), result.Counts)
}
