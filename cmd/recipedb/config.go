package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/franz/recipedb/internal/pipeline"
	"github.com/franz/recipedb/internal/transform"
	"github.com/franz/recipedb/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// fileConfig is the YAML layout of a recipedb config file. Keys match the
// flag names so viper resolves both the same way.
type fileConfig struct {
	Recipes                string `yaml:"recipes"`
	InteractionsValidation string `yaml:"interactions-validation"`
	InteractionsTest       string `yaml:"interactions-test"`
	DB                     string `yaml:"db"`
	MaxRecipes             int    `yaml:"max-recipes"`
	RecipeBatch            int    `yaml:"recipe-batch"`
	IngredientBatch        int    `yaml:"ingredient-batch"`
	InteractionBatch       int    `yaml:"interaction-batch"`
	EventsDir              string `yaml:"events-dir"`
	Report                 bool   `yaml:"report"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Recipes:                pipeline.DefaultRecipesPath,
		InteractionsValidation: pipeline.DefaultValidationPath,
		InteractionsTest:       pipeline.DefaultTestPath,
		DB:                     pipeline.DefaultDatabasePath,
		MaxRecipes:             pipeline.DefaultMaxRecipes,
		RecipeBatch:            pipeline.DefaultRecipeBatchSize,
		IngredientBatch:        pipeline.DefaultIngredientBatchSize,
		InteractionBatch:       pipeline.DefaultInteractionBatch,
		EventsDir:              "artifacts",
		Report:                 true,
	}
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage recipedb configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the built-in defaults to a YAML config file",
	Long: `Write the built-in defaults to a YAML config file.

The file is written to ./configs/recipedb.yaml unless a path is given.
Settings resolve in this order: command-line flag, RECIPEDB_* environment
variable, config file, built-in default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join("configs", "recipedb.yaml")
	if len(args) == 1 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if err := writeDefaultConfig(path, force); err != nil {
		return err
	}

	util.SuccessLog("Wrote %s", path)
	return nil
}

func writeDefaultConfig(path string, force bool) error {
	if !force && util.FileExists(path) {
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", util.ErrInvalidConfig, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out, err := yaml.Marshal(defaultFileConfig())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	content := append([]byte("# recipedb configuration\n"), out...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// buildConfig resolves the builder configuration from viper
func buildConfig() *pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.RecipesPath = viper.GetString("recipes")
	cfg.DatabasePath = viper.GetString("db")
	cfg.MaxRecipes = viper.GetInt("max-recipes")
	cfg.RecipeBatchSize = viper.GetInt("recipe-batch")
	cfg.IngredientBatchSize = viper.GetInt("ingredient-batch")
	cfg.InteractionBatchSize = viper.GetInt("interaction-batch")

	cfg.Interactions = nil
	sources := []pipeline.InteractionSource{
		{Tag: transform.SourceValidation, Path: viper.GetString("interactions-validation")},
		{Tag: transform.SourceTest, Path: viper.GetString("interactions-test")},
	}
	for _, src := range sources {
		// An empty path turns the log off
		if src.Path != "" {
			cfg.Interactions = append(cfg.Interactions, src)
		}
	}

	return cfg
}
