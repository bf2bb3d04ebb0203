package pipeline

import (
	"fmt"

	"github.com/franz/recipedb/internal/report"
	"github.com/franz/recipedb/internal/transform"
	"github.com/franz/recipedb/internal/util"
)

// Defaults used when nothing is configured
const (
	DefaultRecipesPath         = "RAW_recipes.csv"
	DefaultValidationPath      = "interactions_validation.csv"
	DefaultTestPath            = "interactions_test.csv"
	DefaultDatabasePath        = "foodcom.db"
	DefaultMaxRecipes          = 10_001
	DefaultRecipeBatchSize     = 0
	DefaultIngredientBatchSize = 50_000
	DefaultInteractionBatch    = 100_000
)

// InteractionSource is one optional interaction log and its tag
type InteractionSource struct {
	Tag  string
	Path string
}

// Config holds builder configuration
type Config struct {
	RecipesPath  string
	DatabasePath string
	Interactions []InteractionSource

	// MaxRecipes caps the rows read from RecipesPath
	MaxRecipes int

	// RecipeBatchSize splits recipe inserts into transactions of this many
	// rows. Zero inserts every recipe in one transaction.
	RecipeBatchSize int

	IngredientBatchSize  int
	InteractionBatchSize int

	Logger       *report.EventLogger
	ShowProgress bool
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		RecipesPath:  DefaultRecipesPath,
		DatabasePath: DefaultDatabasePath,
		Interactions: []InteractionSource{
			{Tag: transform.SourceValidation, Path: DefaultValidationPath},
			{Tag: transform.SourceTest, Path: DefaultTestPath},
		},
		MaxRecipes:           DefaultMaxRecipes,
		RecipeBatchSize:      DefaultRecipeBatchSize,
		IngredientBatchSize:  DefaultIngredientBatchSize,
		InteractionBatchSize: DefaultInteractionBatch,
	}
}

// Validate checks the configuration for values the builder cannot use
func (c *Config) Validate() error {
	switch {
	case c.RecipesPath == "":
		return fmt.Errorf("%w: recipes path is empty", util.ErrInvalidConfig)
	case c.DatabasePath == "":
		return fmt.Errorf("%w: database path is empty", util.ErrInvalidConfig)
	case c.MaxRecipes <= 0:
		return fmt.Errorf("%w: max recipes must be positive, got %d", util.ErrInvalidConfig, c.MaxRecipes)
	case c.RecipeBatchSize < 0:
		return fmt.Errorf("%w: recipe batch size must not be negative, got %d", util.ErrInvalidConfig, c.RecipeBatchSize)
	case c.IngredientBatchSize <= 0:
		return fmt.Errorf("%w: ingredient batch size must be positive, got %d", util.ErrInvalidConfig, c.IngredientBatchSize)
	case c.InteractionBatchSize <= 0:
		return fmt.Errorf("%w: interaction batch size must be positive, got %d", util.ErrInvalidConfig, c.InteractionBatchSize)
	}

	seen := make(map[string]bool)
	for _, src := range c.Interactions {
		if src.Tag == "" || src.Path == "" {
			return fmt.Errorf("%w: interaction source needs a tag and a path", util.ErrInvalidConfig)
		}
		if seen[src.Tag] {
			return fmt.Errorf("%w: duplicate interaction tag %q", util.ErrInvalidConfig, src.Tag)
		}
		seen[src.Tag] = true
	}

	return nil
}
