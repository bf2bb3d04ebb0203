// Package pipeline builds the recipe snapshot: load the recipe CSV, clean
// each row, explode ingredients, attach filtered interactions, analyze.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/franz/recipedb/internal/ingredient"
	"github.com/franz/recipedb/internal/report"
	"github.com/franz/recipedb/internal/source"
	"github.com/franz/recipedb/internal/store"
	"github.com/franz/recipedb/internal/transform"
	"github.com/franz/recipedb/internal/util"
)

// RetainedIDs is the set of recipe ids written to the snapshot
type RetainedIDs map[int64]struct{}

// Has reports whether id was retained
func (r RetainedIDs) Has(id int64) bool {
	_, ok := r[id]
	return ok
}

// Result summarizes a build
type Result struct {
	Counts         store.Counts
	RecipesRead    int
	RecipesSkipped int
	Sources        []report.SourceSummary
	Stage          Stage
	Duration       time.Duration
}

// Builder owns the snapshot store for the length of one build
type Builder struct {
	cfg    *Config
	logger *report.EventLogger
	store  *store.Store
	stage  Stage
}

// New creates a builder. A nil config uses DefaultConfig.
func New(cfg *Config) *Builder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Builder{
		cfg:    cfg,
		logger: cfg.Logger,
		stage:  StageFresh,
	}
}

// Stage returns the builder's current stage
func (b *Builder) Stage() Stage {
	return b.stage
}

// Run performs the whole build. The recipe CSV is read before the previous
// snapshot is removed, so a missing or malformed input leaves it in place.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if b.stage != StageFresh {
		return nil, fmt.Errorf("%w: builder already used (stage %s)", util.ErrStageOrder, b.stage)
	}

	start := time.Now()
	result := &Result{}

	if !util.FileExists(b.cfg.RecipesPath) {
		return nil, fmt.Errorf("%w: %s", util.ErrInputMissing, b.cfg.RecipesPath)
	}

	util.InfoLog("Loading %s (limit=%s)", b.cfg.RecipesPath, util.FormatCount(int64(b.cfg.MaxRecipes)))
	rows, err := source.ReadRecipes(b.cfg.RecipesPath, b.cfg.MaxRecipes)
	if err != nil {
		return nil, err
	}
	result.RecipesRead = len(rows)
	b.logger.LogLoad(b.cfg.RecipesPath, int64(len(rows)), b.cfg.MaxRecipes)
	util.InfoLog("Loaded %s recipe rows", util.FormatCount(int64(len(rows))))

	if err := b.create(ctx); err != nil {
		return nil, err
	}
	defer b.abort()

	stageStart := time.Now()
	recipes, retained, err := b.loadRecipes(ctx, rows)
	if err != nil {
		return nil, err
	}
	result.RecipesSkipped = len(rows) - len(recipes)
	if err := b.finishStage(StageRecipesLoaded, int64(len(recipes)), stageStart); err != nil {
		return nil, err
	}

	stageStart = time.Now()
	pairs, err := b.explodeIngredients(ctx, recipes)
	if err != nil {
		return nil, err
	}
	if err := b.finishStage(StageIngredientsExploded, pairs, stageStart); err != nil {
		return nil, err
	}

	if len(b.cfg.Interactions) > 0 {
		stageStart = time.Now()
		sources, inserted, err := b.loadInteractions(ctx, retained)
		if err != nil {
			return nil, err
		}
		result.Sources = sources
		if err := b.finishStage(StageInteractionsLoaded, inserted, stageStart); err != nil {
			return nil, err
		}
	}

	stageStart = time.Now()
	util.InfoLog("Analyzing %s", b.cfg.DatabasePath)
	if err := b.store.Analyze(ctx); err != nil {
		return nil, err
	}
	if err := b.finishStage(StageAnalyzed, 0, stageStart); err != nil {
		return nil, err
	}

	counts, err := b.store.Counts(ctx)
	if err != nil {
		return nil, err
	}
	result.Counts = counts

	if err := b.close(); err != nil {
		return nil, err
	}

	result.Stage = b.stage
	result.Duration = time.Since(start)
	return result, nil
}

func (b *Builder) create(ctx context.Context) error {
	util.InfoLog("Creating %s", b.cfg.DatabasePath)
	s, err := store.Create(ctx, b.cfg.DatabasePath)
	if err != nil {
		return err
	}
	b.store = s
	return b.advance(StageSchemaCreated)
}

func (b *Builder) finishStage(next Stage, rows int64, started time.Time) error {
	if err := b.advance(next); err != nil {
		return err
	}
	b.logger.LogStage(next.String(), rows, time.Since(started))
	return nil
}

func (b *Builder) close() error {
	if err := b.advance(StageClosed); err != nil {
		return err
	}
	if err := b.store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// abort releases the store after a failed build. The partial snapshot is
// left on disk and replaced by the next build.
func (b *Builder) abort() {
	if b.stage == StageClosed || b.store == nil {
		return
	}
	b.logger.LogError(report.EventError, b.cfg.DatabasePath, fmt.Errorf("build aborted at stage %s", b.stage))
	b.stage = StageClosed
	b.store.Close()
}

// loadRecipes cleans the loaded rows and inserts the keepers. Rows without
// a usable id, and repeats of an id already kept, are skipped.
func (b *Builder) loadRecipes(ctx context.Context, rows []source.Row) ([]store.Recipe, RetainedIDs, error) {
	recipes := make([]store.Recipe, 0, len(rows))
	retained := make(RetainedIDs, len(rows))

	for i, row := range rows {
		r := transform.Recipe(row)
		switch {
		case !r.ID.Valid:
			b.skipRecipe(i+1, "unparseable id")
			continue
		case retained.Has(r.ID.Int64):
			b.skipRecipe(i+1, fmt.Sprintf("duplicate id %d", r.ID.Int64))
			continue
		}
		retained[r.ID.Int64] = struct{}{}
		recipes = append(recipes, r)
	}

	util.InfoLog("Inserting %s recipes", util.FormatCount(int64(len(recipes))))
	bar := b.newBar(int64(len(recipes)), "Recipes", "rows")
	defer barFinish(bar)

	size := b.cfg.RecipeBatchSize
	if size <= 0 {
		size = len(recipes)
	}
	for start := 0; start < len(recipes); start += size {
		end := min(start+size, len(recipes))
		if _, err := b.store.InsertRecipes(ctx, recipes[start:end]); err != nil {
			return nil, nil, err
		}
		barAdd(bar, end-start)
	}

	return recipes, retained, nil
}

func (b *Builder) skipRecipe(row int, reason string) {
	util.DebugLog("Skipping recipe row %d: %s", row, reason)
	b.logger.LogSkippedRecipe(row, reason)
}

// explodeIngredients writes one pair per normalized ingredient token. The
// buffer is flushed once it reaches the batch size, checked per recipe.
func (b *Builder) explodeIngredients(ctx context.Context, recipes []store.Recipe) (int64, error) {
	util.InfoLog("Exploding ingredients into recipe_ingredients")
	bar := b.newBar(int64(len(recipes)), "Ingredients", "recipes")
	defer barFinish(bar)

	var total int64
	batch := make([]store.RecipeIngredient, 0, b.cfg.IngredientBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := b.store.InsertIngredients(ctx, batch)
		if err != nil {
			return err
		}
		total += n
		batch = batch[:0]
		return nil
	}

	for _, r := range recipes {
		for _, tok := range ingredient.Tokens(r.Ingredients) {
			batch = append(batch, store.RecipeIngredient{RecipeID: r.ID.Int64, Ingredient: tok})
		}
		if len(batch) >= b.cfg.IngredientBatchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
		barAdd(bar, 1)
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// loadInteractions streams each configured interaction log, keeping only
// rows whose recipe_id was retained. Missing logs are skipped.
func (b *Builder) loadInteractions(ctx context.Context, retained RetainedIDs) ([]report.SourceSummary, int64, error) {
	var (
		summaries []report.SourceSummary
		total     int64
	)

	for _, src := range b.cfg.Interactions {
		summary, err := b.loadInteractionSource(ctx, src, retained)
		if err != nil {
			return nil, total, err
		}
		summaries = append(summaries, summary)
		total += summary.Inserted
	}

	return summaries, total, nil
}

func (b *Builder) loadInteractionSource(ctx context.Context, src InteractionSource, retained RetainedIDs) (report.SourceSummary, error) {
	summary := report.SourceSummary{Tag: src.Tag, Path: src.Path}

	r, err := source.Open(src.Path)
	if errors.Is(err, util.ErrInputMissing) {
		util.WarnLog("Interaction log %s not found, skipping", src.Path)
		b.logger.LogSkippedSource(src.Tag, src.Path)
		return summary, nil
	}
	if err != nil {
		return summary, err
	}
	defer r.Close()
	summary.Present = true

	util.InfoLog("Loading interactions from %s (filtered)", src.Path)
	bar := b.newBar(-1, "Interactions "+src.Tag, "rows")
	defer barFinish(bar)

	batch := make([]store.Interaction, 0, b.cfg.InteractionBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := b.store.InsertInteractions(ctx, batch)
		if err != nil {
			return err
		}
		summary.Inserted += n
		batch = batch[:0]
		return nil
	}

	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("%s: %w", src.Path, err)
		}
		barAdd(bar, 1)

		it := transform.Interaction(row, src.Tag)
		if !it.RecipeID.Valid || !retained.Has(it.RecipeID.Int64) {
			summary.Dropped++
			continue
		}

		batch = append(batch, it)
		if len(batch) >= b.cfg.InteractionBatchSize {
			if err := flush(); err != nil {
				return summary, err
			}
		}
	}

	if err := flush(); err != nil {
		return summary, err
	}

	b.logger.LogInteractions(src.Tag, src.Path, summary.Inserted, summary.Dropped)
	util.InfoLog("  %s: %s kept, %s dropped", src.Tag,
		util.FormatCount(summary.Inserted), util.FormatCount(summary.Dropped))
	return summary, nil
}

// DatabaseSize returns the size of the finished snapshot file, or 0
func DatabaseSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
