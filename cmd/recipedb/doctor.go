package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/franz/recipedb/internal/source"
	"github.com/franz/recipedb/internal/store"
	"github.com/franz/recipedb/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the inputs and the snapshot",
	Long: `Run diagnostic checks to ensure recipedb can build a snapshot.

This command checks:
- SQLite version (built in)
- Recipe CSV presence and required columns
- Interaction logs (optional)
- Existing snapshot integrity, schema version and row counts

Use this command to troubleshoot issues before running a build.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.InfoLog("=== recipedb doctor ===")
	util.InfoLog("")

	cfg := buildConfig()
	results := []checkResult{
		checkSQLite(),
		checkRecipes(cfg.RecipesPath),
	}
	for _, src := range cfg.Interactions {
		results = append(results, checkInteractionLog(src.Tag, src.Path))
	}
	results = append(results, checkSnapshot(cmd.Context(), viper.GetString("db")))

	util.InfoLog("")
	util.InfoLog("=== Diagnostic Results ===")
	util.InfoLog("")

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
			hasWarnings = true
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		if r.error {
			util.ErrorLog("%s", line)
		} else if r.warning {
			util.WarnLog("%s", line)
		} else {
			util.SuccessLog("%s", line)
		}
	}

	util.InfoLog("")
	if hasErrors {
		util.ErrorLog("Some critical checks failed. Resolve them before building.")
		return fmt.Errorf("diagnostics failed")
	} else if hasWarnings {
		util.WarnLog("Some checks produced warnings. Review them before building.")
	} else {
		util.SuccessLog("All checks passed.")
	}

	return nil
}

// checkSQLite verifies the embedded SQLite reports a version
func checkSQLite() checkResult {
	version := store.SQLiteVersion()
	if version == "" {
		return checkResult{
			name:    "SQLite",
			error:   true,
			message: "unable to determine version",
		}
	}

	return checkResult{
		name:    "SQLite",
		message: fmt.Sprintf("version %s (built-in)", version),
	}
}

// checkRecipes verifies the recipe CSV exists and carries every column
func checkRecipes(path string) checkResult {
	r, err := source.Open(path)
	if err != nil {
		return checkResult{
			name:    "Recipe CSV",
			error:   true,
			message: err.Error(),
		}
	}
	defer r.Close()

	if err := r.Require(source.RecipeColumns...); err != nil {
		return checkResult{
			name:    "Recipe CSV",
			error:   true,
			message: err.Error(),
		}
	}

	return checkResult{
		name:    "Recipe CSV",
		message: fmt.Sprintf("%s (%s)", path, fileSize(path)),
	}
}

// checkInteractionLog reports an optional interaction log. A missing log
// is only a warning since the build skips it.
func checkInteractionLog(tag, path string) checkResult {
	name := fmt.Sprintf("Interactions (%s)", tag)

	r, err := source.Open(path)
	if errors.Is(err, util.ErrInputMissing) {
		return checkResult{
			name:    name,
			warning: true,
			message: fmt.Sprintf("%s not found (will be skipped)", path),
		}
	}
	if err != nil {
		return checkResult{
			name:    name,
			error:   true,
			message: err.Error(),
		}
	}
	defer r.Close()

	if err := r.Require("recipe_id"); err != nil {
		return checkResult{
			name:    name,
			warning: true,
			message: fmt.Sprintf("%s has no recipe_id column (every row will be dropped)", path),
		}
	}

	return checkResult{
		name:    name,
		message: fmt.Sprintf("%s (%s)", path, fileSize(path)),
	}
}

// checkSnapshot opens an existing snapshot and verifies it
func checkSnapshot(ctx context.Context, dbPath string) checkResult {
	if !util.FileExists(dbPath) {
		return checkResult{
			name:    "Snapshot",
			warning: true,
			message: fmt.Sprintf("%s not built yet", dbPath),
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return checkResult{
			name:    "Snapshot",
			error:   true,
			message: fmt.Sprintf("cannot open %s: %v", dbPath, err),
		}
	}
	defer db.Close()

	if err := db.CheckIntegrity(); err != nil {
		return checkResult{
			name:    "Snapshot",
			error:   true,
			message: fmt.Sprintf("integrity check failed: %v", err),
		}
	}

	version, err := db.SchemaVersion()
	if err != nil || version != store.CurrentSchemaVersion {
		return checkResult{
			name:    "Snapshot",
			error:   true,
			message: fmt.Sprintf("unexpected schema version %d (want %d)", version, store.CurrentSchemaVersion),
		}
	}

	counts, err := db.Counts(ctx)
	if err != nil {
		return checkResult{
			name:    "Snapshot",
			error:   true,
			message: fmt.Sprintf("cannot count rows: %v", err),
		}
	}

	result := checkResult{
		name: "Snapshot",
		message: fmt.Sprintf("%s (%s, %s recipes, %s ingredients, %s interactions)", dbPath, fileSize(dbPath),
			util.FormatCount(counts.Recipes), util.FormatCount(counts.RecipeIngredients), util.FormatCount(counts.Interactions)),
	}

	orphanIngredients, orphanInteractions, err := db.OrphanCounts(ctx)
	if err == nil && orphanIngredients+orphanInteractions > 0 {
		result.warning = true
		result.message += fmt.Sprintf("; %d orphan ingredient rows, %d orphan interactions", orphanIngredients, orphanInteractions)
	}

	return result
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown size"
	}
	return util.FormatBytes(info.Size())
}
