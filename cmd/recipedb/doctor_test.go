package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/franz/recipedb/internal/store"
)

const recipeHeader = "name,id,minutes,contributor_id,submitted,tags,nutrition,n_steps,steps,description,ingredients,n_ingredients\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestCheckSQLite(t *testing.T) {
	result := checkSQLite()

	if result.error {
		t.Errorf("SQLite check failed: %s", result.message)
	}

	if result.message == "" {
		t.Error("expected version information in message")
	}
}

func TestCheckRecipes(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "RAW_recipes.csv")
	writeFile(t, valid, recipeHeader)

	partial := filepath.Join(dir, "partial.csv")
	writeFile(t, partial, "name,id,minutes\n")

	tests := []struct {
		name    string
		path    string
		wantErr bool
		wantMsg string
	}{
		{"valid", valid, false, "RAW_recipes.csv"},
		{"missing file", filepath.Join(dir, "nope.csv"), true, "input file not found"},
		{"missing columns", partial, true, "contributor_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkRecipes(tt.path)
			if result.error != tt.wantErr {
				t.Errorf("error = %v, want %v (%s)", result.error, tt.wantErr, result.message)
			}
			if !strings.Contains(result.message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", result.message, tt.wantMsg)
			}
		})
	}
}

func TestCheckInteractionLog(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "interactions_test.csv")
	writeFile(t, valid, "user_id,recipe_id,date,rating,u,i\n1,2,2010-01-01,5,0,0\n")

	noRecipe := filepath.Join(dir, "no_recipe.csv")
	writeFile(t, noRecipe, "user_id,date\n")

	tests := []struct {
		name        string
		path        string
		wantWarning bool
	}{
		{"present", valid, false},
		{"missing", filepath.Join(dir, "nope.csv"), true},
		{"no recipe_id", noRecipe, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkInteractionLog("test", tt.path)
			if result.error {
				t.Errorf("interaction log check should not error: %s", result.message)
			}
			if result.warning != tt.wantWarning {
				t.Errorf("warning = %v, want %v (%s)", result.warning, tt.wantWarning, result.message)
			}
		})
	}
}

func TestCheckSnapshot_NotBuilt(t *testing.T) {
	result := checkSnapshot(context.Background(), filepath.Join(t.TempDir(), "foodcom.db"))

	if result.error {
		t.Errorf("missing snapshot should not error: %s", result.message)
	}
	if !result.warning {
		t.Error("expected warning for missing snapshot")
	}
}

func TestCheckSnapshot_Built(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "foodcom.db")

	s, err := store.Create(ctx, dbPath)
	if err != nil {
		t.Fatalf("failed to create snapshot: %v", err)
	}
	recipes := []store.Recipe{{ID: sql.NullInt64{Int64: 1, Valid: true}, Name: "toast"}}
	if _, err := s.InsertRecipes(ctx, recipes); err != nil {
		t.Fatalf("failed to insert recipe: %v", err)
	}
	if _, err := s.InsertIngredients(ctx, []store.RecipeIngredient{{RecipeID: 1, Ingredient: "bread"}}); err != nil {
		t.Fatalf("failed to insert ingredient: %v", err)
	}
	s.Close()

	result := checkSnapshot(ctx, dbPath)

	if result.error || result.warning {
		t.Errorf("snapshot check failed: %s", result.message)
	}
	if !strings.Contains(result.message, "1 recipes") {
		t.Errorf("expected recipe count in message, got %q", result.message)
	}
}

func TestCheckSnapshot_Orphans(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "foodcom.db")

	s, err := store.Create(ctx, dbPath)
	if err != nil {
		t.Fatalf("failed to create snapshot: %v", err)
	}
	if _, err := s.InsertIngredients(ctx, []store.RecipeIngredient{{RecipeID: 42, Ingredient: "salt"}}); err != nil {
		t.Fatalf("failed to insert ingredient: %v", err)
	}
	s.Close()

	result := checkSnapshot(ctx, dbPath)

	if !result.warning {
		t.Errorf("expected orphan warning, got %q", result.message)
	}
}
