package store

import (
	"context"
	"fmt"
)

// Counts holds the row count of each snapshot table
type Counts struct {
	Recipes           int64 `json:"recipes"`
	RecipeIngredients int64 `json:"recipe_ingredients"`
	Interactions      int64 `json:"interactions"`
}

// Counts returns the current row count of every table
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	targets := []struct {
		table string
		dst   *int64
	}{
		{"recipes", &c.Recipes},
		{"recipe_ingredients", &c.RecipeIngredients},
		{"interactions", &c.Interactions},
	}

	for _, t := range targets {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.table).Scan(t.dst); err != nil {
			return Counts{}, fmt.Errorf("failed to count %s: %w", t.table, err)
		}
	}

	return c, nil
}

// OrphanCounts returns how many ingredient and interaction rows reference
// a recipe id missing from recipes. A finished build reports zero for both.
func (s *Store) OrphanCounts(ctx context.Context) (ingredients, interactions int64, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM recipe_ingredients ri
		WHERE ri.recipe_id IS NULL
		   OR NOT EXISTS (SELECT 1 FROM recipes r WHERE r.id = ri.recipe_id)
	`).Scan(&ingredients)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count orphan ingredients: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM interactions it
		WHERE it.recipe_id IS NULL
		   OR NOT EXISTS (SELECT 1 FROM recipes r WHERE r.id = it.recipe_id)
	`).Scan(&interactions)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count orphan interactions: %w", err)
	}

	return ingredients, interactions, nil
}
