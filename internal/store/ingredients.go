package store

import (
	"context"
	"fmt"
)

// RecipeIngredient links a recipe to one normalized ingredient token
type RecipeIngredient struct {
	RecipeID   int64
	Ingredient string
}

// InsertIngredients inserts ingredient pairs in one transaction
func (s *Store) InsertIngredients(ctx context.Context, pairs []RecipeIngredient) (int64, error) {
	n, err := s.insertBatch(ctx,
		"INSERT INTO recipe_ingredients (recipe_id, ingredient) VALUES (?, ?)",
		len(pairs),
		func(i int) []any { return []any{pairs[i].RecipeID, pairs[i].Ingredient} },
	)
	if err != nil {
		return n, fmt.Errorf("failed to insert recipe ingredients: %w", err)
	}
	return n, nil
}

// IngredientsForRecipe returns the tokens stored for a recipe in insertion order
func (s *Store) IngredientsForRecipe(ctx context.Context, recipeID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT ingredient FROM recipe_ingredients WHERE recipe_id = ? ORDER BY rowid", recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var ing string
		if err := rows.Scan(&ing); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}
