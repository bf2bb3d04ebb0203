package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Recipe is one cleaned row of RAW_recipes.csv.
//
// Steps and Tags hold a JSON array of strings when the source cell was a
// valid list literal, otherwise the source text. Ingredients keeps the
// source text.
type Recipe struct {
	ID            sql.NullInt64
	Name          string
	Minutes       sql.NullInt64
	ContributorID sql.NullInt64
	Submitted     string
	NSteps        sql.NullInt64
	Steps         string
	Description   string
	Ingredients   string
	NIngredients  sql.NullInt64
	Tags          string
}

const insertRecipeSQL = `
	INSERT INTO recipes (id, name, minutes, contributor_id, submitted, n_steps,
	                     steps, description, ingredients, n_ingredients, tags)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertRecipes inserts recipes in one transaction
func (s *Store) InsertRecipes(ctx context.Context, recipes []Recipe) (int64, error) {
	n, err := s.insertBatch(ctx, insertRecipeSQL, len(recipes), func(i int) []any {
		r := recipes[i]
		return []any{
			r.ID, r.Name, r.Minutes, r.ContributorID, r.Submitted, r.NSteps,
			r.Steps, r.Description, r.Ingredients, r.NIngredients, r.Tags,
		}
	})
	if err != nil {
		return n, fmt.Errorf("failed to insert recipes: %w", err)
	}
	return n, nil
}

// GetRecipe retrieves a recipe by id, or nil if absent
func (s *Store) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	r := &Recipe{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, minutes, contributor_id, submitted, n_steps,
		       steps, description, ingredients, n_ingredients, tags
		FROM recipes WHERE id = ?
	`, id).Scan(
		&r.ID, &r.Name, &r.Minutes, &r.ContributorID, &r.Submitted, &r.NSteps,
		&r.Steps, &r.Description, &r.Ingredients, &r.NIngredients, &r.Tags,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	return r, nil
}
