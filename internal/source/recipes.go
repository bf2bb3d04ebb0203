package source

import (
	"fmt"
	"io"
)

// RecipeColumns are the columns selected from RAW_recipes.csv
var RecipeColumns = []string{
	"id", "name", "minutes", "contributor_id", "submitted", "n_steps",
	"steps", "description", "ingredients", "n_ingredients", "tags",
}

// InteractionColumns are the recognised columns of the interaction logs.
// None of them is required.
var InteractionColumns = []string{"user_id", "recipe_id", "date", "rating", "u", "i"}

// ReadRecipes loads at most maxRows data rows from the recipe CSV.
// maxRows <= 0 reads the whole file.
func ReadRecipes(path string, maxRows int) ([]Row, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := r.Require(RecipeColumns...); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var rows []Row
	for maxRows <= 0 || len(rows) < maxRows {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
