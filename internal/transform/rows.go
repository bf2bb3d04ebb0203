package transform

import (
	"bytes"
	"encoding/json"

	"github.com/franz/recipedb/internal/listlit"
	"github.com/franz/recipedb/internal/source"
	"github.com/franz/recipedb/internal/store"
)

// Interaction log tags
const (
	SourceValidation = "validation"
	SourceTest       = "test"
)

// Recipe maps a RAW_recipes.csv row onto the recipes table
func Recipe(row source.Row) store.Recipe {
	return store.Recipe{
		ID:            Int(row.Cell("id")),
		Name:          Text(row.Cell("name")),
		Minutes:       Int(row.Cell("minutes")),
		ContributorID: Int(row.Cell("contributor_id")),
		Submitted:     Text(row.Cell("submitted")),
		NSteps:        Int(row.Cell("n_steps")),
		Steps:         JSONList(Text(row.Cell("steps"))),
		Description:   Text(row.Cell("description")),
		Ingredients:   Text(row.Cell("ingredients")),
		NIngredients:  Int(row.Cell("n_ingredients")),
		Tags:          JSONList(Text(row.Cell("tags"))),
	}
}

// Interaction maps an interaction log row, tagging it with its source
func Interaction(row source.Row, tag string) store.Interaction {
	return store.Interaction{
		UserID:   Int(row.Cell("user_id")),
		RecipeID: Int(row.Cell("recipe_id")),
		Date:     Text(row.Cell("date")),
		Rating:   Float(row.Cell("rating")),
		U:        Int(row.Cell("u")),
		I:        Int(row.Cell("i")),
		Source:   tag,
	}
}

// JSONList re-encodes a list literal as a JSON array of strings. Text
// that is not a list literal is returned unchanged.
func JSONList(text string) string {
	items, err := listlit.Strict(text)
	if err != nil {
		return text
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return text
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
