package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Interaction is one user rating row from an interaction log
type Interaction struct {
	UserID   sql.NullInt64
	RecipeID sql.NullInt64
	Date     string
	Rating   sql.NullFloat64
	U        sql.NullInt64
	I        sql.NullInt64
	Source   string
}

const insertInteractionSQL = `
	INSERT INTO interactions (user_id, recipe_id, date, rating, u, i, source)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

// InsertInteractions inserts interactions in one transaction
func (s *Store) InsertInteractions(ctx context.Context, rows []Interaction) (int64, error) {
	n, err := s.insertBatch(ctx, insertInteractionSQL, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.UserID, r.RecipeID, r.Date, r.Rating, r.U, r.I, r.Source}
	})
	if err != nil {
		return n, fmt.Errorf("failed to insert interactions: %w", err)
	}
	return n, nil
}
