// Package transform turns raw CSV rows into typed store rows.
//
// Missing or unparseable numbers become NULL. Missing text becomes the
// empty string. The two sentinels never mix.
package transform

import (
	"database/sql"
	"math"
	"strconv"
	"strings"

	"github.com/franz/recipedb/internal/source"
)

// Int coerces a cell to an integer. Integer literals parse directly; a
// finite decimal such as "30.0" or "12.7" is truncated toward zero.
// Anything else is NULL.
func Int(c source.Cell) sql.NullInt64 {
	if !c.Valid {
		return sql.NullInt64{}
	}
	s := strings.TrimSpace(c.Value)

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return sql.NullInt64{Int64: i, Valid: true}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullInt64{}
	}
	f = math.Trunc(f)
	// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(f), Valid: true}
}

// Float coerces a cell to a finite float, or NULL
func Float(c source.Cell) sql.NullFloat64 {
	if !c.Valid {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// Text returns the cell value verbatim, or "" when missing
func Text(c source.Cell) string {
	if !c.Valid {
		return ""
	}
	return c.Value
}
