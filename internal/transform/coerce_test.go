package transform

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/franz/recipedb/internal/source"
)

func valid(v string) source.Cell { return source.Cell{Value: v, Valid: true} }

func TestInt(t *testing.T) {
	tests := []struct {
		name string
		cell source.Cell
		want sql.NullInt64
	}{
		{"plain", valid("30"), sql.NullInt64{Int64: 30, Valid: true}},
		{"zero fraction", valid("30.0"), sql.NullInt64{Int64: 30, Valid: true}},
		{"fraction truncated", valid("12.7"), sql.NullInt64{Int64: 12, Valid: true}},
		{"negative fraction truncated toward zero", valid("-2.9"), sql.NullInt64{Int64: -2, Valid: true}},
		{"exponent", valid("1e3"), sql.NullInt64{Int64: 1000, Valid: true}},
		{"padded", valid(" 45 "), sql.NullInt64{Int64: 45, Valid: true}},
		{"signed", valid("+7"), sql.NullInt64{Int64: 7, Valid: true}},
		{"missing", source.Cell{}, sql.NullInt64{}},
		{"na token", source.Cell{Value: "NaN"}, sql.NullInt64{}},
		{"text", valid("thirty"), sql.NullInt64{}},
		{"inf", valid("inf"), sql.NullInt64{}},
		{"nan literal", valid("nan"), sql.NullInt64{}},
		{"overflow", valid("1e30"), sql.NullInt64{}},
		{"large int", valid("2147483648"), sql.NullInt64{Int64: 2147483648, Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Int(tt.cell); got != tt.want {
				t.Errorf("Int(%+v) = %+v, want %+v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestInt_DecimalMatchesInteger(t *testing.T) {
	for _, v := range []string{"0", "1", "30", "1440", "-5"} {
		if Int(valid(v+".0")) != Int(valid(v)) {
			t.Errorf("Int(%q) differs from Int(%q)", v+".0", v)
		}
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		cell source.Cell
		want sql.NullFloat64
	}{
		{valid("4"), sql.NullFloat64{Float64: 4, Valid: true}},
		{valid("3.5"), sql.NullFloat64{Float64: 3.5, Valid: true}},
		{valid("five"), sql.NullFloat64{}},
		{valid("NaN"), sql.NullFloat64{}},
		{source.Cell{}, sql.NullFloat64{}},
	}

	for _, tt := range tests {
		if got := Float(tt.cell); got != tt.want {
			t.Errorf("Float(%+v) = %+v, want %+v", tt.cell, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	if got := Text(source.Cell{}); got != "" {
		t.Errorf("missing text = %q, want empty string", got)
	}
	if got := Text(valid("  keep spacing ")); got != "  keep spacing " {
		t.Errorf("text not returned verbatim: %q", got)
	}
}

func TestMissingSentinelsDiffer(t *testing.T) {
	missing := source.Cell{}
	if Int(missing).Valid {
		t.Error("missing numeric should be NULL")
	}
	if Text(missing) != "" {
		t.Error("missing text should be the empty string")
	}
}

func TestJSONList(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"['a', 'b']", `["a","b"]`},
		{"[]", `[]`},
		{`['heat < 350', "mom's"]`, `["heat < 350","mom's"]`},
		{"not a list", "not a list"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := JSONList(tt.in); got != tt.want {
			t.Errorf("JSONList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecipeAndInteractionRows(t *testing.T) {
	dir := t.TempDir()
	recipes := filepath.Join(dir, "RAW_recipes.csv")
	content := "name,id,minutes,contributor_id,submitted,tags,n_steps,steps,description,ingredients,n_ingredients\n" +
		"arriba squash,137739,55.0,47892,2005-09-16,\"['60-minutes-or-less']\",,\"['cut', 'bake']\",,\"['winter squash']\",1\n"
	if err := os.WriteFile(recipes, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rows, err := source.ReadRecipes(recipes, 10)
	if err != nil {
		t.Fatalf("ReadRecipes failed: %v", err)
	}
	r := Recipe(rows[0])

	if r.ID != (sql.NullInt64{Int64: 137739, Valid: true}) {
		t.Errorf("unexpected id %+v", r.ID)
	}
	if r.Minutes.Int64 != 55 || !r.Minutes.Valid {
		t.Errorf("unexpected minutes %+v", r.Minutes)
	}
	if r.NSteps.Valid {
		t.Errorf("empty n_steps should be NULL, got %+v", r.NSteps)
	}
	if r.Description != "" {
		t.Errorf("empty description should be \"\", got %q", r.Description)
	}
	if r.Steps != `["cut","bake"]` {
		t.Errorf("steps not JSON encoded: %q", r.Steps)
	}
	if r.Tags != `["60-minutes-or-less"]` {
		t.Errorf("tags not JSON encoded: %q", r.Tags)
	}
	if r.Ingredients != "['winter squash']" {
		t.Errorf("ingredients should keep source form, got %q", r.Ingredients)
	}

	logs := filepath.Join(dir, "interactions_test.csv")
	if err := os.WriteFile(logs, []byte("user_id,recipe_id,date,rating,extra\n8937,137739,2005-12-23,4.0,zzz\n"), 0644); err != nil {
		t.Fatal(err)
	}
	reader, err := source.Open(logs)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()
	row, err := reader.Next()
	if err != nil {
		t.Fatal(err)
	}

	it := Interaction(row, SourceTest)
	if it.RecipeID.Int64 != 137739 || it.Rating.Float64 != 4 || it.Source != SourceTest {
		t.Errorf("unexpected interaction %+v", it)
	}
	if it.U.Valid || it.I.Valid {
		t.Errorf("absent u/i columns should be NULL, got %+v", it)
	}
}
