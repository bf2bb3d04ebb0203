package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/franz/recipedb/internal/store"
)

func TestWriteCounts(t *testing.T) {
	var buf bytes.Buffer
	counts := store.Counts{Recipes: 10001, RecipeIngredients: 90210, Interactions: 42}

	if err := WriteCounts(&buf, counts); err != nil {
		t.Fatalf("WriteCounts failed: %v", err)
	}

	var decoded map[string]int64
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	want := map[string]int64{"recipes": 10001, "recipe_ingredients": 90210, "interactions": 42}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("%s = %d, want %d", k, decoded[k], v)
		}
	}
	if len(decoded) != len(want) {
		t.Errorf("unexpected keys in %v", decoded)
	}

	if !strings.Contains(buf.String(), "\n  \"recipes\": 10001") {
		t.Errorf("expected two-space indentation, got:\n%s", buf.String())
	}
}

func TestWriteMarkdownReport(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "reports", "build-report.md")

	summary := &BuildSummary{
		GeneratedAt:    time.Now(),
		Duration:       1500 * time.Millisecond,
		RunID:          "run-1",
		Counts:         store.Counts{Recipes: 3, RecipeIngredients: 1234, Interactions: 2},
		RecipeLimit:    10001,
		RecipesRead:    4,
		RecipesSkipped: 1,
		Sources: []SourceSummary{
			{Tag: "validation", Path: "interactions_validation.csv", Present: true, Inserted: 2, Dropped: 7},
			{Tag: "test", Path: "interactions_test.csv"},
		},
		DatabasePath: "foodcom.db",
		DatabaseSize: 2048,
	}

	if err := WriteMarkdownReport(summary, outputPath); err != nil {
		t.Fatalf("WriteMarkdownReport failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	md := string(content)

	for _, want := range []string{
		"# Recipe Snapshot - Build Report",
		"| recipe_ingredients | 1,234 |",
		"| Row Limit | 10,001 |",
		"| Rows Skipped | 1 |",
		"| validation | `interactions_validation.csv` | 2 | 7 |",
		"`interactions_test.csv` (missing)",
		"**Run:** `run-1`",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
