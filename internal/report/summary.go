package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/franz/recipedb/internal/store"
	"github.com/franz/recipedb/internal/util"
)

// BuildSummary describes one finished build
type BuildSummary struct {
	GeneratedAt time.Time
	Duration    time.Duration
	RunID       string

	Counts store.Counts

	RecipeLimit    int
	RecipesRead    int
	RecipesSkipped int
	Sources        []SourceSummary

	DatabasePath string
	DatabaseSize int64
	EventLogPath string
}

// SourceSummary describes one interaction log
type SourceSummary struct {
	Tag      string
	Path     string
	Present  bool
	Inserted int64
	Dropped  int64
}

// WriteCounts prints the per-table row counts as indented JSON
func WriteCounts(w io.Writer, counts store.Counts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(counts); err != nil {
		return fmt.Errorf("failed to encode counts: %w", err)
	}
	return nil
}

// LogSummary prints a human readable summary through the console logger
func LogSummary(s *BuildSummary) {
	util.SuccessLog("Built %s in %v", s.DatabasePath, s.Duration.Round(time.Millisecond))
	util.InfoLog("  Recipes read: %s (limit %s)", util.FormatCount(int64(s.RecipesRead)), util.FormatCount(int64(s.RecipeLimit)))
	if s.RecipesSkipped > 0 {
		util.WarnLog("  Recipes skipped: %s", util.FormatCount(int64(s.RecipesSkipped)))
	}
	util.InfoLog("  recipes: %s", util.FormatCount(s.Counts.Recipes))
	util.InfoLog("  recipe_ingredients: %s", util.FormatCount(s.Counts.RecipeIngredients))
	util.InfoLog("  interactions: %s", util.FormatCount(s.Counts.Interactions))
	for _, src := range s.Sources {
		if !src.Present {
			util.InfoLog("  %s interactions: not present (%s)", src.Tag, src.Path)
			continue
		}
		util.InfoLog("  %s interactions: %s kept, %s dropped", src.Tag,
			util.FormatCount(src.Inserted), util.FormatCount(src.Dropped))
	}
	if s.DatabaseSize > 0 {
		util.InfoLog("  Snapshot size: %s", util.FormatBytes(s.DatabaseSize))
	}
}

// WriteMarkdownReport writes the summary as a markdown file
func WriteMarkdownReport(s *BuildSummary, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var md strings.Builder

	md.WriteString("# Recipe Snapshot - Build Report\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05")))
	if s.RunID != "" {
		md.WriteString(fmt.Sprintf("**Run:** `%s`\n\n", s.RunID))
	}
	if s.DatabasePath != "" {
		md.WriteString(fmt.Sprintf("**Database:** `%s`", s.DatabasePath))
		if s.DatabaseSize > 0 {
			md.WriteString(fmt.Sprintf(" (%s)", humanize.Bytes(uint64(s.DatabaseSize))))
		}
		md.WriteString("\n\n")
	}
	if s.EventLogPath != "" {
		md.WriteString(fmt.Sprintf("**Event Log:** `%s`\n\n", s.EventLogPath))
	}
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", s.Duration.Round(time.Millisecond)))

	md.WriteString("---\n\n")

	md.WriteString("## Tables\n\n")
	md.WriteString("| Table | Rows |\n")
	md.WriteString("|-------|------|\n")
	md.WriteString(fmt.Sprintf("| recipes | %s |\n", humanize.Comma(s.Counts.Recipes)))
	md.WriteString(fmt.Sprintf("| recipe_ingredients | %s |\n", humanize.Comma(s.Counts.RecipeIngredients)))
	md.WriteString(fmt.Sprintf("| interactions | %s |\n", humanize.Comma(s.Counts.Interactions)))
	md.WriteString("\n")

	md.WriteString("## Recipes\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	md.WriteString(fmt.Sprintf("| Row Limit | %s |\n", humanize.Comma(int64(s.RecipeLimit))))
	md.WriteString(fmt.Sprintf("| Rows Read | %s |\n", humanize.Comma(int64(s.RecipesRead))))
	if s.RecipesSkipped > 0 {
		md.WriteString(fmt.Sprintf("| Rows Skipped | %s |\n", humanize.Comma(int64(s.RecipesSkipped))))
	}
	md.WriteString("\n")

	if len(s.Sources) > 0 {
		md.WriteString("## Interactions\n\n")
		md.WriteString("| Source | File | Kept | Dropped |\n")
		md.WriteString("|--------|------|------|---------|\n")
		for _, src := range s.Sources {
			if !src.Present {
				md.WriteString(fmt.Sprintf("| %s | `%s` (missing) | - | - |\n", src.Tag, src.Path))
				continue
			}
			md.WriteString(fmt.Sprintf("| %s | `%s` | %s | %s |\n", src.Tag, src.Path,
				humanize.Comma(src.Inserted), humanize.Comma(src.Dropped)))
		}
		md.WriteString("\n")
	}

	if err := os.WriteFile(outputPath, []byte(md.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
