package pipeline

import (
	"fmt"

	"github.com/franz/recipedb/internal/util"
)

// Stage is a point in the build lifecycle. Stages only move forward.
type Stage int

const (
	StageFresh Stage = iota
	StageSchemaCreated
	StageRecipesLoaded
	StageIngredientsExploded
	StageInteractionsLoaded
	StageAnalyzed
	StageClosed
)

var stageNames = [...]string{
	StageFresh:               "fresh",
	StageSchemaCreated:       "schema-created",
	StageRecipesLoaded:       "recipes-loaded",
	StageIngredientsExploded: "ingredients-exploded",
	StageInteractionsLoaded:  "interactions-loaded",
	StageAnalyzed:            "analyzed",
	StageClosed:              "closed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// canAdvance reports whether next may follow s. Interactions are optional,
// so ingredients-exploded may jump straight to analyzed. Closing is
// allowed from any stage so a failed build still releases the store.
func (s Stage) canAdvance(next Stage) bool {
	switch next {
	case StageClosed:
		return s != StageClosed
	case StageAnalyzed:
		return s == StageIngredientsExploded || s == StageInteractionsLoaded
	default:
		return next == s+1
	}
}

func (b *Builder) advance(next Stage) error {
	if !b.stage.canAdvance(next) {
		return fmt.Errorf("%w: %s -> %s", util.ErrStageOrder, b.stage, next)
	}
	b.stage = next
	return nil
}
