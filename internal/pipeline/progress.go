package pipeline

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// newBar returns a stage progress bar on stderr, or nil when progress is
// disabled. total < 0 draws an indeterminate bar.
func (b *Builder) newBar(total int64, description, unit string) *progressbar.ProgressBar {
	if !b.cfg.ShowProgress {
		return nil
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString(unit),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func barAdd(bar *progressbar.ProgressBar, n int) {
	if bar != nil {
		_ = bar.Add(n)
	}
}

func barFinish(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
