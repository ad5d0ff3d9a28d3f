package ui

import (
	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps a progressbar.ProgressBar instance.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar sized to the number of fixtures
// the generator is about to produce.
func NewProgressBar(size int64, label string) *ProgressBar {
	bar := progressbar.NewOptions64(
		size,
		progressbar.OptionSetDescription(label),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	return &ProgressBar{bar: bar}
}

// Add increments the progress bar by n.
func (p *ProgressBar) Add(n int64) error {
	return p.bar.Add64(n)
}

// Finish marks the progress bar complete.
func (p *ProgressBar) Finish() error {
	return p.bar.Finish()
}
