package ui

import (
	"github.com/inancgumus/screen"
)

// Terminal resets the screen before the fixture-generation wizard starts,
// so prompts aren't interleaved with whatever was on screen beforehand.
type Terminal struct{}

// NewTerminal creates a new Terminal instance.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Reset clears the screen and homes the cursor, ready for the first
// question of the fixture wizard.
func (t *Terminal) Reset() {
	screen.Clear()
	screen.MoveTopLeft()
}
