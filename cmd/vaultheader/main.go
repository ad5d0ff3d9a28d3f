package main

import (
	"fmt"
	"os"

	"github.com/hambosto/vaultheader/internal/fixture"
	"github.com/hambosto/vaultheader/internal/header"
	"github.com/hambosto/vaultheader/internal/ui"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Terminal  *ui.Terminal
	Prompt    *ui.Prompt
	Generator *fixture.Generator
}

// NewDependencies creates and initializes all application dependencies.
func NewDependencies() *Dependencies {
	return &Dependencies{
		Terminal:  ui.NewTerminal(),
		Prompt:    ui.NewPrompt(),
		Generator: fixture.NewGenerator(),
	}
}

// Application drives the interactive fixture-generator workflow.
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{deps: NewDependencies()}
}

// Run executes the fixture-generator workflow end to end: gather a plan
// from the operator, build Count headers from it, write each to disk, and
// verify each one round-trips through DecodeHeader before declaring
// success.
func (a *Application) Run() error {
	a.deps.Terminal.Reset()

	uiPlan, err := a.deps.Prompt.GatherFixturePlan()
	if err != nil {
		return fmt.Errorf("gathering fixture plan: %w", err)
	}

	plan, err := fixture.FromUIPlan(uiPlan)
	if err != nil {
		return fmt.Errorf("resolving fixture plan: %w", err)
	}

	bar := ui.NewProgressBar(int64(plan.Count), "generating fixtures")

	for i := 0; i < plan.Count; i++ {
		h, err := a.deps.Generator.Build(plan)
		if err != nil {
			return fmt.Errorf("building fixture %d: %w", i, err)
		}

		name := fmt.Sprintf("fixture-%03d.hdr", i)
		path, err := a.deps.Generator.WriteFixture(h, plan.OutputDir, name)
		if err != nil {
			return fmt.Errorf("writing fixture %d: %w", i, err)
		}

		if err := verifyFixture(path, h); err != nil {
			return fmt.Errorf("verifying fixture %d: %w", i, err)
		}

		if err := bar.Add(1); err != nil {
			return fmt.Errorf("updating progress: %w", err)
		}
	}

	if err := bar.Finish(); err != nil {
		return fmt.Errorf("finishing progress: %w", err)
	}

	fmt.Printf("\nWrote %d fixture(s) to %s\n", plan.Count, plan.OutputDir)
	return nil
}

// verifyFixture re-reads the just-written file and checks it decodes back
// to a header carrying the same algorithm and at least as many keyslots as h.
func verifyFixture(path string, h header.Header) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopening fixture: %w", err)
	}
	defer f.Close()

	decoded, err := header.DecodeHeader(f)
	if err != nil {
		return fmt.Errorf("decoding fixture: %w", err)
	}

	if decoded.Algorithm != h.Algorithm {
		return fmt.Errorf("round-trip algorithm mismatch: got %v, want %v", decoded.Algorithm, h.Algorithm)
	}
	if len(decoded.Keyslots) < len(h.Keyslots) {
		return fmt.Errorf("round-trip lost keyslots: got %d, want at least %d", len(decoded.Keyslots), len(h.Keyslots))
	}

	return nil
}

func main() {
	app := NewApplication()

	if err := app.Run(); err != nil {
		fmt.Printf("vaultheader: %v\n", err)
		os.Exit(1)
	}
}
