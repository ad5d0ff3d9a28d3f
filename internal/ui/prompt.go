package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// FixturePlan captures everything an operator chose for one batch of
// generated header fixtures.
type FixturePlan struct {
	Algorithm     string
	HashingKind   string
	Params        string
	KeyslotCount  int
	Passwords     []string
	IncludeObject bool
	ObjectData    string
	OutputDir     string
	Count         int
}

// Prompt drives the interactive fixture-generator questionnaire.
type Prompt struct{}

// NewPrompt creates a new Prompt instance.
func NewPrompt() *Prompt {
	return &Prompt{}
}

// GatherFixturePlan walks the operator through the choices needed to
// generate a batch of header fixtures and returns the assembled plan.
func (p *Prompt) GatherFixturePlan() (FixturePlan, error) {
	var plan FixturePlan

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("AEAD algorithm").
				Options(
					huh.NewOption("AES-256-GCM", "aes256gcm"),
					huh.NewOption("AES-256-GCM-SIV", "aes256gcmsiv"),
					huh.NewOption("XChaCha20-Poly1305", "xchacha20poly1305"),
				).
				Value(&plan.Algorithm),
			huh.NewSelect[string]().
				Title("KDF").
				Options(
					huh.NewOption("Argon2id", "argon2id"),
					huh.NewOption("BLAKE3 balloon hashing", "blake3balloon"),
				).
				Value(&plan.HashingKind),
			huh.NewSelect[string]().
				Title("KDF difficulty").
				Options(
					huh.NewOption("Standard", "standard"),
					huh.NewOption("Hardened", "hardened"),
					huh.NewOption("Paranoid", "paranoid"),
				).
				Value(&plan.Params),
			huh.NewSelect[int]().
				Title("Real keyslots (1 or 2; the rest are random-fill)").
				Options(
					huh.NewOption("1", 1),
					huh.NewOption("2", 2),
				).
				Value(&plan.KeyslotCount),
		),
	)

	if err := form.Run(); err != nil {
		return plan, fmt.Errorf("ui: fixture plan form: %w", err)
	}

	plan.Passwords = make([]string, plan.KeyslotCount)
	for i := range plan.Passwords {
		if err := huh.NewInput().
			Title(fmt.Sprintf("Password for keyslot %d", i+1)).
			EchoMode(huh.EchoModePassword).
			Value(&plan.Passwords[i]).
			Run(); err != nil {
			return plan, fmt.Errorf("ui: password prompt: %w", err)
		}
	}

	if err := huh.NewConfirm().
		Title("Attach a header object (e.g. an encrypted file name)?").
		Value(&plan.IncludeObject).
		Run(); err != nil {
		return plan, fmt.Errorf("ui: object confirm: %w", err)
	}

	if plan.IncludeObject {
		if err := huh.NewInput().
			Title("Object plaintext (e.g. original file name)").
			Value(&plan.ObjectData).
			Run(); err != nil {
			return plan, fmt.Errorf("ui: object data prompt: %w", err)
		}
	}

	if err := huh.NewInput().
		Title("Output directory").
		Value(&plan.OutputDir).
		Run(); err != nil {
		return plan, fmt.Errorf("ui: output directory prompt: %w", err)
	}

	plan.Count = 1
	var countStr string
	if err := huh.NewInput().
		Title("How many fixtures to generate").
		Placeholder("1").
		Value(&countStr).
		Run(); err != nil {
		return plan, fmt.Errorf("ui: fixture count prompt: %w", err)
	}
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 {
			return plan, fmt.Errorf("ui: fixture count must be a positive number, got %q", countStr)
		}
		plan.Count = n
	}

	return plan, nil
}

// ConfirmOverwrite asks before clobbering an existing fixture file.
func (p *Prompt) ConfirmOverwrite(path string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
		Value(&confirm).
		Run()
	return confirm, err
}
