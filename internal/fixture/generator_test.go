package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hambosto/vaultheader/internal/header"
	"github.com/hambosto/vaultheader/internal/ui"
)

func testPlan(t *testing.T, nKeyslots int, includeObject bool) Plan {
	t.Helper()

	passwords := make([]string, nKeyslots)
	for i := range passwords {
		passwords[i] = "correct horse battery staple"
	}

	uiPlan := ui.FixturePlan{
		Algorithm:     "aes256gcm",
		HashingKind:   "argon2id",
		Params:        "standard",
		Passwords:     passwords,
		IncludeObject: includeObject,
		ObjectData:    "original-file.txt",
		OutputDir:     t.TempDir(),
		Count:         1,
	}

	plan, err := FromUIPlan(uiPlan)
	if err != nil {
		t.Fatal(err)
	}
	return plan
}

func TestFromUIPlan_UnknownChoices(t *testing.T) {
	tests := []struct {
		name string
		plan ui.FixturePlan
	}{
		{"algorithm", ui.FixturePlan{Algorithm: "rot13", HashingKind: "argon2id", Params: "standard"}},
		{"hashing", ui.FixturePlan{Algorithm: "aes256gcm", HashingKind: "md5", Params: "standard"}},
		{"params", ui.FixturePlan{Algorithm: "aes256gcm", HashingKind: "argon2id", Params: "extreme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromUIPlan(tt.plan); err == nil {
				t.Error("expected error for unknown choice")
			}
		})
	}
}

func TestGenerator_BuildAndWriteFixture_RoundTrip(t *testing.T) {
	g := NewGenerator()
	plan := testPlan(t, 2, true)

	h, err := g.Build(plan)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(h.Keyslots) != 2 {
		t.Fatalf("len(h.Keyslots) = %d, want 2", len(h.Keyslots))
	}
	if len(h.Objects) != 1 {
		t.Fatalf("len(h.Objects) = %d, want 1", len(h.Objects))
	}

	path, err := g.WriteFixture(h, plan.OutputDir, "fixture-000.hdr")
	if err != nil {
		t.Fatalf("WriteFixture() error = %v", err)
	}
	if filepath.Dir(path) != plan.OutputDir {
		t.Errorf("path dir = %q, want %q", filepath.Dir(path), plan.OutputDir)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := header.DecodeHeader(f)
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if decoded.Algorithm != h.Algorithm {
		t.Errorf("decoded algorithm = %v, want %v", decoded.Algorithm, h.Algorithm)
	}
	if len(decoded.Objects) != 1 {
		t.Errorf("len(decoded.Objects) = %d, want 1", len(decoded.Objects))
	}
}

func TestGenerator_Build_NoObject(t *testing.T) {
	g := NewGenerator()
	plan := testPlan(t, 1, false)

	h, err := g.Build(plan)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(h.Objects) != 0 {
		t.Errorf("len(h.Objects) = %d, want 0", len(h.Objects))
	}
}
