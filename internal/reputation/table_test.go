package reputation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/veridex/veridex/internal/model"
)

func TestDefaultTable_IsValid(t *testing.T) {
	if err := DefaultTable().Validate(); err != nil {
		t.Fatalf("default table must validate, got: %v", err)
	}
}

func TestTable_ValidateRejectsBrokenTables(t *testing.T) {
	tests := []struct {
		table *Table
		desc  string
	}{
		{
			table: &Table{},
			desc:  "no tiers",
		},
		{
			table: &Table{Tiers: map[model.Tier]TierEntry{
				model.TierGeneral: {Credibility: 1.5, Domains: []string{"example.com"}},
			}},
			desc: "credibility above 1",
		},
		{
			table: &Table{Tiers: map[model.Tier]TierEntry{
				model.TierGeneral: {Credibility: -0.1, Domains: []string{"example.com"}},
			}},
			desc: "negative credibility",
		},
		{
			table: &Table{Tiers: map[model.Tier]TierEntry{
				model.TierGeneral: {Credibility: 0.5},
			}},
			desc: "tier with no domains",
		},
	}

	for _, tt := range tests {
		if err := tt.table.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", tt.desc)
		}
	}
}

func TestTable_ValidateRejectsConflictingOwnership(t *testing.T) {
	table := &Table{Tiers: map[model.Tier]TierEntry{
		model.TierGeneral: {Credibility: 0.5, Domains: []string{"example.com"}},
	}}
	table.Ownership.Groups = []OwnershipGroup{
		{ID: "a", Domains: []string{"shared.com"}},
		{ID: "b", Domains: []string{"shared.com"}},
	}

	if err := table.Validate(); err == nil {
		t.Error("expected error for domain in two ownership groups")
	}
}

func TestLoadTable_EmptyPathUsesDefaults(t *testing.T) {
	table, err := LoadTable("")
	if err != nil {
		t.Fatalf("LoadTable(\"\"): %v", err)
	}
	if len(table.Tiers) == 0 {
		t.Error("expected built-in tiers")
	}
}

func TestLoadTable_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")

	content := `tiers:
  government:
    credibility: 0.9
    domains: ["*.gov"]
  blacklist:
    credibility: 0.15
    risk_flags: [unreliable]
    domains: [hoax.example]
ownership:
  groups:
    - id: grp
      domains: [a.example, b.example]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if got := table.Tiers[model.TierGovernment].Credibility; got != 0.9 {
		t.Errorf("government credibility = %g, want 0.9", got)
	}
	if got := table.OwnerGroupFor("b.example"); got != "grp" {
		t.Errorf("owner group = %q, want grp", got)
	}
}

func TestLoadTable_ParseErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("tiers: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTable(path); err == nil {
		t.Error("expected parse error for broken YAML")
	}
}

func TestLoadTable_OutOfRangeCredibilityIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := "tiers:\n  government:\n    credibility: 9.5\n    domains: [\"*.gov\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTable(path); err == nil {
		t.Error("expected validation error for credibility outside [0,1]")
	}
}
