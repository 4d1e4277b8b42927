package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestDefaultLookups(t *testing.T) {
	cat := Default()

	woodcutter, ok := cat.Building("woodcutter")
	if !ok {
		t.Fatal("woodcutter missing from default catalog")
	}
	if woodcutter.Production["wood"] != 10 {
		t.Errorf("woodcutter wood rate = %v, want 10", woodcutter.Production["wood"])
	}

	if _, ok := cat.Building("palace"); ok {
		t.Error("unknown building key must not resolve")
	}

	spearman, ok := cat.Unit("spearman")
	if !ok {
		t.Fatal("spearman missing from default catalog")
	}
	if spearman.TrainSeconds != 1600 {
		t.Errorf("spearman train_seconds = %d, want 1600", spearman.TrainSeconds)
	}

	if _, ok := cat.Unit("catapult"); ok {
		t.Error("unknown unit key must not resolve")
	}
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `
buildings:
  - key: woodcutter
    name: Woodcutter
    max_level: 10
    production:
      wood: 12.5
    base_cost:
      wood: 40
    build_seconds: 260
units:
  - key: spearman
    name: Spearman
    cost:
      wood: 120
    train_seconds: 1600
`)

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	building, ok := cat.Building("woodcutter")
	if !ok {
		t.Fatal("loaded catalog missing woodcutter")
	}
	if building.MaxLevel != 10 {
		t.Errorf("max_level = %d, want 10", building.MaxLevel)
	}
	if building.Production["wood"] != 12.5 {
		t.Errorf("wood rate = %v, want 12.5", building.Production["wood"])
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "empty catalog",
			yaml:    "buildings: []\n",
			wantErr: "no building types",
		},
		{
			name: "duplicate building key",
			yaml: `
buildings:
  - key: woodcutter
    max_level: 10
  - key: woodcutter
    max_level: 10
`,
			wantErr: "duplicate building type key",
		},
		{
			name: "zero max level",
			yaml: `
buildings:
  - key: woodcutter
    max_level: 0
`,
			wantErr: "max_level",
		},
		{
			name: "negative production rate",
			yaml: `
buildings:
  - key: woodcutter
    max_level: 10
    production:
      wood: -5
`,
			wantErr: "production rate",
		},
		{
			name: "unit without train time",
			yaml: `
buildings:
  - key: woodcutter
    max_level: 10
units:
  - key: spearman
`,
			wantErr: "train_seconds",
		},
		{
			name:    "malformed yaml",
			yaml:    "buildings: [unclosed",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tt.yaml))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() on missing file succeeded, want error")
	}
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write catalog fixture: %v", err)
	}
	return path
}
