package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"marquee/internal/testsupport"
)

func TestCatalogInfoDefaultsToConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "catalog", "info"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog info: %v", err)
	}
	var info catalogInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if info.Origin != catalogFromConfig || info.Path != env.cfg.Paths.CatalogCSV {
		t.Fatalf("unexpected origin/path: %+v", info)
	}
	if info.Rows != 5 || info.NoCast != 1 {
		t.Fatalf("unexpected counts: %+v", info)
	}
	if info.Types["Movie"] != 4 || info.Types["TV Show"] != 1 {
		t.Fatalf("unexpected type counts: %+v", info.Types)
	}
	if len(info.Version) != 64 {
		t.Fatalf("expected sha256 version, got %q", info.Version)
	}
}

func TestCatalogImportBecomesDefault(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.baseDir, "incoming", "small.csv")
	testsupport.WriteCatalogCSV(t, src,
		testsupport.CatalogRow{Type: "Movie", Title: "One", Cast: "A", Description: "first"},
		testsupport.CatalogRow{Type: "Movie", Title: "Two", Cast: "B", Description: "second"},
	)

	out, _, err := runCLI(t, []string{"catalog", "import", src}, env.configPath)
	if err != nil {
		t.Fatalf("catalog import: %v", err)
	}
	requireContains(t, out, "Imported 2 titles")

	imported := filepath.Join(env.cfg.Paths.DataDir, catalogImportDir, "small.csv")
	if _, err := os.Stat(imported); err != nil {
		t.Fatalf("expected imported copy: %v", err)
	}

	out, _, err = runCLI(t, []string{"--json", "catalog", "info"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog info: %v", err)
	}
	var info catalogInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if info.Origin != catalogFromImport || info.Path != imported || info.Rows != 2 {
		t.Fatalf("expected imported catalog, got %+v", info)
	}

	out, _, err = runCLI(t, []string{"--catalog", env.cfg.Paths.CatalogCSV, "--json", "catalog", "info"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog info with flag: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if info.Origin != catalogFromFlag || info.Rows != 5 {
		t.Fatalf("expected flag to win, got %+v", info)
	}
}

func TestCatalogImportRejectsInvalidCSV(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.baseDir, "bad.csv")
	if err := os.WriteFile(src, []byte("title,type\nOnly,Movie\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	_, _, err := runCLI(t, []string{"catalog", "import", src}, env.configPath)
	if err == nil {
		t.Fatal("expected error for csv without required columns")
	}
	requireContains(t, err.Error(), "missing column")
}

func TestCatalogInfoText(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"catalog", "info"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog info: %v", err)
	}
	requireContains(t, out, "Titles: 5")
	requireContains(t, out, "Without cast: 1")
	requireContains(t, out, "  TV Show: 1")
}
