package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `
products:
  - code: "1001"
    description: Filme Stretch 500mm
  - code: "1002"
    description: Filme Shrink 300mm
`)

	products, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}
	if products[0].Code != "1001" || products[0].Description != "Filme Stretch 500mm" {
		t.Errorf("first entry = %+v", products[0])
	}
}

func TestLoadSeedRejectsMissingCode(t *testing.T) {
	path := writeSeed(t, `
products:
  - description: no code here
`)

	if _, err := LoadSeed(path); err == nil {
		t.Fatal("expected load to fail for entry without code")
	}
}

func TestLoadSeedRejectsMalformedYAML(t *testing.T) {
	path := writeSeed(t, "products: [unclosed")

	if _, err := LoadSeed(path); err == nil {
		t.Fatal("expected load to fail for malformed yaml")
	}
}
