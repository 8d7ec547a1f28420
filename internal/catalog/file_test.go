package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGENTCOST_TEST_DIR", dir)

	seed := Seed()
	if err := WriteFile("$AGENTCOST_TEST_DIR/nested/catalog.yaml", seed); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nested", "catalog.yaml"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !strings.Contains(string(data), "input_price:") {
		t.Errorf("yaml does not use snake_case keys:\n%s", data)
	}

	got, err := LoadFile(filepath.Join(dir, "nested", "catalog.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(got.Models) != len(seed.Models) || len(got.WebSearchTools) != len(seed.WebSearchTools) {
		t.Fatalf("round trip lost records: %d models, %d tools", len(got.Models), len(got.WebSearchTools))
	}
	m, ok := got.ModelByName("GPT-4.1")
	if !ok || m.CacheReadPrice == nil || *m.CacheReadPrice != 0.5 {
		t.Errorf("GPT-4.1 after round trip = %+v", m)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("models: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil || !strings.Contains(err.Error(), "parsing catalog") {
		t.Errorf("malformed yaml err = %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	body := `providers:
  - id: 1
    name: Acme
models:
  - id: 1
    provider_id: 2
    name: Orphan
    category: standard
    input_price: 1
    output_price: 2
`
	if err := os.WriteFile(invalid, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(invalid); err == nil || !strings.Contains(err.Error(), "unknown provider 2") {
		t.Errorf("invalid catalog err = %v", err)
	}
}
