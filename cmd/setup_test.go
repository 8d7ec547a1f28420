package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/theirongolddev/agentcost/internal/config"
	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

func TestSetupWizardAppliesAnswers(t *testing.T) {
	in := strings.NewReader("2\n2\n142.5\n3\n")
	var out bytes.Buffer

	cfg := setupWizard(in, &out, config.DefaultConfig())

	if cfg.Defaults.Language != "en" {
		t.Errorf("Language = %q, want en", cfg.Defaults.Language)
	}
	if cfg.Defaults.Currency != "JPY" {
		t.Errorf("Currency = %q, want JPY", cfg.Defaults.Currency)
	}
	if cfg.Defaults.ExchangeRate != 142.5 {
		t.Errorf("ExchangeRate = %v, want 142.5", cfg.Defaults.ExchangeRate)
	}
	if want := theme.Names()[2]; cfg.Appearance.Theme != want {
		t.Errorf("Theme = %q, want %q", cfg.Appearance.Theme, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("wizard produced invalid config: %v", err)
	}
}

func TestSetupWizardKeepsValuesOnEmptyOrBadInput(t *testing.T) {
	in := strings.NewReader("\n9\nabc\n99\n")
	var out bytes.Buffer

	def := config.DefaultConfig()
	cfg := setupWizard(in, &out, def)

	if cfg.Defaults != def.Defaults {
		t.Errorf("defaults changed: %+v", cfg.Defaults)
	}
	if cfg.Appearance.Theme != def.Appearance.Theme {
		t.Errorf("Theme = %q, want %q", cfg.Appearance.Theme, def.Appearance.Theme)
	}
	if !strings.Contains(out.String(), `Ignoring "abc"`) {
		t.Errorf("expected a note about the bad exchange rate, got:\n%s", out.String())
	}
}

func TestSetupWizardHandlesEOF(t *testing.T) {
	cfg := setupWizard(strings.NewReader(""), &bytes.Buffer{}, config.DefaultConfig())
	if cfg.Defaults.Language != "ja" {
		t.Errorf("Language = %q, want ja", cfg.Defaults.Language)
	}
}
