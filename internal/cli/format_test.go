package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/model"
)

func TestFormatCost(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{0.000166, "$0.000166"},
		{0.027, "$0.0270"},
		{64.8, "$64.80"},
		{777.6, "$777.60"},
		{116640, "$116,640"},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.in); got != tt.want {
			t.Errorf("FormatCost(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(64.8, model.CurrencyUSD, 150); got != "$64.80" {
		t.Errorf("USD = %q", got)
	}
	if got := FormatMoney(64.8, model.CurrencyJPY, 150); got != "$64.80 (¥9,720)" {
		t.Errorf("JPY = %q", got)
	}
}

func TestFormatNumberAndTokens(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1000); got != "-1,000" {
		t.Errorf("FormatNumber negative = %q", got)
	}
	if got := FormatTokens(229500); got != "229.5K" {
		t.Errorf("FormatTokens = %q", got)
	}
}

func TestFormatDeltaAndMultiplier(t *testing.T) {
	if got := FormatDelta(80, 64.8); got != "+$15.20" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(50, 64.8); got != "-$14.80" {
		t.Errorf("FormatDelta down = %q", got)
	}
	if got := FormatMultiplier(1.5); got != "x1.50" {
		t.Errorf("FormatMultiplier = %q", got)
	}
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Item", "Cost"},
		Rows: [][]string{
			{"Monthly", "$64.80 (¥9,720)"},
			{"---"},
			{"Daily", "$2.70"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width %d, want %d: %q", i, w, want, l)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 50, 100}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty sparkline not empty")
	}
}
