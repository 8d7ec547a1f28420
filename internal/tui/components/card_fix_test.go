package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	// Below the short card the right half must still carry styling.
	tallW := lipgloss.Width(tallCard)
	for i := shortLines; i < len(lines); i++ {
		if w := lipgloss.Width(lines[i]); w != tallW+22 {
			t.Errorf("line %d width = %d, want %d", i, w, tallW+22)
		}
		if strings.Count(lines[i], "\x1b[") < 2 {
			t.Errorf("line %d padding is unstyled: %q", i, lines[i])
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{80, 3}, {100, 4}, {7, 2}, {120, 5}} {
		sum := 0
		for _, w := range LayoutRow(tc.total, tc.n) {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Per request", Value: "$0.0270"},
		{Label: "Monthly", Value: "$64.80", Note: "+20% margin"},
		{Label: "Annual", Value: "$777.60"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	pos := 0
	for i := range Tabs {
		w := TabWidth(i)
		if got := TabAtX(pos + w/2); got != i {
			t.Fatalf("x=%d -> tab %d, want %d", pos+w/2, got, i)
		}
		pos += w + 1
	}
	if got := TabAtX(pos + 50); got != -1 {
		t.Errorf("past the last tab = %d, want -1", got)
	}
}

func TestRenderTabBarWidth(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 80)
		if w := lipgloss.Width(bar); w != 80 {
			t.Errorf("active=%d width = %d, want 80", active, w)
		}
		for _, tab := range Tabs {
			if !strings.Contains(stripANSI(bar), tab.Name) {
				t.Errorf("active=%d bar missing %q", active, tab.Name)
			}
		}
	}
}

func TestShareBars(t *testing.T) {
	out := ShareBars([]Share{
		{Label: "Main agent", Value: 3},
		{Label: "Search", Value: 1},
	}, 60)
	plain := stripANSI(out)
	if !strings.Contains(plain, " 75.0%") || !strings.Contains(plain, " 25.0%") {
		t.Errorf("shares:\n%s", plain)
	}

	zero := stripANSI(ShareBars([]Share{{Label: "a"}, {Label: "b"}}, 60))
	if strings.Count(zero, "  0.0%") != 2 {
		t.Errorf("zero total:\n%s", zero)
	}
}

func TestColumnChartFallsBackToSparkline(t *testing.T) {
	out := stripANSI(ColumnChart([]float64{1, 2, 3}, nil, theme.Active.Blue, 10, 2))
	if out != "▃▅█" {
		t.Errorf("sparkline = %q", out)
	}
}

func TestColumnChartHeight(t *testing.T) {
	labels := []string{"1", "2", "3", "4"}
	out := ColumnChart([]float64{1, 2, 3, 4}, labels, theme.Active.Blue, 60, 6)
	// rows + axis + labels
	if h := lipgloss.Height(out); h != 8 {
		t.Errorf("height = %d, want 8", h)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && ((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
