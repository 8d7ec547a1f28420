package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Steps", Key: 's', KeyPos: 0},
	{Name: "Growth", Key: 'g', KeyPos: 0},
	{Name: "Compare", Key: 'c', KeyPos: 0},
}

const tabSeparator = " "

// TabWidth is the rendered width of tab i: the name plus one cell of
// padding either side.
func TabWidth(i int) int {
	return lipgloss.Width(Tabs[i].Name) + 2
}

// RenderTabBar renders the tab bar with the given active index, padded to width.
func RenderTabBar(activeIdx, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true).
		Underline(true)
	pad := lipgloss.NewStyle().Background(t.Surface)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = activeStyle.Render(tab.Name)
			continue
		}
		before := tab.Name[:tab.KeyPos]
		key := string(tab.Name[tab.KeyPos])
		after := tab.Name[tab.KeyPos+1:]
		parts[i] = pad.Render(" ") +
			inactiveStyle.Render(before) + keyStyle.Render(key) + inactiveStyle.Render(after) +
			pad.Render(" ")
	}

	row := strings.Join(parts, pad.Render(tabSeparator))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabAtX returns the tab under column x of the tab bar, or -1.
func TabAtX(x int) int {
	pos := 0
	for i := range Tabs {
		w := TabWidth(i)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabSeparator)
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
