// Package tui provides the interactive Bubble Tea result viewer for agentcost.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/compare"
	"github.com/theirongolddev/agentcost/internal/model"
	"github.com/theirongolddev/agentcost/internal/tui/components"
	"github.com/theirongolddev/agentcost/internal/tui/theme"
)

// Tab indexes, in components.Tabs order.
const (
	tabOverview = iota
	tabSteps
	tabGrowth
	tabCompare
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5
)

// Options configures the viewer.
type Options struct {
	Catalog  *catalog.Catalog
	Pairings catalog.Pairings
	Presets  calc.Presets
	// Comparisons enables the Compare tab and saving. It may be nil.
	Comparisons *compare.Manager
	// Input, when set, is calculated on start. Otherwise the simple-mode
	// form runs first.
	Input        *model.DetailedInput
	Growth       model.GrowthScenario
	Currency     model.Currency
	ExchangeRate float64
}

// ResultMsg carries a finished calculation.
type ResultMsg struct {
	Result model.CostResult
	Err    error
}

// ComparisonsMsg carries the stored comparison entries.
type ComparisonsMsg struct {
	Entries []model.ComparisonEntry
	Err     error
}

// SavedMsg reports the outcome of adding the current result to comparisons.
type SavedMsg struct {
	Entry model.ComparisonEntry
	Added bool
	Err   error
}

// RemovedMsg reports the outcome of deleting a comparison entry.
type RemovedMsg struct {
	ID  string
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	result     model.CostResult
	hasResult  bool
	growth     model.GrowthScenario
	projection model.AnnualProjection
	entries    []model.ComparisonEntry

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	busy      bool
	notice    string
	err       error

	compareCursor int
	steps         viewport.Model
	spinner       spinner.Model

	// Simple-mode form (huh)
	form     *huh.Form
	formVals *FormValues
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Seed()
	}
	if opts.Pairings == nil {
		opts.Pairings = catalog.DefaultPairings()
	}
	if opts.Presets.UseCases == nil {
		opts.Presets = calc.DefaultPresets()
	}
	if opts.Currency == "" {
		opts.Currency = model.CurrencyUSD
	}

	growth := opts.Growth
	if growth.Mode == "" {
		growth = model.GrowthScenario{Mode: model.GrowthMonthlyRate, MonthlyGrowthRate: 5}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		opts:    opts,
		growth:  growth,
		spinner: sp,
		steps:   viewport.New(0, 0),
	}
	if opts.Input != nil {
		a.busy = true
	} else {
		a.openForm()
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
	}
	if a.opts.Input != nil {
		cmds = append(cmds, calculateDetailedCmd(*a.opts.Input, a.opts))
	}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	if a.opts.Comparisons != nil {
		cmds = append(cmds, loadComparisonsCmd(a.opts.Comparisons))
	}
	return tea.Batch(cmds...)
}

func (a *App) openForm() {
	models := a.opts.Catalog.MainModels(a.opts.Pairings)
	a.formVals = DefaultFormValues(models)
	if m, ok := a.opts.Catalog.ModelByName(a.result.Assumptions.ModelName); ok && a.hasResult {
		a.formVals.ModelID = m.ID
	}
	a.form = NewSimpleForm(models, a.formVals)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.resizeSteps()
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := components.TabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if a.activeTab == tabSteps {
				var cmd tea.Cmd
				a.steps, cmd = a.steps.Update(msg)
				return a, cmd
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a.updateKeys(msg)

	case ResultMsg:
		a.busy = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		a.setResult(msg.Result)
		return a, nil

	case ComparisonsMsg:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.entries = msg.Entries
		a.clampCompareCursor()
		return a, nil

	case SavedMsg:
		switch {
		case msg.Err != nil:
			a.err = msg.Err
		case msg.Added:
			a.notice = "Saved to comparisons as " + msg.Entry.Label
		default:
			a.notice = "Already in comparisons: " + msg.Entry.Label
		}
		return a, loadComparisonsCmd(a.opts.Comparisons)

	case RemovedMsg:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.notice = "Removed comparison entry"
		return a, loadComparisonsCmd(a.opts.Comparisons)

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.notice = ""

	switch a.activeTab {
	case tabSteps:
		switch key {
		case "j", "down", "k", "up", "pgdown", "pgup", "ctrl+d", "ctrl+u":
			var cmd tea.Cmd
			a.steps, cmd = a.steps.Update(msg)
			return a, cmd
		}
	case tabGrowth:
		switch key {
		case "+", "=":
			a.adjustGrowth(1)
			return a, nil
		case "-", "_":
			a.adjustGrowth(-1)
			return a, nil
		case "m":
			a.toggleGrowthMode()
			return a, nil
		}
	case tabCompare:
		switch key {
		case "j", "down":
			if a.compareCursor < len(a.entries)-1 {
				a.compareCursor++
			}
			return a, nil
		case "k", "up":
			if a.compareCursor > 0 {
				a.compareCursor--
			}
			return a, nil
		case "d", "delete":
			if a.opts.Comparisons != nil && len(a.entries) > 0 {
				return a, removeComparisonCmd(a.opts.Comparisons, a.entries[a.compareCursor].ID)
			}
			return a, nil
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "n":
		a.openForm()
		return a, a.form.Init()
	case "a":
		if a.opts.Comparisons == nil {
			a.notice = "Comparisons are unavailable (no database)"
			return a, nil
		}
		if a.hasResult {
			return a, saveComparisonCmd(a.opts.Comparisons, a.result)
		}
		return a, nil
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.form = nil
		in, err := a.formVals.Input()
		if err != nil {
			a.err = err
			return a, nil
		}
		a.busy = true
		return a, tea.Batch(calculateSimpleCmd(in, a.opts), a.spinner.Tick)
	case huh.StateAborted:
		a.form = nil
		if !a.hasResult {
			return a, tea.Quit
		}
		return a, nil
	}
	return a, cmd
}

func (a *App) setResult(r model.CostResult) {
	a.result = r
	a.hasResult = true
	a.recomputeGrowth()
	a.steps.SetContent(a.renderStepsTable(a.contentWidth()))
	a.steps.GotoTop()
}

func (a *App) recomputeGrowth() {
	a.projection = calc.CalcGrowthProjection(a.result.MonthlyCostUSD, a.exchangeRate(), a.growth)
}

func (a *App) adjustGrowth(step float64) {
	if a.growth.Mode != model.GrowthMonthlyRate {
		return
	}
	a.growth.MonthlyGrowthRate += step
	if a.growth.MonthlyGrowthRate < -100 {
		a.growth.MonthlyGrowthRate = -100
	}
	a.recomputeGrowth()
}

func (a *App) toggleGrowthMode() {
	if a.growth.Mode == model.GrowthMonthlyRate {
		a.growth.Mode = model.GrowthMultiplier
	} else {
		a.growth.Mode = model.GrowthMonthlyRate
	}
	a.recomputeGrowth()
}

func (a *App) clampCompareCursor() {
	if a.compareCursor >= len(a.entries) {
		a.compareCursor = len(a.entries) - 1
	}
	if a.compareCursor < 0 {
		a.compareCursor = 0
	}
}

func (a *App) resizeSteps() {
	a.steps.Width = components.CardInnerWidth(a.contentWidth())
	a.steps.Height = max(a.contentHeight()-3, minContentHeight)
	if a.hasResult {
		a.steps.SetContent(a.renderStepsTable(a.contentWidth()))
	}
}

func (a App) exchangeRate() float64 {
	if a.result.ExchangeRate > 0 {
		return a.result.ExchangeRate
	}
	return a.opts.ExchangeRate
}

func (a App) currency() model.Currency {
	if a.hasResult && a.result.Assumptions.Currency != "" {
		return a.result.Assumptions.Currency
	}
	return a.opts.Currency
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// contentHeight is the height left between the header and status bar.
func (a App) contentHeight() int {
	return max(a.height-3, minContentHeight)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.form.View()
	}
	if !a.hasResult {
		return a.viewWaiting()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  agentcost needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	h := max(a.height, 5)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewWaiting() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ agentcost"))
	b.WriteString(mutedStyle.Render(" · LLM running cost estimator"))
	b.WriteString("\n\n")
	switch {
	case a.err != nil:
		b.WriteString(errStyle.Render("Error: " + a.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("[n] new estimate  [q] quit"))
	case a.busy:
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" Calculating..."))
	default:
		b.WriteString(mutedStyle.Render("[n] new estimate  [q] quit"))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"o s g c", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Scroll steps / select comparison"},
		}},
		{"Actions", [][2]string{
			{"n", "New quick estimate"},
			{"a", "Add result to comparisons"},
			{"d", "Delete selected comparison"},
			{"+ -", "Adjust monthly growth rate"},
			{"m", "Toggle growth mode"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, kb := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", kb[0])),
				descStyle.Render(kb[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	info := pill.Render(" ") + accent.Render(a.result.Assumptions.ModelName) +
		pill.Render(" │ ") + accent.Render(string(a.currency()))
	if a.result.Assumptions.AuxiliaryModelName != "" {
		info += pill.Render(" │ aux ") + accent.Render(a.result.Assumptions.AuxiliaryModelName)
	}
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(info)

	right := ""
	switch {
	case a.err != nil:
		right = "error: " + a.err.Error()
	case a.notice != "":
		right = a.notice
	}
	statusBar := components.RenderStatusBar(w, "[?]help  [n]ew  [a]dd  [q]uit", right)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabSteps:
		content = components.ContentCard("Cost breakdown per request", a.steps.View(), cw)
	case tabGrowth:
		content = a.renderGrowthTab(cw)
	case tabCompare:
		content = a.renderCompareTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func calculateDetailedCmd(in model.DetailedInput, opts Options) tea.Cmd {
	return func() tea.Msg {
		if err := calc.ValidateDetailed(in); err != nil {
			return ResultMsg{Err: err}
		}
		r, err := calc.Calculate(in, opts.Catalog, opts.Pairings.RecommendAuxiliary)
		return ResultMsg{Result: r, Err: err}
	}
}

func calculateSimpleCmd(in model.SimpleInput, opts Options) tea.Cmd {
	return func() tea.Msg {
		if err := calc.ValidateSimple(in, opts.Presets); err != nil {
			return ResultMsg{Err: err}
		}
		detailed, err := calc.ExpandSimple(in, opts.Catalog, opts.Pairings.RecommendAuxiliary, opts.Presets)
		if err != nil {
			return ResultMsg{Err: err}
		}
		if opts.Currency != "" {
			detailed.Currency = opts.Currency
		}
		if opts.ExchangeRate > 0 {
			detailed.ExchangeRate = opts.ExchangeRate
		}
		r, err := calc.Calculate(detailed, opts.Catalog, opts.Pairings.RecommendAuxiliary)
		return ResultMsg{Result: r, Err: err}
	}
}

func loadComparisonsCmd(m *compare.Manager) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.List(context.Background())
		return ComparisonsMsg{Entries: entries, Err: err}
	}
}

func saveComparisonCmd(m *compare.Manager, r model.CostResult) tea.Cmd {
	return func() tea.Msg {
		entry, added, err := m.Add(context.Background(), r)
		return SavedMsg{Entry: entry, Added: added, Err: err}
	}
}

func removeComparisonCmd(m *compare.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		return RemovedMsg{ID: id, Err: m.Remove(context.Background(), id)}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	n := strings.Count(s, "\n") + 1
	if n >= h {
		return s
	}
	return s + strings.Repeat("\n", h-n)
}

// fillLinesWithBackground pads every line to width with the background
// colour so gaps between cards are not left unstyled.
func fillLinesWithBackground(s string, width int, bg lipgloss.Color) string {
	fill := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + fill.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}
