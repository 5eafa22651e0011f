package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "gooze.dev/pkg/morph/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Faint(true)

	statusStyles = map[m.TestStatus]lipgloss.Style{
		m.Killed:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		m.Survived: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		m.Timeout:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		m.Skipped:  lipgloss.NewStyle().Faint(true),
		m.Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
)

// TUI implements UI for terminals: progress lines are styled and long tables
// open in a scrollable pager.
type TUI struct {
	*SimpleUI
	output io.Writer
}

// NewTUI creates a new TUI writing to the command's output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), output: cmd.OutOrStdout()}
}

// DisplayEstimation shows the estimation table, paged when it does not fit.
func (t *TUI) DisplayEstimation(ctx context.Context, mutations []m.Mutation, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		return t.SimpleUI.DisplayEstimation(ctx, mutations, err)
	}

	table := renderEstimationTable(buildFileStats(mutations), len(mutations))

	return t.page("morph - mutation estimate", table)
}

// DisplayReports shows the report table and survivor diffs, paged when they do not fit.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(renderReportTable(reports))

	for _, report := range reports {
		if report.Status == m.Survived && report.Diff != "" {
			fmt.Fprintf(&b, "\n%s %s\n%s\n", statusStyles[m.Survived].Render("survived"), shortID(report.MutationID), report.Diff)
		}
	}

	return t.page("morph - mutation reports", b.String())
}

// DisplayCompletedTestInfo prints a styled completion line.
func (t *TUI) DisplayCompletedTestInfo(ctx context.Context, currentMutation m.Mutation, report m.Report) {
	if ctx.Err() != nil {
		return
	}

	status := report.Status.String()
	if style, ok := statusStyles[report.Status]; ok {
		status = style.Render(status)
	}

	_, _ = fmt.Fprintf(t.output, "Completed mutation %s (%s) -> %s\n", shortID(currentMutation.ID), currentMutation.Operator, status)
}

// DisplayMutationScore prints the styled final score.
func (t *TUI) DisplayMutationScore(ctx context.Context, score float64) {
	if ctx.Err() != nil {
		return
	}

	_, _ = fmt.Fprintln(t.output, titleStyle.Render(fmt.Sprintf("Mutation score: %.2f%%", score)))
}

func (t *TUI) page(title, content string) error {
	model := newPagerModel(title, content)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	// If content is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.render(false))
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

type pagerKeyMap struct {
	quit     key.Binding
	down     key.Binding
	up       key.Binding
	top      key.Binding
	bottom   key.Binding
	pageDown key.Binding
	pageUp   key.Binding
}

var pagerKeys = pagerKeyMap{
	quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
	up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
	top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	pageDown: key.NewBinding(key.WithKeys("d", "pgdown"), key.WithHelp("d", "page down")),
	pageUp:   key.NewBinding(key.WithKeys("u", "pgup"), key.WithHelp("u", "page up")),
}

func (k pagerKeyMap) help() string {
	parts := make([]string, 0, 7)
	for _, binding := range []key.Binding{k.down, k.up, k.pageDown, k.pageUp, k.top, k.bottom, k.quit} {
		parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
	}

	return strings.Join(parts, " • ")
}

// pagerModel is a Bubble Tea model scrolling over the lines of a text.
type pagerModel struct {
	title  string
	lines  []string
	height int
	width  int
	offset int
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{
		title: title,
		lines: strings.Split(strings.TrimRight(content, "\n"), "\n"),
	}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width
		pm.offset = min(pm.offset, pm.maxOffset())

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, pagerKeys.quit):
		return pm, tea.Quit
	case key.Matches(msg, pagerKeys.down):
		pm.offset++
	case key.Matches(msg, pagerKeys.up):
		pm.offset--
	case key.Matches(msg, pagerKeys.top):
		pm.offset = 0
	case key.Matches(msg, pagerKeys.bottom):
		pm.offset = pm.maxOffset()
	case key.Matches(msg, pagerKeys.pageDown):
		pm.offset += pm.linesPerPage()
	case key.Matches(msg, pagerKeys.pageUp):
		pm.offset -= pm.linesPerPage()
	}

	pm.offset = max(0, min(pm.offset, pm.maxOffset()))

	return pm, nil
}

// linesPerPage reserves two lines for the title and two for the footer.
func (pm pagerModel) linesPerPage() int {
	if pm.height == 0 {
		return 10
	}

	return max(1, pm.height-4)
}

func (pm pagerModel) maxOffset() int {
	return max(0, len(pm.lines)-pm.linesPerPage())
}

func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && len(pm.lines) > pm.linesPerPage()
}

func (pm pagerModel) View() string {
	return pm.render(true)
}

func (pm pagerModel) render(paged bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(pm.title))
	b.WriteString("\n\n")

	start, end := 0, len(pm.lines)
	if paged {
		start = pm.offset
		end = min(len(pm.lines), start+pm.linesPerPage())
	}

	for _, line := range pm.lines[start:end] {
		if pm.width > 0 && lipgloss.Width(line) > pm.width {
			line = line[:min(len(line), pm.width)]
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if paged {
		fmt.Fprintf(&b, "\n%s", footerStyle.Render(fmt.Sprintf("lines %d-%d of %d  %s", start+1, end, len(pm.lines), pagerKeys.help())))
	}

	return b.String()
}
