package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Johannes-Berggren/kiki/internal/health"
	"github.com/Johannes-Berggren/kiki/internal/models"
)

// Engine is the part of the repository the browser drives.
type Engine interface {
	Analyze(ctx context.Context) (*models.BranchReport, error)
	PreviewRebaseConflicts(ctx context.Context, branch, base string) models.ConflictPreview
	WouldRequireForcePush(ctx context.Context, branch string) bool
	CreateBranch(ctx context.Context, name, base string) error
}

type errMsg struct {
	err error
}

type noticeMsg struct {
	text string
}

type branchCreatedMsg struct {
	name string
	base string
}

type Model struct {
	ctx         context.Context
	engine      Engine
	width       int
	height      int
	loading     bool
	spinner     spinner.Model
	branchView  *BranchView
	detailView  *DetailView
	branchInput *BranchInputView
	base        string
	err         error
	notice      string
}

func NewModel(ctx context.Context, engine Engine) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	return Model{
		ctx:        ctx,
		engine:     engine,
		loading:    true,
		spinner:    s,
		branchView: NewBranchView(),
		detailView: NewDetailView(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadBranches(),
	)
}

func (m Model) loadBranches() tea.Cmd {
	return func() tea.Msg {
		report, err := m.engine.Analyze(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		entries := health.Evaluate(report.Branches)
		slices.SortStableFunc(entries, health.Compare)
		return branchesLoadedMsg{entries: entries, base: report.Base}
	}
}

func (m Model) previewSelected() tea.Cmd {
	entry := m.branchView.SelectedBranch()
	if entry == nil {
		return nil
	}
	branch, base := entry.Status.Name, m.base
	return func() tea.Msg {
		return previewMsg{
			branch:    branch,
			base:      base,
			preview:   m.engine.PreviewRebaseConflicts(m.ctx, branch, base),
			forcePush: m.engine.WouldRequireForcePush(m.ctx, branch),
		}
	}
}

func (m Model) createBranch(name string) tea.Cmd {
	base := m.base
	return func() tea.Msg {
		if err := m.engine.CreateBranch(m.ctx, name, base); err != nil {
			return noticeMsg{fmt.Sprintf("Failed to create %s: %v", name, err)}
		}
		return branchCreatedMsg{name: name, base: base}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd, inputCmd tea.Cmd

	if m.branchInput != nil {
		switch msg := msg.(type) {
		case branchInputDoneMsg:
			m.branchInput = nil
			m.notice = "Creating " + msg.name + "..."
			return m, m.createBranch(msg.name)
		case branchInputCancelMsg:
			m.branchInput = nil
			return m, nil
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.branchInput, cmd = m.branchInput.Update(msg)
			return m, cmd
		default:
			m.branchInput, inputCmd = m.branchInput.Update(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.loadBranches())
		case "p":
			m.notice = "Previewing rebase..."
			return m, m.previewSelected()
		case "n":
			if m.base == "" {
				return m, nil
			}
			m.branchInput = NewBranchInputView(m.base)
			return m, m.branchInput.Init()
		}

	case branchesLoadedMsg:
		m.loading = false
		m.err = nil
		m.base = msg.base

	case branchCreatedMsg:
		m.notice = fmt.Sprintf("Created %s from %s", msg.name, msg.base)
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadBranches())

	case previewMsg:
		m.notice = ""
		m.detailView.SetPreview(msg)
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	m.branchView, cmd = m.branchView.Update(msg)

	return m, tea.Batch(inputCmd, cmd)
}

func (m Model) View() string {
	header := m.renderHeader()

	var body string
	switch {
	case m.err != nil:
		body = LevelStyle(health.Critical).Render(fmt.Sprintf("Error: %v", m.err))
	case m.loading:
		body = m.spinner.View() + " Analyzing branches..."
	default:
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.branchView.View(),
			m.detailView.View(m.branchView.SelectedBranch()),
		)
	}

	if m.branchInput != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.branchInput.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170")).
		MarginRight(2)

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	title := titleStyle.Render("🧙 kiki")
	info := ""
	if m.base != "" {
		info = mutedStyle.Render("base " + m.base)
	}

	headerLine := lipgloss.JoinHorizontal(lipgloss.Top, title, info)
	divider := dividerStyle.Render(strings.Repeat("─", m.width))

	return lipgloss.JoinVertical(lipgloss.Left, headerLine, divider)
}

func (m Model) renderFooter() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	keys := []string{
		"j/k: navigate",
		"g/G: top/bottom",
		"p: preview rebase",
		"n: new branch",
		"r: refresh",
		"q: quit",
	}

	divider := dividerStyle.Render(strings.Repeat("─", m.width))
	lines := []string{divider}
	if m.notice != "" {
		lines = append(lines, mutedStyle.Render(m.notice))
	}
	lines = append(lines, helpStyle.Render(strings.Join(keys, " • ")))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
