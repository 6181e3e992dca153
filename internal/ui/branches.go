package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Johannes-Berggren/kiki/internal/health"
)

type BranchView struct {
	entries []health.Entry
	base    string
	cursor  int
	width   int
	height  int
}

func NewBranchView() *BranchView {
	return &BranchView{
		cursor: 0,
	}
}

type branchesLoadedMsg struct {
	entries []health.Entry
	base    string
}

func (b *BranchView) Update(msg tea.Msg) (*BranchView, tea.Cmd) {
	switch msg := msg.(type) {
	case branchesLoadedMsg:
		b.entries = msg.entries
		b.base = msg.base
		if b.cursor >= len(b.entries) {
			b.cursor = max(0, len(b.entries)-1)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if b.cursor < len(b.entries)-1 {
				b.cursor++
			}

		case "k", "up":
			if b.cursor > 0 {
				b.cursor--
			}

		case "g":
			b.cursor = 0

		case "G":
			b.cursor = max(0, len(b.entries)-1)
		}

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
	}

	return b, nil
}

func (b *BranchView) View() string {
	if len(b.entries) == 0 {
		return mutedStyle.Render("No local branches.")
	}

	selectedStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("238"))

	var out strings.Builder

	header := fmt.Sprintf("Branches (%d local) vs %s", len(b.entries), b.base)
	out.WriteString(headerStyle.MarginBottom(1).Render(header) + "\n")

	for i, entry := range b.entries {
		line := renderEntryLine(entry)
		if i == b.cursor {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		out.WriteString(line + "\n")
	}

	return out.String()
}

func (b *BranchView) SelectedBranch() *health.Entry {
	if b.cursor >= 0 && b.cursor < len(b.entries) {
		return &b.entries[b.cursor]
	}
	return nil
}
