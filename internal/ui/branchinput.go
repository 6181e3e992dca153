package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type branchInputDoneMsg struct {
	name string
}

type branchInputCancelMsg struct{}

// BranchInputView prompts for the name of a branch to create from the base.
type BranchInputView struct {
	textInput textinput.Model
	base      string
}

func NewBranchInputView(base string) *BranchInputView {
	ti := textinput.New()
	ti.Placeholder = "feature/my-branch"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	return &BranchInputView{
		textInput: ti,
		base:      base,
	}
}

func (b *BranchInputView) Init() tea.Cmd {
	return textinput.Blink
}

func (b *BranchInputView) Update(msg tea.Msg) (*BranchInputView, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			name := NormalizeBranchName(b.textInput.Value())
			if name != "" {
				return b, func() tea.Msg { return branchInputDoneMsg{name: name} }
			}
			return b, nil
		case "esc":
			return b, func() tea.Msg { return branchInputCancelMsg{} }
		}
	}

	b.textInput, cmd = b.textInput.Update(msg)
	return b, cmd
}

func (b *BranchInputView) View() string {
	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return "\n" +
		promptStyle.Render("New branch from "+b.base+": ") + b.textInput.View() + "\n\n" +
		helpStyle.Render("enter to create • esc to cancel")
}

// NormalizeBranchName trims the input and turns inner whitespace into dashes.
func NormalizeBranchName(name string) string {
	return strings.Join(strings.Fields(name), "-")
}
