package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"gcl/internal/ui/input"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys input.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys input.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// Render generates help content with colors for the pager
func (r *HelpRenderer) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("gcl Help"))
	help.WriteString("\n")

	k := r.keys
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{k.Up, k.Down, k.NextField, k.PrevField, k.Toggle, k.Run}},
		{"Selection", []key.Binding{k.SelectAll, k.ClearAll, k.SelectNonOK}},
		{"Strategy & Action", []key.Binding{k.KeepLocal, k.KeepRemote, k.Sync, k.Push, k.Pull, k.Status, k.Untracked}},
		{"Status", []key.Binding{k.RefreshLocal, k.RefreshFetch, k.RefreshBoth}},
		{"Other", []key.Binding{k.RestoreSymlinks, k.Help, k.Quit}},
	}
	for _, s := range sections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, b := range s.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", h.Key)), descStyle.Render(h.Desc)))
		}
	}

	help.WriteString(sectionStyle.Render("Actions"))
	help.WriteString("\n")
	for _, line := range []string{
		"Sync       commit local work, pull with the chosen strategy, commit, push",
		"Push       stage everything, commit, push",
		"Pull       commit local work, then pull with the chosen strategy",
		"Status     show uncommitted and unpushed work",
		"Untracked  list files outside version control",
		"",
		"Repositories missing from the working directory are cloned by",
		"Sync, Push and Pull. Status and Untracked report them as not cloned.",
	} {
		help.WriteString("  " + descStyle.Render(line) + "\n")
	}

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString("\n")
	help.WriteString(filterStyle.Render("  Press q to close this help"))
	return help.String()
}
