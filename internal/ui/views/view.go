package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"gcl/internal/domain"
	"gcl/internal/ui/state"
)

// chromeHeight is the number of lines drawn around the repository rows
const chromeHeight = 21

// ListHeight returns how many repository rows fit on a screen of height h
func ListHeight(h int) int {
	return max(h-chromeHeight, 3)
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width     int
	Height    int
	Session   *state.Session
	Entries   []domain.RepoEntry
	HelpModel help.Model
	HelpLines [][]key.Binding
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	repoRender *RepositoryRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:     styles,
		repoRender: NewRepositoryRenderer(styles),
	}
}

// Render draws the whole screen. It reads state and never mutates it.
func (r *Renderer) Render(v ViewState) string {
	s := v.Session
	width := v.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render("gcl · Git Sync Manager"))
	b.WriteString("\n")

	r.renderField(&b, "WORKING DIRECTORY", s.Focus == state.FieldWorkDir, width, []option{
		{label: "Current directory: " + s.CurrentPath, active: s.WorkdirMode == state.CurrentDir},
		{label: "Custom path: " + s.CustomPath, active: s.WorkdirMode == state.CustomPath},
	})
	r.renderField(&b, "MERGE STRATEGY (on conflict)", s.Focus == state.FieldStrategy, width, []option{
		{label: "Keep Local", hint: "o", active: s.Strategy == domain.KeepLocal},
		{label: "Keep Remote", hint: "e", active: s.Strategy == domain.KeepRemote},
	})
	actions := make([]option, len(domain.Actions))
	for i, a := range domain.Actions {
		actions[i] = option{label: actionLabel(a), hint: actionKey(a), active: s.Action == a}
	}
	r.renderField(&b, "ACTION", s.Focus == state.FieldAction, width, actions)

	r.renderRepos(&b, v)

	b.WriteString("\n")
	run := fmt.Sprintf("[ RUN ]  %s on %d repositories in %s", s.Action, s.Selection.Count(), s.Root())
	if s.Focus == state.FieldRun {
		b.WriteString(highlight(r.styles, run, width))
	} else {
		b.WriteString(r.styles.Run.Render(truncateTo(run, width)))
	}
	b.WriteString("\n")

	if s.Message != "" {
		style := r.styles.Message
		if s.Busy {
			style = r.styles.StatusBusy
		}
		b.WriteString(style.Render(truncateTo(s.Message, width)))
	}
	b.WriteString("\n")

	h := v.HelpModel
	h.Width = width
	for i, line := range v.HelpLines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(h.ShortHelpView(line))
	}
	return b.String()
}

type option struct {
	label  string
	hint   string
	active bool
}

// renderField draws a section title and its options. Only the active
// option of the focused field is highlighted.
func (r *Renderer) renderField(b *strings.Builder, title string, focused bool, width int, opts []option) {
	b.WriteString(r.styles.Section.Render(title))
	b.WriteString("\n")
	for _, o := range opts {
		mark := "( )"
		if o.active {
			mark = "(•)"
		}
		text := "  " + mark + " " + o.label
		if focused && o.active {
			if o.hint != "" {
				text += "  (" + o.hint + ")"
			}
			b.WriteString(highlight(r.styles, text, width))
		} else {
			line := truncateTo(text, width)
			if o.hint != "" && lipgloss.Width(line)+len(o.hint)+4 <= width {
				line += "  (" + r.styles.Shortcut.Render(o.hint) + ")"
			}
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) renderRepos(b *strings.Builder, v ViewState) {
	s := v.Session
	b.WriteString(r.repoRender.Header(v.Width, s.Selection.Count(), s.Repos()))
	b.WriteString("\n")

	end := min(s.Offset+s.ListHeight, len(v.Entries))
	for i := s.Offset; i < end; i++ {
		var local *domain.LocalStatus
		if i < len(s.Local) {
			local = &s.Local[i]
		}
		fetch := domain.FetchStatus{Kind: domain.FetchNotChecked}
		if i < len(s.Fetch) {
			fetch = s.Fetch[i]
		}
		highlighted := s.Focus == state.FieldRepoList && i == s.Cursor
		b.WriteString(r.repoRender.Row(v.Entries[i], s.Selection.IsSelected(i), local, fetch, highlighted, v.Width))
		b.WriteString("\n")
	}
	if s.Offset > 0 || end < len(v.Entries) {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("  rows %d-%d of %d", s.Offset+1, end, len(v.Entries))))
		b.WriteString("\n")
	}
}

func actionLabel(a domain.Action) string {
	switch a {
	case domain.Sync:
		return "Sync       commit, pull, commit, push"
	case domain.Push:
		return "Push       stage, commit, push"
	case domain.Pull:
		return "Pull       commit, merge from remote"
	case domain.Status:
		return "Status     uncommitted and unpushed work"
	case domain.ListUntracked:
		return "Untracked  files outside version control"
	}
	return a.String()
}

func actionKey(a domain.Action) string {
	switch a {
	case domain.Sync:
		return "s"
	case domain.Push:
		return "p"
	case domain.Pull:
		return "l"
	case domain.Status:
		return "t"
	case domain.ListUntracked:
		return "n"
	}
	return ""
}

func truncateTo(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
