// Package report prints orchestrator transcripts as they are produced.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gcl/internal/domain"
)

type styles struct {
	header  lipgloss.Style
	name    lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
}

// Printer streams a transcript to a writer. Colour is used only when the
// writer is a terminal that supports it.
type Printer struct {
	w      io.Writer
	styles styles

	repos    int
	failed   int
	warnings int
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		styles: styles{
			header:  r.NewStyle().Foreground(lipgloss.Color("51")),
			name:    r.NewStyle().Bold(true),
			ok:      r.NewStyle().Foreground(lipgloss.Color("78")),
			failed:  r.NewStyle().Foreground(lipgloss.Color("203")),
			warning: r.NewStyle().Foreground(lipgloss.Color("214")),
			info:    r.NewStyle().Foreground(lipgloss.Color("51")),
			dim:     r.NewStyle().Foreground(lipgloss.Color("241")),
		},
	}
}

// Banner prints the run description before the first repository
func (p *Printer) Banner(action domain.Action, strategy domain.Strategy, root string) {
	line := fmt.Sprintf("%s in %s", action, root)
	if action == domain.Sync || action == domain.Pull {
		line += fmt.Sprintf(" (strategy: %s)", strategy)
	}
	fmt.Fprintln(p.w, p.styles.name.Render(line))
}

// RepoStarted implements orchestrator.Reporter
func (p *Printer) RepoStarted(entry domain.RepoEntry) {
	fmt.Fprintf(p.w, "\n%s %s\n", p.styles.header.Render("==>"), p.styles.name.Render(fmt.Sprintf("Processing '%s'", entry.Name)))
}

// StepRecorded implements orchestrator.Reporter
func (p *Printer) StepRecorded(_ string, step domain.Step) {
	marker, style := p.marker(step.Result)
	fmt.Fprintf(p.w, "  %s\n", style.Render(marker+" "+step.Message))
	for _, line := range step.Lines {
		fmt.Fprintf(p.w, "    %s\n", line)
	}
	if out := strings.TrimSpace(step.Output); out != "" {
		for _, line := range strings.Split(out, "\n") {
			fmt.Fprintf(p.w, "    %s\n", p.styles.dim.Render(line))
		}
	}
}

// RepoFinished implements orchestrator.Reporter
func (p *Printer) RepoFinished(outcome domain.OperationOutcome) {
	p.repos++
	if outcome.Failed() {
		p.failed++
	}
	for _, s := range outcome.Steps {
		if s.Result == domain.ResultWarning {
			p.warnings++
		}
	}
}

// Summary prints totals for the run
func (p *Printer) Summary() {
	line := fmt.Sprintf("%d repositories processed, %d failed, %d warnings", p.repos, p.failed, p.warnings)
	style := p.styles.ok
	switch {
	case p.failed > 0:
		style = p.styles.failed
	case p.warnings > 0:
		style = p.styles.warning
	}
	fmt.Fprintf(p.w, "\n%s\n", style.Render(line))
}

// Failed returns how many repositories had at least one failed step
func (p *Printer) Failed() int { return p.failed }

func (p *Printer) marker(r domain.StepResult) (string, lipgloss.Style) {
	switch r {
	case domain.ResultOK:
		return "✓", p.styles.ok
	case domain.ResultFailed:
		return "✗", p.styles.failed
	case domain.ResultWarning:
		return "⚠", p.styles.warning
	case domain.ResultSkipped:
		return "-", p.styles.dim
	}
	return "•", p.styles.info
}

// FetchTable prints one line per repository with its remote status
func FetchTable(w io.Writer, names []string, statuses []domain.FetchStatus) {
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for i, n := range names {
		fmt.Fprintf(w, "%-*s  %s\n", width, n, statuses[i])
	}
}
