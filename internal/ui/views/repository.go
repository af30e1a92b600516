package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"gcl/internal/domain"
)

const (
	markerWidth = 4 // "[x] "
	statusWidth = 16
	maxName     = 30
	minName     = 10
)

// RepositoryRenderer draws rows of the repository table
type RepositoryRenderer struct {
	styles *Styles
}

// NewRepositoryRenderer creates a new repository renderer
func NewRepositoryRenderer(styles *Styles) *RepositoryRenderer {
	return &RepositoryRenderer{styles: styles}
}

// nameWidth returns the name column width for a screen width
func nameWidth(width int) int {
	w := width - 2 - markerWidth - 2*statusWidth
	return max(minName, min(maxName, w))
}

// fit truncates s to w cells and pads it to exactly w
func fit(s string, w int) string {
	return padding.String(truncate.StringWithTail(s, uint(w), "…"), uint(w))
}

// Header renders the column titles followed by the selection count. On
// narrow screens the count replaces part of the name column title.
func (r *RepositoryRenderer) Header(width, selected, total int) string {
	nw := nameWidth(width)
	count := fmt.Sprintf("%d/%d selected", selected, total)
	columns := fit("LOCAL", statusWidth) + fit("REMOTE", statusWidth)
	line := "  " + fit("REPOSITORIES", markerWidth+nw) + columns
	if lipgloss.Width(line)+1+len(count) <= width {
		return r.styles.Section.Render(line) + r.styles.Dim.Render(" "+count)
	}
	return r.styles.Section.Render("  " + fit("REPOS "+count, markerWidth+nw) + columns)
}

// Row renders one repository line. The cursor row is highlighted across the
// full screen width.
func (r *RepositoryRenderer) Row(entry domain.RepoEntry, selected bool, local *domain.LocalStatus,
	fetch domain.FetchStatus, highlighted bool, width int) string {
	nw := nameWidth(width)
	marker := "[ ] "
	if selected {
		marker = "[x] "
	}
	localText := "…"
	if local != nil {
		localText = local.String()
	}
	name := fit(entry.Name, nw)
	localCol := fit(localText, statusWidth)
	fetchCol := fit(fetch.String(), statusWidth)

	if highlighted {
		return highlight(r.styles, "  "+marker+name+localCol+fetchCol, width)
	}

	localStyle := r.styles.StatusPending
	if local != nil {
		localStyle = r.localStyle(*local)
	}
	return "  " + marker + name + localStyle.Render(localCol) + r.fetchStyle(fetch).Render(fetchCol)
}

func (r *RepositoryRenderer) localStyle(s domain.LocalStatus) lipgloss.Style {
	switch s.Kind {
	case domain.LocalClean:
		return r.styles.StatusSuccess
	case domain.LocalNoUpstream:
		return r.styles.StatusWarning
	}
	return r.styles.StatusError
}

func (r *RepositoryRenderer) fetchStyle(s domain.FetchStatus) lipgloss.Style {
	switch s.Kind {
	case domain.FetchUpToDate:
		return r.styles.StatusSuccess
	case domain.FetchNotChecked:
		return r.styles.StatusPending
	case domain.FetchNoUpstream:
		return r.styles.StatusWarning
	}
	return r.styles.StatusError
}

// highlight paints text on the highlight background spanning width cells
func highlight(styles *Styles, text string, width int) string {
	return styles.HighlightBg.Width(width).Render(truncate.StringWithTail(text, uint(width), "…"))
}
