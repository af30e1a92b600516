package ui

import (
	"gcl/internal/domain"
)

// refreshKind selects which status columns a refresh recomputes
type refreshKind int

const (
	refreshLocal refreshKind = iota
	refreshFetch
	refreshBoth
)

func (k refreshKind) label() string {
	switch k {
	case refreshFetch:
		return "Fetching remote status"
	case refreshBoth:
		return "Refreshing all statuses"
	}
	return "Refreshing local status"
}

// refreshProgressMsg reports how far a running refresh has come
type refreshProgressMsg struct {
	kind  refreshKind
	done  int
	total int
}

// refreshDoneMsg carries the statuses computed by a refresh. Slices for
// columns the refresh did not touch are nil.
type refreshDoneMsg struct {
	kind  refreshKind
	local []domain.LocalStatus
	fetch []domain.FetchStatus
}

// runFinishedMsg is sent when the terminal comes back after a run
type runFinishedMsg struct {
	quit bool
	err  error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// helperFinishedMsg is sent when the symlink helper exits
type helperFinishedMsg struct {
	err error
}
