package state

import (
	"gcl/internal/domain"
)

// Field is a focus position in the interactive screen
type Field int

const (
	FieldWorkDir Field = iota
	FieldStrategy
	FieldAction
	FieldRepoList
	FieldRun
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldWorkDir:
		return "WorkDir"
	case FieldStrategy:
		return "Strategy"
	case FieldAction:
		return "Action"
	case FieldRepoList:
		return "RepoList"
	case FieldRun:
		return "RunButton"
	}
	return "Unknown"
}

// WorkdirMode selects which directory holds the repositories
type WorkdirMode int

const (
	CurrentDir WorkdirMode = iota
	CustomPath
)

// Session is the complete state of one interactive session. It is owned
// by the UI loop and rebuilt from scratch after each run.
type Session struct {
	Focus       Field
	Strategy    domain.Strategy
	Action      domain.Action
	WorkdirMode WorkdirMode
	CustomPath  string
	CurrentPath string

	Cursor     int
	Offset     int // first visible repository row
	ListHeight int // visible repository rows

	Selection Selection
	Local     []domain.LocalStatus // nil until the first local refresh
	Fetch     []domain.FetchStatus

	Message string // status line
	Busy    bool   // a refresh is running
}

// Options seed a new session
type Options struct {
	Repos       int
	CustomPath  string
	CurrentPath string
	UseCurrent  bool
}

// NewSession creates a session with every repository selected and no
// network status checked yet
func NewSession(opts Options) *Session {
	mode := CustomPath
	if opts.UseCurrent {
		mode = CurrentDir
	}
	fetch := make([]domain.FetchStatus, opts.Repos)
	for i := range fetch {
		fetch[i] = domain.FetchStatus{Kind: domain.FetchNotChecked}
	}
	return &Session{
		Focus:       FieldWorkDir,
		Strategy:    domain.KeepRemote,
		Action:      domain.Sync,
		WorkdirMode: mode,
		CustomPath:  opts.CustomPath,
		CurrentPath: opts.CurrentPath,
		ListHeight:  opts.Repos,
		Selection:   NewSelection(opts.Repos, true),
		Fetch:       fetch,
	}
}

// Root returns the working directory for the selected mode
func (s *Session) Root() string {
	if s.WorkdirMode == CurrentDir {
		return s.CurrentPath
	}
	return s.CustomPath
}

// Repos returns the number of repositories in the session
func (s *Session) Repos() int { return len(s.Selection) }

// NextField moves focus forward, wrapping after the run button
func (s *Session) NextField() {
	s.Focus = (s.Focus + 1) % fieldCount
}

// PrevField moves focus backward, wrapping before the working directory
func (s *Session) PrevField() {
	s.Focus = (s.Focus + fieldCount - 1) % fieldCount
}

// Up moves the list cursor inside the repository list and focus elsewhere
func (s *Session) Up() {
	if s.Focus != FieldRepoList {
		s.PrevField()
		return
	}
	if n := s.Repos(); n > 0 {
		s.Cursor = (s.Cursor + n - 1) % n
		s.scroll()
	}
}

// Down moves the list cursor inside the repository list and focus elsewhere
func (s *Session) Down() {
	if s.Focus != FieldRepoList {
		s.NextField()
		return
	}
	if n := s.Repos(); n > 0 {
		s.Cursor = (s.Cursor + 1) % n
		s.scroll()
	}
}

// Toggle flips or cycles the value under focus. It never runs anything.
func (s *Session) Toggle() {
	switch s.Focus {
	case FieldWorkDir:
		if s.WorkdirMode == CurrentDir {
			s.WorkdirMode = CustomPath
		} else {
			s.WorkdirMode = CurrentDir
		}
	case FieldStrategy:
		if s.Strategy == domain.KeepLocal {
			s.Strategy = domain.KeepRemote
		} else {
			s.Strategy = domain.KeepLocal
		}
	case FieldAction:
		s.Action = domain.Actions[(int(s.Action)+1)%len(domain.Actions)]
	case FieldRepoList:
		s.Selection.Toggle(s.Cursor)
	}
}

// SelectAll selects every repository
func (s *Session) SelectAll() { s.Selection.SetAll(true) }

// ClearAll deselects every repository
func (s *Session) ClearAll() { s.Selection.SetAll(false) }

// SelectNonOK selects exactly the repositories whose cached local status is
// not clean. Before the first local refresh every repository counts as non-OK.
func (s *Session) SelectNonOK() {
	for i := range s.Selection {
		s.Selection[i] = i >= len(s.Local) || !s.Local[i].IsOK()
	}
}

// SetLocal replaces the local status cache
func (s *Session) SetLocal(statuses []domain.LocalStatus) {
	s.Local = statuses
}

// SetFetch replaces the fetch status cache
func (s *Session) SetFetch(statuses []domain.FetchStatus) {
	s.Fetch = statuses
}

// SetListHeight records how many rows the list can show and keeps the cursor visible
func (s *Session) SetListHeight(h int) {
	if h < 1 {
		h = 1
	}
	s.ListHeight = h
	s.scroll()
}

func (s *Session) scroll() {
	if s.Cursor < s.Offset {
		s.Offset = s.Cursor
	}
	if s.ListHeight > 0 && s.Cursor >= s.Offset+s.ListHeight {
		s.Offset = s.Cursor - s.ListHeight + 1
	}
	if maxOffset := s.Repos() - s.ListHeight; s.Offset > maxOffset {
		s.Offset = max(maxOffset, 0)
	}
}
