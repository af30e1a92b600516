package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gcl/internal/config"
	"gcl/internal/domain"
	"gcl/internal/orchestrator"
	"gcl/internal/registry"
	"gcl/internal/status"
	"gcl/internal/ui/input"
	"gcl/internal/ui/state"
	"gcl/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	ctx      context.Context
	config   *config.Config
	registry *registry.Registry
	engine   *status.Engine
	orch     *orchestrator.Orchestrator

	session *state.Session

	width  int
	height int
	help   help.Model

	renderer   *views.Renderer
	dispatcher *input.Dispatcher

	quitPending bool // quit was requested while a refresh was running

	// Program reference for progress messages sent from refresh goroutines
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, cfg *config.Config, reg *registry.Registry,
	engine *status.Engine, orch *orchestrator.Orchestrator) *Model {
	m := &Model{
		ctx:        ctx,
		config:     cfg,
		registry:   reg,
		engine:     engine,
		orch:       orch,
		help:       help.New(),
		renderer:   views.NewRenderer(),
		dispatcher: input.NewDispatcher(),
	}
	m.session = m.newSession()
	return m
}

// SetProgram sets the program reference for progress reporting
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Session exposes the current session state
func (m *Model) Session() *state.Session {
	return m.session
}

func (m *Model) newSession() *state.Session {
	cwd, err := os.Getwd()
	if err != nil {
		log.Printf("Failed to get current directory: %v", err)
	}
	s := state.NewSession(state.Options{
		Repos:       m.registry.Len(),
		CustomPath:  config.ExpandHome(m.config.WorkDir),
		CurrentPath: cwd,
		UseCurrent:  m.config.UseCurrentDir,
	})
	if m.height > 0 {
		s.SetListHeight(views.ListHeight(m.height))
	}
	return s
}

func (m *Model) send(msg tea.Msg) {
	if m.program != nil {
		m.program.Send(msg)
	}
}

// Init starts the first local status refresh
func (m *Model) Init() tea.Cmd {
	return m.startRefresh(refreshLocal)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.SetListHeight(views.ListHeight(msg.Height))
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case refreshProgressMsg:
		if m.session.Busy {
			m.session.Message = fmt.Sprintf("%s... (%d/%d)", msg.kind.label(), msg.done, msg.total)
		}
		return m, nil

	case refreshDoneMsg:
		if msg.local != nil {
			m.session.SetLocal(msg.local)
		}
		if msg.fetch != nil {
			m.session.SetFetch(msg.fetch)
		}
		m.session.Busy = false
		m.session.Message = ""
		if m.quitPending {
			return m, tea.Quit
		}
		return m, nil

	case runFinishedMsg:
		if msg.err != nil {
			log.Printf("Run failed: %v", msg.err)
		}
		if msg.quit {
			return m, tea.Quit
		}
		m.session = m.newSession()
		return m, m.startRefresh(refreshLocal)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case helperFinishedMsg:
		if msg.err != nil {
			log.Printf("Symlink helper failed: %v", msg.err)
			m.session.Message = fmt.Sprintf("Symlink helper failed: %v", msg.err)
			return m, nil
		}
		cmd := m.startRefresh(refreshLocal)
		m.session.Message = "Symlinks restored. " + m.session.Message
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	cmd := m.dispatcher.Decode(msg)
	if m.session.Busy {
		// only quit is honoured until the refresh completes
		if cmd == input.CmdQuit {
			m.quitPending = true
			m.session.Message = "Quitting after the refresh completes..."
		}
		return nil
	}

	switch input.Apply(m.session, cmd) {
	case input.EffectQuit:
		return tea.Quit
	case input.EffectRefreshLocal:
		return m.startRefresh(refreshLocal)
	case input.EffectRefreshFetch:
		return m.startRefresh(refreshFetch)
	case input.EffectRefreshBoth:
		return m.startRefresh(refreshBoth)
	case input.EffectRun:
		return m.run()
	case input.EffectHelp:
		content := NewHelpRenderer(m.dispatcher.Keys).Render()
		return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
			return helpPagerMsg{err: err}
		})
	case input.EffectRestoreSymlinks:
		return m.restoreSymlinks()
	}
	return nil
}

// startRefresh marks the session busy and returns the command computing
// the requested statuses off the UI loop
func (m *Model) startRefresh(kind refreshKind) tea.Cmd {
	if m.session.Busy {
		return nil
	}
	root := m.session.Root()
	names := m.registry.Names()
	total := len(names)
	if kind == refreshBoth {
		total *= 2
	}
	m.session.Busy = true
	m.session.Message = fmt.Sprintf("%s... (0/%d)", kind.label(), total)

	return func() tea.Msg {
		progress := func(done, total int) {
			m.send(refreshProgressMsg{kind: kind, done: done, total: total})
		}
		done := refreshDoneMsg{kind: kind}
		switch kind {
		case refreshLocal:
			done.local = m.engine.RefreshLocal(root, names, progress)
		case refreshFetch:
			done.fetch = m.engine.RefreshFetch(root, names, progress)
		case refreshBoth:
			done.local, done.fetch = m.engine.RefreshBoth(root, names, progress)
		}
		return done
	}
}

// request builds the orchestrator request for the current session
func (m *Model) request() orchestrator.Request {
	indices := m.session.Selection.Indices()
	repos := make([]domain.RepoEntry, len(indices))
	for i, idx := range indices {
		repos[i] = m.registry.At(idx)
	}
	return orchestrator.Request{
		Root:     m.session.Root(),
		Action:   m.session.Action,
		Strategy: m.session.Strategy,
		Repos:    repos,
	}
}

// run leaves the alternate screen and executes the selected action
func (m *Model) run() tea.Cmd {
	req := m.request()
	log.Printf("Starting %s on %d repositories", req.Action, len(req.Repos))
	c := &runCommand{
		transcript: func(w io.Writer) {
			writeTranscript(m.ctx, m.orch, req, w)
		},
	}
	return tea.Exec(c, func(err error) tea.Msg {
		return runFinishedMsg{quit: c.quit, err: err}
	})
}

// restoreSymlinks hands the terminal to the configured helper with the
// working directory as its only argument
func (m *Model) restoreSymlinks() tea.Cmd {
	if m.config.SymlinkHelper == "" {
		m.session.Message = "Symlink helper is disabled"
		return nil
	}
	path, err := exec.LookPath(m.config.SymlinkHelper)
	if err != nil {
		m.session.Message = fmt.Sprintf("Symlink helper %q not found", m.config.SymlinkHelper)
		return nil
	}
	return tea.ExecProcess(exec.Command(path, m.session.Root()), func(err error) tea.Msg {
		return helperFinishedMsg{err: err}
	})
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	keys := m.dispatcher.Keys
	return m.renderer.Render(views.ViewState{
		Width:     m.width,
		Height:    m.height,
		Session:   m.session,
		Entries:   m.registry.Entries(),
		HelpModel: m.help,
		HelpLines: [][]key.Binding{keys.ShortHelp(), keys.ShortcutHelp()},
	})
}
