// Package input turns key presses into session changes and side effects.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gcl/internal/domain"
	"gcl/internal/ui/state"
)

// Command is a decoded key press
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdNextField
	CmdPrevField
	CmdToggle
	CmdRun
	CmdSelectAll
	CmdClearAll
	CmdSelectNonOK
	CmdKeepLocal
	CmdKeepRemote
	CmdSync
	CmdPush
	CmdPull
	CmdStatus
	CmdUntracked
	CmdRefreshLocal
	CmdRefreshFetch
	CmdRefreshBoth
	CmdRestoreSymlinks
	CmdHelp
	CmdQuit
)

// Effect is work the UI loop must perform after a command is applied
type Effect int

const (
	EffectNone Effect = iota
	EffectRun
	EffectRefreshLocal
	EffectRefreshFetch
	EffectRefreshBoth
	EffectRestoreSymlinks
	EffectHelp
	EffectQuit
)

// Dispatcher decodes keys with a key map
type Dispatcher struct {
	Keys KeyMap
}

// NewDispatcher creates a dispatcher with the default bindings
func NewDispatcher() *Dispatcher {
	return &Dispatcher{Keys: DefaultKeyMap()}
}

// Decode maps a key message to a command. Escape sequences such as arrow
// keys arrive already decoded by the terminal reader.
func (d *Dispatcher) Decode(msg tea.KeyMsg) Command {
	k := d.Keys
	bindings := []struct {
		b   key.Binding
		cmd Command
	}{
		{k.Quit, CmdQuit},
		{k.Up, CmdUp},
		{k.Down, CmdDown},
		{k.NextField, CmdNextField},
		{k.PrevField, CmdPrevField},
		{k.Toggle, CmdToggle},
		{k.Run, CmdRun},
		{k.SelectAll, CmdSelectAll},
		{k.ClearAll, CmdClearAll},
		{k.SelectNonOK, CmdSelectNonOK},
		{k.KeepLocal, CmdKeepLocal},
		{k.KeepRemote, CmdKeepRemote},
		{k.Sync, CmdSync},
		{k.Push, CmdPush},
		{k.Pull, CmdPull},
		{k.Status, CmdStatus},
		{k.Untracked, CmdUntracked},
		{k.RefreshLocal, CmdRefreshLocal},
		{k.RefreshFetch, CmdRefreshFetch},
		{k.RefreshBoth, CmdRefreshBoth},
		{k.RestoreSymlinks, CmdRestoreSymlinks},
		{k.Help, CmdHelp},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.b) {
			return b.cmd
		}
	}
	return CmdNone
}

// Apply mutates the session for cmd and returns the effect to perform
func Apply(s *state.Session, cmd Command) Effect {
	switch cmd {
	case CmdUp:
		s.Up()
	case CmdDown:
		s.Down()
	case CmdNextField:
		s.NextField()
	case CmdPrevField:
		s.PrevField()
	case CmdToggle:
		s.Toggle()
	case CmdRun:
		return EffectRun
	case CmdSelectAll:
		s.SelectAll()
	case CmdClearAll:
		s.ClearAll()
	case CmdSelectNonOK:
		s.SelectNonOK()
	case CmdKeepLocal:
		s.Strategy = domain.KeepLocal
	case CmdKeepRemote:
		s.Strategy = domain.KeepRemote
	case CmdSync:
		s.Action = domain.Sync
	case CmdPush:
		s.Action = domain.Push
	case CmdPull:
		s.Action = domain.Pull
	case CmdStatus:
		s.Action = domain.Status
		return EffectRefreshLocal
	case CmdUntracked:
		s.Action = domain.ListUntracked
	case CmdRefreshLocal:
		return EffectRefreshLocal
	case CmdRefreshFetch:
		return EffectRefreshFetch
	case CmdRefreshBoth:
		return EffectRefreshBoth
	case CmdRestoreSymlinks:
		return EffectRestoreSymlinks
	case CmdHelp:
		return EffectHelp
	case CmdQuit:
		return EffectQuit
	}
	return EffectNone
}
