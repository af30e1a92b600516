package domain

import "fmt"

// Visibility classifies a registry entry. It is informational only.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// RepoEntry is a single managed repository from the registry
type RepoEntry struct {
	Name       string     `toml:"name"`       // directory name under the working directory
	URL        string     `toml:"url"`        // clone URL
	Visibility Visibility `toml:"visibility"` // public or private
}

// LocalKind enumerates the local status classes in tie-break order
type LocalKind int

const (
	LocalNotCloned LocalKind = iota
	LocalUncommitted
	LocalNoUpstream
	LocalUnpushed
	LocalClean
)

// LocalStatus is the result of a local-only inspection
type LocalStatus struct {
	Kind  LocalKind
	Count int // unpushed commit count, only for LocalUnpushed
}

// IsOK reports whether the repository needs no attention locally
func (s LocalStatus) IsOK() bool {
	return s.Kind == LocalClean
}

// String returns the label shown in the status table
func (s LocalStatus) String() string {
	switch s.Kind {
	case LocalNotCloned:
		return "Not Cloned"
	case LocalUncommitted:
		return "Uncommitted"
	case LocalNoUpstream:
		return "No Remote"
	case LocalUnpushed:
		return fmt.Sprintf("%d Unpushed", s.Count)
	case LocalClean:
		return "OK"
	}
	return "Unknown"
}

// FetchKind enumerates the remote status classes in tie-break order
type FetchKind int

const (
	FetchNotChecked FetchKind = iota
	FetchNotCloned
	FetchNoUpstream
	FetchFailed
	FetchPendingPull
	FetchUpToDate
)

// FetchStatus is the result of a remote inspection
type FetchStatus struct {
	Kind  FetchKind
	Count int // commits to pull, only for FetchPendingPull
}

// String returns the label shown in the status table
func (s FetchStatus) String() string {
	switch s.Kind {
	case FetchNotChecked:
		return "Not Checked"
	case FetchNotCloned:
		return "Not Cloned"
	case FetchNoUpstream:
		return "No Remote"
	case FetchFailed:
		return "Fetch Failed"
	case FetchPendingPull:
		return fmt.Sprintf("%d To Pull", s.Count)
	case FetchUpToDate:
		return "Up to Date"
	}
	return "Unknown"
}

// Strategy decides which side wins a merge conflict during pull
type Strategy int

const (
	KeepRemote Strategy = iota
	KeepLocal
)

// MergeOption returns the merge strategy option passed to git
func (s Strategy) MergeOption() string {
	if s == KeepLocal {
		return "ours"
	}
	return "theirs"
}

func (s Strategy) String() string {
	if s == KeepLocal {
		return "Keep Local"
	}
	return "Keep Remote"
}

// ParseStrategy maps "local"/"remote" to a Strategy
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "local":
		return KeepLocal, true
	case "remote":
		return KeepRemote, true
	}
	return KeepRemote, false
}

// Action is the operation requested for each selected repository
type Action int

const (
	Sync Action = iota
	Push
	Pull
	Status
	ListUntracked
)

// Actions lists every action in display order
var Actions = []Action{Sync, Push, Pull, Status, ListUntracked}

func (a Action) String() string {
	switch a {
	case Sync:
		return "Sync"
	case Push:
		return "Push"
	case Pull:
		return "Pull"
	case Status:
		return "Status"
	case ListUntracked:
		return "Untracked"
	}
	return "Unknown"
}

// Mutates reports whether the action may change the repository
func (a Action) Mutates() bool {
	return a == Sync || a == Push || a == Pull
}

// ParseAction maps a batch command name to an Action
func ParseAction(s string) (Action, bool) {
	switch s {
	case "sync":
		return Sync, true
	case "push":
		return Push, true
	case "pull":
		return Pull, true
	case "status":
		return Status, true
	case "untracked":
		return ListUntracked, true
	}
	return Sync, false
}
