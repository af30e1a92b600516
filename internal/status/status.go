// Package status computes the per-repository local and remote summaries
// shown in the status table.
package status

import (
	"log"
	"path/filepath"

	"gcl/internal/domain"
	"gcl/internal/git"
)

// Engine inspects repositories under a working-directory root
type Engine struct {
	git *git.Client
}

// NewEngine creates an engine over client
func NewEngine(client *git.Client) *Engine {
	return &Engine{git: client}
}

// Local classifies a repository without touching the network.
// The first matching class wins: not cloned, uncommitted, no upstream, unpushed, clean.
func (e *Engine) Local(root, name string) domain.LocalStatus {
	dir := filepath.Join(root, name)
	if !git.Exists(dir) {
		return domain.LocalStatus{Kind: domain.LocalNotCloned}
	}
	if e.git.IsDirty(dir) {
		return domain.LocalStatus{Kind: domain.LocalUncommitted}
	}
	if !e.git.HasUpstream(dir) {
		return domain.LocalStatus{Kind: domain.LocalNoUpstream}
	}
	n, err := e.git.Ahead(dir)
	if err != nil {
		log.Printf("Could not count unpushed commits for %s: %v", name, err)
		unpushed, logErr := e.git.UnpushedLog(dir)
		if logErr != nil {
			log.Printf("Could not list unpushed commits for %s: %v", name, logErr)
			return domain.LocalStatus{Kind: domain.LocalNoUpstream}
		}
		n = len(unpushed)
	}
	if n > 0 {
		return domain.LocalStatus{Kind: domain.LocalUnpushed, Count: n}
	}
	return domain.LocalStatus{Kind: domain.LocalClean}
}

// Fetch updates remote-tracking refs and counts commits waiting to be pulled
func (e *Engine) Fetch(root, name string) domain.FetchStatus {
	dir := filepath.Join(root, name)
	if !git.Exists(dir) {
		return domain.FetchStatus{Kind: domain.FetchNotCloned}
	}
	if !e.git.HasUpstream(dir) {
		return domain.FetchStatus{Kind: domain.FetchNoUpstream}
	}
	if _, err := e.git.Fetch(dir); err != nil {
		log.Printf("Fetch failed for %s: %v", name, err)
		return domain.FetchStatus{Kind: domain.FetchFailed}
	}
	n, err := e.git.Behind(dir)
	if err != nil {
		log.Printf("Could not count incoming commits for %s: %v", name, err)
		return domain.FetchStatus{Kind: domain.FetchFailed}
	}
	if n > 0 {
		return domain.FetchStatus{Kind: domain.FetchPendingPull, Count: n}
	}
	return domain.FetchStatus{Kind: domain.FetchUpToDate}
}

// Progress is called after each repository during a refresh
type Progress func(done, total int)

// RefreshLocal computes LocalStatus for every name, in order
func (e *Engine) RefreshLocal(root string, names []string, progress Progress) []domain.LocalStatus {
	out := make([]domain.LocalStatus, len(names))
	for i, name := range names {
		out[i] = e.Local(root, name)
		if progress != nil {
			progress(i+1, len(names))
		}
	}
	return out
}

// RefreshFetch computes FetchStatus for every name, in order
func (e *Engine) RefreshFetch(root string, names []string, progress Progress) []domain.FetchStatus {
	out := make([]domain.FetchStatus, len(names))
	for i, name := range names {
		out[i] = e.Fetch(root, name)
		if progress != nil {
			progress(i+1, len(names))
		}
	}
	return out
}

// RefreshBoth runs the local tier then the fetch tier
func (e *Engine) RefreshBoth(root string, names []string, progress Progress) ([]domain.LocalStatus, []domain.FetchStatus) {
	total := 2 * len(names)
	var local []domain.LocalStatus
	var fetch []domain.FetchStatus
	if progress == nil {
		local = e.RefreshLocal(root, names, nil)
		fetch = e.RefreshFetch(root, names, nil)
	} else {
		local = e.RefreshLocal(root, names, func(done, _ int) { progress(done, total) })
		fetch = e.RefreshFetch(root, names, func(done, _ int) { progress(len(names)+done, total) })
	}
	return local, fetch
}
