// Package orchestrator runs clone, pull, push, sync and inspection
// pipelines over a list of repositories, one repository at a time.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gcl/internal/domain"
	"gcl/internal/git"
)

// ErrInvalidRoot is returned when the working directory cannot be used
var ErrInvalidRoot = errors.New("invalid working directory")

// DefaultCommitMessage is used for automatic commits unless configured otherwise
const DefaultCommitMessage = "fixes"

const (
	statusLineLimit    = 5
	untrackedLineLimit = 10
)

// Reporter receives progress as the pipeline runs
type Reporter interface {
	RepoStarted(entry domain.RepoEntry)
	StepRecorded(repo string, step domain.Step)
	RepoFinished(outcome domain.OperationOutcome)
}

// Request describes one orchestrated run
type Request struct {
	Root     string
	Action   domain.Action
	Strategy domain.Strategy
	Repos    []domain.RepoEntry
}

// Options tune the pipeline
type Options struct {
	CommitMessage string
}

// Orchestrator executes requests through a git client
type Orchestrator struct {
	git     *git.Client
	message string
}

// New creates an orchestrator
func New(client *git.Client, opts Options) *Orchestrator {
	msg := opts.CommitMessage
	if msg == "" {
		msg = DefaultCommitMessage
	}
	return &Orchestrator{git: client, message: msg}
}

// ValidateRoot checks that root is an existing directory
func ValidateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidRoot, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w %s: not a directory", ErrInvalidRoot, root)
	}
	return nil
}

// Run processes every repository in order. A failure in one repository is
// recorded in its outcome and never stops the run. Cancellation is honoured
// between repositories only.
func (o *Orchestrator) Run(ctx context.Context, req Request, rep Reporter) ([]domain.OperationOutcome, error) {
	if err := ValidateRoot(req.Root); err != nil {
		return nil, err
	}
	if rep == nil {
		rep = nopReporter{}
	}

	log.Printf("Running %s (%s) over %d repositories in %s", req.Action, req.Strategy.MergeOption(), len(req.Repos), req.Root)
	outcomes := make([]domain.OperationOutcome, 0, len(req.Repos))
	for _, entry := range req.Repos {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		rep.RepoStarted(entry)
		p := &pipeline{
			o:     o,
			req:   req,
			entry: entry,
			dir:   filepath.Join(req.Root, entry.Name),
			rep:   rep,
			out:   domain.OperationOutcome{Repo: entry.Name},
		}
		p.run()
		rep.RepoFinished(p.out)
		outcomes = append(outcomes, p.out)
	}
	return outcomes, nil
}

// pipeline is the per-repository execution state
type pipeline struct {
	o     *Orchestrator
	req   Request
	entry domain.RepoEntry
	dir   string
	rep   Reporter
	out   domain.OperationOutcome
}

func (p *pipeline) record(s domain.Step) {
	p.out.Add(s)
	p.rep.StepRecorded(p.entry.Name, s)
}

func (p *pipeline) run() {
	if !git.Exists(p.dir) {
		if !p.req.Action.Mutates() {
			p.record(domain.Step{Kind: domain.StepInspect, Result: domain.ResultWarning, Message: "not cloned"})
			return
		}
		p.clone()
		return
	}

	switch p.req.Action {
	case domain.Pull:
		p.pull()
	case domain.Sync:
		if p.pull() {
			p.publish()
		}
	case domain.Push:
		p.publish()
	case domain.Status:
		p.inspect()
	case domain.ListUntracked:
		p.untracked()
	}
}

func (p *pipeline) clone() {
	output, err := p.o.git.Clone(p.req.Root, p.entry.URL, p.entry.Name)
	if err != nil {
		p.record(domain.Step{Kind: domain.StepClone, Result: domain.ResultFailed, Failure: domain.CloneFailure,
			Message: "Clone failed", Output: output})
		return
	}
	p.record(domain.Step{Kind: domain.StepClone, Result: domain.ResultOK, Message: "Clone complete", Output: output})
}

// pull commits local changes, merges upstream with the strategy option and
// handles failures. It reports whether the merge succeeded.
func (p *pipeline) pull() bool {
	if p.o.git.IsDirty(p.dir) {
		if output, err := p.o.git.StageAll(p.dir); err != nil {
			p.record(domain.Step{Kind: domain.StepPrecommit, Result: domain.ResultFailed, Failure: domain.CommitFailure,
				Message: "Staging uncommitted changes failed", Output: output})
			return false
		}
		output, err := p.o.git.Commit(p.dir, p.o.message)
		if err != nil {
			p.record(domain.Step{Kind: domain.StepPrecommit, Result: domain.ResultFailed, Failure: domain.CommitFailure,
				Message: "Commit of uncommitted changes failed", Output: output})
			return false
		}
		p.record(domain.Step{Kind: domain.StepPrecommit, Result: domain.ResultOK,
			Message: "Committed uncommitted changes before pull", Output: output})
	}

	option := p.req.Strategy.MergeOption()
	output, err := p.o.git.Pull(p.dir, option)
	if err == nil {
		p.record(domain.Step{Kind: domain.StepPull, Result: domain.ResultOK,
			Message: fmt.Sprintf("Pull complete (strategy: %s)", option), Output: output})
		return true
	}

	cause := ClassifyPullFailure(output)
	p.record(domain.Step{Kind: domain.StepPull, Result: domain.ResultFailed, Failure: domain.PullFailure,
		Message: fmt.Sprintf("Pull failed (%s)", cause), Output: output})
	p.abortStuckMerge()
	p.remediate(cause)
	return false
}

func (p *pipeline) abortStuckMerge() {
	if !p.o.git.MergeInProgress(p.dir) {
		return
	}
	output, err := p.o.git.AbortMerge(p.dir)
	if err != nil {
		p.record(domain.Step{Kind: domain.StepAbort, Result: domain.ResultFailed, Failure: domain.MergeStuck,
			Message: "Merge left in progress and could not be aborted", Output: output})
		return
	}
	p.record(domain.Step{Kind: domain.StepAbort, Result: domain.ResultWarning, Failure: domain.MergeStuck,
		Message: "Aborted merge left in progress", Output: output})
}

func (p *pipeline) remediate(cause domain.PullFailureCause) {
	fix, ok := remediations[cause]
	if !ok {
		return
	}
	output, err := p.o.git.SetConfig(p.dir, fix.key, fix.value)
	if err != nil {
		p.record(domain.Step{Kind: domain.StepRemediate, Result: domain.ResultFailed,
			Message: fmt.Sprintf("Could not set %s=%s", fix.key, fix.value), Output: output})
		return
	}
	p.record(domain.Step{Kind: domain.StepRemediate, Result: domain.ResultInfo,
		Message: fmt.Sprintf("Set %s=%s for this repository; run the action again", fix.key, fix.value)})
}

// publish stages everything, commits when the index differs from HEAD and pushes
func (p *pipeline) publish() {
	if output, err := p.o.git.StageAll(p.dir); err != nil {
		p.record(domain.Step{Kind: domain.StepStage, Result: domain.ResultFailed, Failure: domain.CommitFailure,
			Message: "Staging failed", Output: output})
		return
	}
	p.record(domain.Step{Kind: domain.StepStage, Result: domain.ResultOK, Message: "Staging changes"})

	if p.o.git.HasStagedChanges(p.dir) {
		output, err := p.o.git.Commit(p.dir, p.o.message)
		if err != nil {
			p.record(domain.Step{Kind: domain.StepCommit, Result: domain.ResultFailed, Failure: domain.CommitFailure,
				Message: "Commit failed", Output: output})
		} else {
			p.record(domain.Step{Kind: domain.StepCommit, Result: domain.ResultOK,
				Message: fmt.Sprintf("Committed changes with message %q", p.o.message), Output: output})
		}
	} else {
		p.record(domain.Step{Kind: domain.StepCommit, Result: domain.ResultSkipped, Message: "No changes to commit"})
	}

	output, err := p.o.git.Push(p.dir)
	if err != nil {
		p.record(domain.Step{Kind: domain.StepPush, Result: domain.ResultWarning, Failure: domain.PushFailure,
			Message: "Push failed", Output: output})
		return
	}
	p.record(domain.Step{Kind: domain.StepPush, Result: domain.ResultOK, Message: "Push complete", Output: output})
}

func (p *pipeline) inspect() {
	if p.o.git.IsDirty(p.dir) {
		step := domain.Step{Kind: domain.StepInspect, Result: domain.ResultWarning, Message: "uncommitted changes"}
		entries, err := p.o.git.ShortStatus(p.dir)
		if err != nil {
			step.Output = err.Error()
		}
		if len(entries) > statusLineLimit {
			entries = entries[:statusLineLimit]
		}
		step.Lines = entries
		p.record(step)
	} else {
		p.record(domain.Step{Kind: domain.StepInspect, Result: domain.ResultOK, Message: "working tree clean"})
	}

	if !p.o.git.HasUpstream(p.dir) {
		p.record(domain.Step{Kind: domain.StepInspect, Result: domain.ResultWarning, Message: "branch does not track a remote"})
		return
	}
	commits, err := p.o.git.UnpushedLog(p.dir)
	if err != nil {
		p.record(domain.Step{Kind: domain.StepInspect, Result: domain.ResultFailed,
			Message: "could not list unpushed commits", Output: err.Error()})
		return
	}
	if len(commits) > 0 {
		p.record(domain.Step{Kind: domain.StepInspect, Result: domain.ResultWarning,
			Message: fmt.Sprintf("%d unpushed commit(s)", len(commits)), Lines: commits})
		return
	}
	p.record(domain.Step{Kind: domain.StepInspect, Result: domain.ResultOK, Message: "all commits pushed"})
}

func (p *pipeline) untracked() {
	paths, err := p.o.git.Untracked(p.dir)
	if err != nil {
		p.record(domain.Step{Kind: domain.StepUntracked, Result: domain.ResultFailed,
			Message: "could not list untracked files", Output: err.Error()})
		return
	}
	if len(paths) == 0 {
		p.record(domain.Step{Kind: domain.StepUntracked, Result: domain.ResultOK, Message: "no untracked files"})
		return
	}
	shown := paths
	if len(shown) > untrackedLineLimit {
		shown = append(shown[:untrackedLineLimit:untrackedLineLimit], fmt.Sprintf("... and %d more", len(paths)-untrackedLineLimit))
	}
	p.record(domain.Step{Kind: domain.StepUntracked, Result: domain.ResultWarning,
		Message: fmt.Sprintf("%d untracked file(s)", len(paths)), Lines: shown})
}

type nopReporter struct{}

func (nopReporter) RepoStarted(domain.RepoEntry)         {}
func (nopReporter) StepRecorded(string, domain.Step)     {}
func (nopReporter) RepoFinished(domain.OperationOutcome) {}
