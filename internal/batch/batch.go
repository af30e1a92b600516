// Package batch runs one action over the registry without a user interface.
package batch

import (
	"context"
	"fmt"
	"io"

	"gcl/internal/domain"
	"gcl/internal/orchestrator"
	"gcl/internal/registry"
	"gcl/internal/report"
	"gcl/internal/status"
)

// UsageError marks errors caused by bad command-line arguments
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Runner drives the orchestrator and status engine from command-line arguments
type Runner struct {
	Registry     *registry.Registry
	Orchestrator *orchestrator.Orchestrator
	Status       *status.Engine
	Out          io.Writer
}

// SplitStrategy consumes a leading local/remote qualifier. The default is KeepRemote.
func SplitStrategy(args []string) (domain.Strategy, []string) {
	if len(args) > 0 {
		if s, ok := domain.ParseStrategy(args[0]); ok {
			return s, args[1:]
		}
	}
	return domain.KeepRemote, args
}

// Run executes action over the repositories named in args (all when empty).
// Per-repository failures are printed, never returned.
func (r *Runner) Run(ctx context.Context, action domain.Action, root string, args []string) error {
	strategy := domain.KeepRemote
	if action == domain.Sync || action == domain.Pull {
		strategy, args = SplitStrategy(args)
	}
	repos, err := r.Registry.Select(args)
	if err != nil {
		return &UsageError{Err: err}
	}

	printer := report.NewPrinter(r.Out)
	printer.Banner(action, strategy, root)
	_, err = r.Orchestrator.Run(ctx, orchestrator.Request{
		Root:     root,
		Action:   action,
		Strategy: strategy,
		Repos:    repos,
	}, printer)
	if err != nil {
		return err
	}
	printer.Summary()
	return nil
}

// Fetch refreshes remote status for the named repositories and prints a
// table followed by a summary
func (r *Runner) Fetch(root string, args []string) error {
	repos, err := r.Registry.Select(args)
	if err != nil {
		return &UsageError{Err: err}
	}
	if err := orchestrator.ValidateRoot(root); err != nil {
		return err
	}
	names := make([]string, len(repos))
	for i, e := range repos {
		names[i] = e.Name
	}
	statuses := r.Status.RefreshFetch(root, names, nil)
	report.FetchTable(r.Out, names, statuses)

	printer := report.NewPrinter(r.Out)
	for i, name := range names {
		printer.RepoFinished(fetchOutcome(name, statuses[i]))
	}
	printer.Summary()
	return nil
}

// fetchOutcome records a fetch result as a single-step outcome
func fetchOutcome(name string, st domain.FetchStatus) domain.OperationOutcome {
	step := domain.Step{Kind: domain.StepFetch, Result: domain.ResultOK, Message: st.String()}
	switch st.Kind {
	case domain.FetchFailed:
		step.Result = domain.ResultFailed
		step.Failure = domain.FetchFailure
	case domain.FetchNotCloned, domain.FetchNoUpstream:
		step.Result = domain.ResultWarning
	}
	outcome := domain.OperationOutcome{Repo: name}
	outcome.Add(step)
	return outcome
}

// List prints the registry
func (r *Runner) List() {
	entries := r.Registry.Entries()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	for _, e := range entries {
		fmt.Fprintf(r.Out, "%-*s  %-7s  %s\n", width, e.Name, e.Visibility, e.URL)
	}
}
