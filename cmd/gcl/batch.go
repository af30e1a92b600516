package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gcl/internal/batch"
	"gcl/internal/domain"
	"gcl/internal/status"
)

func (a *app) batchRunner() *batch.Runner {
	return &batch.Runner{
		Registry:     a.registry,
		Orchestrator: a.orchestrator(),
		Status:       status.NewEngine(a.client()),
		Out:          a.stdout,
	}
}

func newBatchCmds(a *app) []*cobra.Command {
	// action resolves the Action from the subcommand name
	action := func(cmd *cobra.Command, args []string) error {
		act, ok := domain.ParseAction(cmd.Name())
		if !ok {
			return fmt.Errorf("%q is not a repository action", cmd.Name())
		}
		root, err := a.cfg.Root()
		if err != nil {
			return err
		}
		if err := a.prepare(root); err != nil {
			return err
		}
		return a.batchRunner().Run(cmd.Context(), act, root, args)
	}

	return []*cobra.Command{
		{
			Use:   "sync [local|remote] [repo...]",
			Short: "Commit, pull with a conflict strategy, commit and push",
			Example: `  gcl sync
  gcl sync local back-Algo front-Notes_md`,
			RunE: action,
		},
		{
			Use:   "push [repo...]",
			Short: "Stage everything, commit and push",
			RunE:  action,
		},
		{
			Use:   "pull [local|remote] [repo...]",
			Short: "Commit local work, then pull with a conflict strategy",
			RunE:  action,
		},
		{
			Use:   "status [repo...]",
			Short: "Show uncommitted changes and unpushed commits",
			RunE:  action,
		},
		{
			Use:   "untracked [repo...]",
			Short: "List files not under version control",
			RunE:  action,
		},
		{
			Use:   "fetch [repo...]",
			Short: "Fetch every repository and report what is waiting to be pulled",
			RunE: func(cmd *cobra.Command, args []string) error {
				root, err := a.cfg.Root()
				if err != nil {
					return err
				}
				if err := a.prepare(root); err != nil {
					return err
				}
				return a.batchRunner().Fetch(root, args)
			},
		},
		{
			Use:   "repos",
			Short: "List the managed repositories",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				a.batchRunner().List()
			},
		},
	}
}
