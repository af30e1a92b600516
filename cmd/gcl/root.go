package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gcl/internal/config"
	"gcl/internal/git"
	"gcl/internal/orchestrator"
	"gcl/internal/registry"
	"gcl/internal/status"
	"gcl/internal/terminal"
	"gcl/internal/ui"
)

// app carries what every command needs once flags are parsed
type app struct {
	ctx      context.Context
	stdout   io.Writer
	stderr   io.Writer
	cfg      *config.Config
	registry *registry.Registry
	runner   git.Runner
	logFile  *os.File

	safeDirectory bool
}

func newApp(ctx context.Context, stdout, stderr io.Writer) *app {
	return &app{
		ctx:      ctx,
		stdout:   stdout,
		stderr:   stderr,
		cfg:      config.DefaultConfig(),
		registry: registry.Default(),
		runner:   git.NewExecRunner(),
	}
}

// setupLogging sends the standard logger to the configured file. Logging
// never goes to the terminal.
func (a *app) setupLogging() {
	log.SetOutput(io.Discard)
	if a.cfg.LogFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(a.cfg.LogFile), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	a.logFile = f
	log.SetOutput(f)
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func (a *app) client() *git.Client {
	return git.NewClient(a.runner)
}

func (a *app) orchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(a.client(), orchestrator.Options{CommitMessage: a.cfg.CommitMessage})
}

// prepare checks git and optionally marks the root as a safe directory
func (a *app) prepare(root string) error {
	if err := git.Available(); err != nil {
		return err
	}
	if a.safeDirectory {
		if err := a.client().AddSafeDirectories(root); err != nil {
			return fmt.Errorf("failed to mark %s as safe: %w", root, err)
		}
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	var flags struct {
		workdir       string
		current       bool
		message       string
		symlinkHelper string
		logFile       string
	}

	root := &cobra.Command{
		Use:   "gcl",
		Short: "Keep a fixed set of git repositories in sync",
		Long: `gcl clones, commits, pulls and pushes a fixed list of git repositories
that live side by side under one working directory.

Run without arguments for the interactive screen, or name an action to run it
over every repository (or only the ones listed) and print a transcript.`,
		Example: `  gcl
  gcl sync local
  gcl pull remote back-Algo 'ml-*'
  gcl status
  gcl -c untracked`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(os.Getenv)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("workdir") {
				cfg.WorkDir = flags.workdir
			}
			if f.Changed("current") {
				cfg.UseCurrentDir = flags.current
			}
			if f.Changed("message") {
				cfg.CommitMessage = flags.message
			}
			if f.Changed("symlink-helper") {
				cfg.SymlinkHelper = flags.symlinkHelper
			}
			if f.Changed("log-file") {
				cfg.LogFile = flags.logFile
			}
			if strings.TrimSpace(cfg.CommitMessage) == "" {
				return errors.New("commit message must not be empty")
			}
			a.cfg = cfg
			a.setupLogging()
			log.Printf("gcl %s %v", cmd.Name(), args)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.workdir, "workdir", "w", "", "working directory holding the repositories (default ~/Documents/Git, env "+config.EnvWorkDir+")")
	pf.BoolVarP(&flags.current, "current", "c", false, "use the current directory as the working directory")
	pf.StringVarP(&flags.message, "message", "m", "", "commit message for automatic commits (default \"fixes\")")
	pf.StringVar(&flags.symlinkHelper, "symlink-helper", "", "program run by the x shortcut with the working directory as argument")
	pf.StringVar(&flags.logFile, "log-file", "", "file receiving diagnostic logs")
	pf.BoolVar(&a.safeDirectory, "safe-directory", false, "add the working directory and its children to git's safe.directory list")

	root.AddCommand(newBatchCmds(a)...)
	return root
}

// runInteractive starts the full-screen interface
func runInteractive(a *app) error {
	root, err := a.cfg.Root()
	if err != nil {
		return err
	}
	if err := a.prepare(root); err != nil {
		return err
	}

	terminal.NormalizeTERM()
	if !terminal.IsInteractive() {
		return fmt.Errorf("%w; run a batch command such as 'gcl status' instead", terminal.ErrNotTerminal)
	}
	if err := terminal.CheckSize(a.cfg.MinWidth, a.cfg.MinHeight); err != nil {
		var small *terminal.TooSmallError
		if errors.As(err, &small) {
			return fmt.Errorf("%w; enlarge the window or run 'gcl status' instead", err)
		}
		log.Printf("Could not determine terminal size: %v", err)
	}

	client := a.client()
	model := ui.NewModel(a.ctx, a.cfg, a.registry, status.NewEngine(client), a.orchestrator())

	log.Printf("Starting UI...")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(a.ctx))
	model.SetProgram(p)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			log.Printf("UI interrupted")
			return nil
		}
		log.Printf("Error running program: %v", err)
		return err
	}
	log.Printf("UI exited normally")
	return nil
}

// isCommandLineError reports errors cobra raises for malformed command lines
func isCommandLineError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "accepts ", "invalid argument", "flag needs an argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
