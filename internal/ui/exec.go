package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/noborus/ov/oviewer"

	"gcl/internal/orchestrator"
	"gcl/internal/report"
)

// ReturnPrompt is printed after a run while the terminal is in normal mode
const ReturnPrompt = "Press 'q' to quit or Enter to return to the menu."

// writeTranscript executes req and streams its transcript to w
func writeTranscript(ctx context.Context, orch *orchestrator.Orchestrator, req orchestrator.Request, w io.Writer) {
	p := report.NewPrinter(w)
	p.Banner(req.Action, req.Strategy, req.Root)
	if len(req.Repos) == 0 {
		fmt.Fprintln(w, "No repositories selected. Nothing to do.")
		return
	}
	if _, err := orch.Run(ctx, req, p); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		if errors.Is(err, orchestrator.ErrInvalidRoot) {
			return
		}
	}
	p.Summary()
}

// runCommand hands the terminal to a run. It implements tea.ExecCommand so
// the program leaves the alternate screen while the transcript prints.
type runCommand struct {
	transcript func(w io.Writer)

	stdin  io.Reader
	stdout io.Writer
	quit   bool
}

func (c *runCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *runCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *runCommand) SetStderr(io.Writer)   {}

// Run prints the transcript and waits for the user to choose between
// quitting and returning to the menu
func (c *runCommand) Run() error {
	in, out := c.stdin, c.stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	c.transcript(out)
	fmt.Fprintf(out, "\n%s\n", ReturnPrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		// stdin closed: nothing more can be read from the user
		c.quit = true
		return nil
	}
	c.quit = strings.EqualFold(strings.TrimSpace(line), "q")
	return nil
}

// pagerCommand shows text in the ov pager
type pagerCommand struct {
	content string
}

func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// Run blocks until the pager exits
func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
