package git

import (
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// Runner executes git with the given arguments and returns combined output
type Runner interface {
	Run(args ...string) (string, error)
}

// CommandError is returned when git exits non-zero or cannot be started
type CommandError struct {
	Args     []string
	ExitCode int // -1 when git could not be started
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("git %s failed: %v\nOutput: %s", strings.Join(e.Args, " "), e.Err, e.Output)
	}
	return fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode extracts the git exit status from err. Nil yields 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.ExitCode
	}
	return -1
}

// ExecRunner runs the git binary found on PATH.
// Subprocesses are never interrupted once started.
type ExecRunner struct {
	Binary string
}

// NewExecRunner creates a runner for the git on PATH
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Binary: "git"}
}

// Run implements Runner
func (r *ExecRunner) Run(args ...string) (string, error) {
	cmd := exec.Command(r.Binary, args...)
	// Never block on credential or editor prompts.
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_MERGE_AUTOEDIT=no")
	output, err := cmd.CombinedOutput()
	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		log.Printf("git %s exited %d", strings.Join(args, " "), code)
		return string(output), &CommandError{Args: args, ExitCode: code, Output: strings.TrimSpace(string(output)), Err: err}
	}
	log.Printf("git %s ok", strings.Join(args, " "))
	return string(output), nil
}

// Available reports whether the git binary can be found
func Available() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is not installed or not in PATH: %w", err)
	}
	return nil
}
