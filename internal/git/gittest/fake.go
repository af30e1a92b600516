// Package gittest provides a scripted git runner for tests.
package gittest

import (
	"fmt"
	"strings"
	"sync"

	"gcl/internal/git"
)

// Response is the scripted reply to one git invocation
type Response struct {
	Output   string
	ExitCode int
}

// FakeRunner answers git invocations from a script keyed by the joined argument list.
// Unscripted commands succeed with empty output.
type FakeRunner struct {
	mu     sync.Mutex
	script map[string][]Response
	calls  []string
}

// NewFakeRunner creates an empty fake
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{script: make(map[string][]Response)}
}

// On queues a response for the command. Queued responses are consumed in
// order; the last one repeats.
func (f *FakeRunner) On(cmd string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script[cmd] = append(f.script[cmd], resp)
	return f
}

// Fail is shorthand for a non-zero exit with output
func (f *FakeRunner) Fail(cmd string, output string) *FakeRunner {
	return f.On(cmd, Response{Output: output, ExitCode: 1})
}

// Run implements git.Runner
func (f *FakeRunner) Run(args ...string) (string, error) {
	cmd := strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	queue := f.script[cmd]
	var resp Response
	if len(queue) > 0 {
		resp = queue[0]
		if len(queue) > 1 {
			f.script[cmd] = queue[1:]
		}
	}
	f.mu.Unlock()

	if resp.ExitCode != 0 {
		return resp.Output, &git.CommandError{
			Args:     args,
			ExitCode: resp.ExitCode,
			Output:   strings.TrimSpace(resp.Output),
			Err:      fmt.Errorf("exit status %d", resp.ExitCode),
		}
	}
	return resp.Output, nil
}

// Calls returns every command run so far
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Called reports whether cmd was run
func (f *FakeRunner) Called(cmd string) bool {
	return f.Index(cmd) >= 0
}

// Index returns the position of the first call to cmd, or -1
func (f *FakeRunner) Index(cmd string) int {
	for i, c := range f.Calls() {
		if c == cmd {
			return i
		}
	}
	return -1
}

// Count returns how many times cmd was run
func (f *FakeRunner) Count(cmd string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == cmd {
			n++
		}
	}
	return n
}
