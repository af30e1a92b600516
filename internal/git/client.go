package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Client wraps the git commands the tool needs. Every command is run
// with -C so that the working directory of the process never matters.
type Client struct {
	runner Runner
}

// NewClient creates a client over runner
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

func (c *Client) git(dir string, args ...string) (string, error) {
	return c.runner.Run(append([]string{"-C", dir}, args...)...)
}

// Exists reports whether path is an existing directory
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsDirty reports staged or unstaged differences from HEAD.
// Any failure, including a missing HEAD, counts as dirty.
func (c *Client) IsDirty(dir string) bool {
	_, err := c.git(dir, "diff-index", "--quiet", "HEAD", "--")
	return err != nil
}

// HasUpstream reports whether the current branch tracks a remote branch
func (c *Client) HasUpstream(dir string) bool {
	_, err := c.git(dir, "rev-parse", "@{u}")
	return err == nil
}

// Ahead counts commits on HEAD missing from upstream
func (c *Client) Ahead(dir string) (int, error) {
	return c.count(dir, "@{u}..HEAD")
}

// Behind counts commits on upstream missing from HEAD
func (c *Client) Behind(dir string) (int, error) {
	return c.count(dir, "HEAD..@{u}")
}

func (c *Client) count(dir, revRange string) (int, error) {
	out, err := c.git(dir, "rev-list", "--count", revRange)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", out, err)
	}
	return n, nil
}

// Fetch updates remote-tracking refs quietly
func (c *Client) Fetch(dir string) (string, error) {
	return c.git(dir, "fetch", "--quiet")
}

// Clone clones url into workdir/name
func (c *Client) Clone(workdir, url, name string) (string, error) {
	return c.git(workdir, "clone", url, name)
}

// StageAll stages every change including deletions and untracked files
func (c *Client) StageAll(dir string) (string, error) {
	return c.git(dir, "add", "-A")
}

// HasStagedChanges reports whether the index differs from HEAD
func (c *Client) HasStagedChanges(dir string) bool {
	_, err := c.git(dir, "diff-index", "--quiet", "--cached", "HEAD", "--")
	return err != nil
}

// Commit records the index with message
func (c *Client) Commit(dir, message string) (string, error) {
	return c.git(dir, "commit", "-m", message)
}

// Pull merges upstream favouring one side on conflicts (option is "ours" or "theirs")
func (c *Client) Pull(dir, option string) (string, error) {
	return c.git(dir, "pull", "--no-rebase", "--no-edit", "--strategy-option="+option)
}

// Push pushes the current branch to its upstream
func (c *Client) Push(dir string) (string, error) {
	return c.git(dir, "push")
}

// MergeInProgress reports whether a merge was left half-finished
func (c *Client) MergeInProgress(dir string) bool {
	_, err := c.git(dir, "rev-parse", "-q", "--verify", "MERGE_HEAD")
	return err == nil
}

// AbortMerge abandons an in-progress merge
func (c *Client) AbortMerge(dir string) (string, error) {
	return c.git(dir, "merge", "--abort")
}

// SetConfig writes a repository-local configuration value
func (c *Client) SetConfig(dir, key, value string) (string, error) {
	return c.git(dir, "config", key, value)
}

// ShortStatus returns the porcelain short status lines
func (c *Client) ShortStatus(dir string) ([]string, error) {
	out, err := c.git(dir, "status", "--short")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// UnpushedLog returns one-line summaries of commits not yet on upstream
func (c *Client) UnpushedLog(dir string) ([]string, error) {
	out, err := c.git(dir, "log", "@{u}..", "--oneline")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// Untracked lists paths git does not track, ignored paths included
func (c *Client) Untracked(dir string) ([]string, error) {
	out, err := c.git(dir, "ls-files", "--others")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// AddSafeDirectories marks workdir and its children as safe in the global git config
func (c *Client) AddSafeDirectories(workdir string) error {
	abs, err := filepath.Abs(workdir)
	if err != nil {
		return err
	}
	for _, dir := range []string{abs, filepath.Join(abs, "*")} {
		if _, err := c.runner.Run("config", "--global", "--add", "safe.directory", dir); err != nil {
			return fmt.Errorf("failed to add safe.directory %s: %w", dir, err)
		}
	}
	return nil
}

func lines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if strings.TrimSpace(out) == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
