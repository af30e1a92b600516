package gittest

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RequireGit skips the test when no git binary is available
func RequireGit(tb testing.TB) {
	tb.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		tb.Skip("git not available")
	}
}

// Isolate points git at an empty global config for the rest of the test
func Isolate(tb testing.TB) {
	tb.Helper()
	home := tb.TempDir()
	tb.Setenv("HOME", home)
	tb.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	tb.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	tb.Setenv("GIT_AUTHOR_NAME", "Test User")
	tb.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	tb.Setenv("GIT_COMMITTER_NAME", "Test User")
	tb.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

// Git runs git in dir and fails the test on error
func Git(tb testing.TB, dir string, args ...string) string {
	tb.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		tb.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

// WriteFile writes content to dir/name, creating parent directories
func WriteFile(tb testing.TB, dir, name, content string) {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatal(err)
	}
}

// Remote is a bare repository seeded with one commit on main
type Remote struct {
	Path string
	seed string
}

// NewRemote creates a bare remote under a temp directory
func NewRemote(tb testing.TB) *Remote {
	tb.Helper()
	root := tb.TempDir()
	bare := filepath.Join(root, "remote.git")
	Git(tb, root, "init", "--bare", "--initial-branch=main", bare)

	seed := filepath.Join(root, "seed")
	Git(tb, root, "clone", bare, seed)
	Git(tb, seed, "checkout", "-B", "main")
	WriteFile(tb, seed, "README.md", "seed\n")
	Git(tb, seed, "add", "-A")
	Git(tb, seed, "commit", "-m", "initial")
	Git(tb, seed, "push", "-u", "origin", "main")
	return &Remote{Path: bare, seed: seed}
}

// Advance commits a file change directly to the remote
func (r *Remote) Advance(tb testing.TB, name, content string) {
	tb.Helper()
	Git(tb, r.seed, "pull", "--quiet")
	WriteFile(tb, r.seed, name, content)
	Git(tb, r.seed, "add", "-A")
	Git(tb, r.seed, "commit", "-m", "advance "+name)
	Git(tb, r.seed, "push", "--quiet")
}

// CloneInto clones the remote into workdir/name
func (r *Remote) CloneInto(tb testing.TB, workdir, name string) string {
	tb.Helper()
	Git(tb, workdir, "clone", r.Path, name)
	dir := filepath.Join(workdir, name)
	Git(tb, dir, "checkout", "main")
	return dir
}
