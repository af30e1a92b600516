//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// RepoOption is a function that configures repository creation
type RepoOption func(*repoOptions)

type repoOptions struct {
	dirty      bool
	withRemote bool
}

// WithDirtyState leaves a modified tracked file after the initial commit
func WithDirtyState() RepoOption {
	return func(opts *repoOptions) {
		opts.dirty = true
	}
}

// WithRemote pushes the repository to a bare remote and tracks it
func WithRemote() RepoOption {
	return func(opts *repoOptions) {
		opts.withRemote = true
	}
}

// CreateTestWorkspace creates the working directory the binary is pointed at
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	tf.home = tf.t.TempDir()
	return tmpDir, nil
}

// CreateTestRepo creates a Git repository in the workspace. The name must
// be one of the registered repositories for gcl to look at it.
func (tf *TUITestFramework) CreateTestRepo(name string, options ...RepoOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	opts := &repoOptions{}
	for _, opt := range options {
		opt(opts)
	}

	repoPath := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "init", "--initial-branch=main"); err != nil {
		return "", err
	}

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "add", "."); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "commit", "-m", "Initial commit"); err != nil {
		return "", err
	}

	if opts.withRemote {
		remotePath := filepath.Join(tf.t.TempDir(), name+".git")
		if err := tf.runGitCommand("", "init", "--bare", "--initial-branch=main", remotePath); err != nil {
			return "", err
		}
		if err := tf.runGitCommand(repoPath, "remote", "add", "origin", remotePath); err != nil {
			return "", err
		}
		if err := tf.runGitCommand(repoPath, "push", "-u", "origin", "main"); err != nil {
			return "", err
		}
	}

	if opts.dirty {
		if err := os.WriteFile(readmePath, []byte("# "+name+"\n\nlocal edit\n"), 0644); err != nil {
			return "", err
		}
	}

	return repoPath, nil
}

func (tf *TUITestFramework) runGitCommand(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	// Set deterministic git environment
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=gcl Test",
		"GIT_AUTHOR_EMAIL=test@gcl.test",
		"GIT_COMMITTER_NAME=gcl Test",
		"GIT_COMMITTER_EMAIL=test@gcl.test",
		"GIT_CONFIG_GLOBAL=/dev/null", // ignore user ~/.gitconfig
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %v failed: %v; out=%s", args, err, out)
	}
	return nil
}
