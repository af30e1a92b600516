package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gcl/internal/domain"
	"gcl/internal/git"
	"gcl/internal/git/gittest"
	"gcl/internal/status"
)

type recorder struct {
	events []string
}

func (r *recorder) RepoStarted(e domain.RepoEntry) { r.events = append(r.events, "start "+e.Name) }
func (r *recorder) StepRecorded(repo string, s domain.Step) {
	r.events = append(r.events, repo+" "+string(s.Kind))
}
func (r *recorder) RepoFinished(o domain.OperationOutcome) { r.events = append(r.events, "done "+o.Repo) }

func setup(t *testing.T, names ...string) (string, *gittest.FakeRunner, *Orchestrator) {
	t.Helper()
	root := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.Mkdir(filepath.Join(root, n), 0o755))
	}
	fake := gittest.NewFakeRunner()
	return root, fake, New(git.NewClient(fake), Options{})
}

func kinds(o domain.OperationOutcome) []domain.StepKind {
	var out []domain.StepKind
	for _, s := range o.Steps {
		out = append(out, s.Kind)
	}
	return out
}

func TestRunRejectsInvalidRoot(t *testing.T) {
	o := New(git.NewClient(gittest.NewFakeRunner()), Options{})
	_, err := o.Run(context.Background(), Request{Root: filepath.Join(t.TempDir(), "missing")}, nil)
	require.ErrorIs(t, err, ErrInvalidRoot)
}

func TestCloneWhenMissingStopsPipeline(t *testing.T) {
	root, fake, o := setup(t)
	entry := domain.RepoEntry{Name: "a", URL: "git@host:a.git"}

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Sync, Repos: []domain.RepoEntry{entry}}, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []domain.StepKind{domain.StepClone}, kinds(out[0]))
	assert.Equal(t, []string{"-C " + root + " clone git@host:a.git a"}, fake.Calls())
}

func TestCloneFailureContinuesBatch(t *testing.T) {
	root, fake, o := setup(t, "b")
	fake.Fail("-C "+root+" clone u-a a", "fatal: repository not found")

	rec := &recorder{}
	out, err := o.Run(context.Background(), Request{
		Root:   root,
		Action: domain.Pull,
		Repos:  []domain.RepoEntry{{Name: "a", URL: "u-a"}, {Name: "b", URL: "u-b"}},
	}, rec)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Failed())
	assert.Equal(t, []domain.FailureKind{domain.CloneFailure}, out[0].Failures())
	assert.Equal(t, "fatal: repository not found", out[0].Steps[0].Output)
	assert.True(t, out[1].Ran(domain.StepPull))
	assert.Equal(t, []string{"start a", "a clone", "done a", "start b", "b pull", "done b"}, rec.events)
}

func TestReadOnlyActionsDoNotClone(t *testing.T) {
	root, fake, o := setup(t)
	for _, action := range []domain.Action{domain.Status, domain.ListUntracked} {
		out, err := o.Run(context.Background(), Request{Root: root, Action: action, Repos: []domain.RepoEntry{{Name: "a", URL: "u"}}}, nil)
		require.NoError(t, err)
		require.Len(t, out[0].Steps, 1)
		assert.Equal(t, "not cloned", out[0].Steps[0].Message)
	}
	assert.Empty(t, fake.Calls())
}

func TestPullCommitsDirtyTreeFirst(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "
	fake.Fail(dir+"diff-index --quiet HEAD --", "")

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Pull, Strategy: domain.KeepLocal,
		Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.StepKind{domain.StepPrecommit, domain.StepPull}, kinds(out[0]))

	commit := fake.Index(dir + "commit -m fixes")
	pull := fake.Index(dir + "pull --no-rebase --no-edit --strategy-option=ours")
	require.GreaterOrEqual(t, commit, 0)
	assert.Greater(t, pull, commit)
	assert.Less(t, fake.Index(dir+"add -A"), commit)
}

func TestPrePullCommitFailureAborts(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "
	fake.Fail(dir+"diff-index --quiet HEAD --", "").
		Fail(dir+"commit -m fixes", "error: gpg failed to sign the data")

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Sync, Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.FailureKind{domain.CommitFailure}, out[0].Failures())
	assert.False(t, fake.Called(dir+"pull --no-rebase --no-edit --strategy-option=theirs"))
	assert.False(t, fake.Called(dir+"push"))
}

func TestSyncLongPathFailureRemediatesWithoutPush(t *testing.T) {
	root, fake, o := setup(t, "repoD")
	dir := "-C " + filepath.Join(root, "repoD") + " "
	fake.Fail(dir+"pull --no-rebase --no-edit --strategy-option=theirs",
		"error: unable to create file very/long/path.txt: Filename too long").
		Fail(dir+"rev-parse -q --verify MERGE_HEAD", "")

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Sync, Repos: []domain.RepoEntry{{Name: "repoD"}}}, nil)
	require.NoError(t, err)

	o0 := out[0]
	assert.Equal(t, []domain.StepKind{domain.StepPull, domain.StepRemediate}, kinds(o0))
	assert.Equal(t, "Pull failed (longpath)", o0.Steps[0].Message)
	assert.True(t, fake.Called(dir+"config core.longpaths true"))
	assert.Equal(t, 1, fake.Count(dir+"pull --no-rebase --no-edit --strategy-option=theirs"))
	assert.False(t, fake.Called(dir+"push"))
	assert.False(t, fake.Called(dir+"merge --abort"))
}

func TestSymlinkFailureAbortsStuckMerge(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "
	fake.Fail(dir+"pull --no-rebase --no-edit --strategy-option=theirs", "error: unable to create symlink x: Operation not permitted")

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Pull, Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.StepKind{domain.StepPull, domain.StepAbort, domain.StepRemediate}, kinds(out[0]))
	assert.Equal(t, []domain.FailureKind{domain.PullFailure, domain.MergeStuck}, out[0].Failures())
	assert.True(t, fake.Called(dir+"merge --abort"))
	assert.True(t, fake.Called(dir+"config core.symlinks false"))
}

func TestGenericPullFailureHasNoRemediation(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "
	fake.Fail(dir+"pull --no-rebase --no-edit --strategy-option=theirs", "fatal: Could not read from remote repository.").
		Fail(dir+"rev-parse -q --verify MERGE_HEAD", "")

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Pull, Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.StepKind{domain.StepPull}, kinds(out[0]))
	for _, c := range fake.Calls() {
		assert.NotContains(t, c, " config ")
	}
}

func TestSyncPullsBeforePush(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Sync, Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.StepKind{domain.StepPull, domain.StepStage, domain.StepCommit, domain.StepPush}, kinds(out[0]))
	assert.Less(t, fake.Index(dir+"pull --no-rebase --no-edit --strategy-option=theirs"), fake.Index(dir+"push"))
}

func TestPushFailureIsWarning(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "
	fake.Fail(dir+"push", "rejected")

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Push, Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	last := out[0].Steps[len(out[0].Steps)-1]
	assert.Equal(t, domain.ResultWarning, last.Result)
	assert.Equal(t, domain.PushFailure, last.Failure)
	assert.False(t, out[0].Failed())
}

func TestPushCommitsOnlyWhenIndexDiffers(t *testing.T) {
	root, fake, o := setup(t, "clean", "dirty")
	clean := "-C " + filepath.Join(root, "clean") + " "
	dirty := "-C " + filepath.Join(root, "dirty") + " "
	fake.Fail(dirty+"diff-index --quiet --cached HEAD --", "")

	o.message = "wip"
	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Push,
		Repos: []domain.RepoEntry{{Name: "clean"}, {Name: "dirty"}}}, nil)
	require.NoError(t, err)
	assert.False(t, fake.Called(clean+"commit -m wip"))
	assert.True(t, fake.Called(dirty+"commit -m wip"))
	assert.Equal(t, domain.ResultSkipped, out[0].Steps[1].Result)
	assert.Equal(t, "No changes to commit", out[0].Steps[1].Message)
}

func TestStatusReportsDetails(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "
	fake.Fail(dir+"diff-index --quiet HEAD --", "").
		On(dir+"status --short", gittest.Response{Output: " M 1\n M 2\n M 3\n M 4\n M 5\n M 6\n"}).
		On(dir+"log @{u}.. --oneline", gittest.Response{Output: "abc123 first\n"})

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Status, Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	require.Len(t, out[0].Steps, 2)
	assert.Len(t, out[0].Steps[0].Lines, 5)
	assert.Equal(t, "1 unpushed commit(s)", out[0].Steps[1].Message)
	assert.Equal(t, []string{"abc123 first"}, out[0].Steps[1].Lines)
	for _, c := range fake.Calls() {
		assert.NotRegexp(t, `(commit|push|pull|add|fetch)`, c)
	}
}

func TestStatusKeepsShortStatusError(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "
	fake.Fail(dir+"diff-index --quiet HEAD --", "").
		Fail(dir+"status --short", "fatal: index file corrupt").
		On(dir+"log @{u}.. --oneline", gittest.Response{Output: ""})

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Status, Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	step := out[0].Steps[0]
	assert.Equal(t, domain.ResultWarning, step.Result)
	assert.Equal(t, "uncommitted changes", step.Message)
	assert.Empty(t, step.Lines)
	assert.Contains(t, step.Output, "fatal: index file corrupt")
}

func TestUntrackedTruncates(t *testing.T) {
	root, fake, o := setup(t, "a")
	dir := "-C " + filepath.Join(root, "a") + " "
	var listing string
	for i := 0; i < 12; i++ {
		listing += "f" + string(rune('a'+i)) + "\n"
	}
	fake.On(dir+"ls-files --others", gittest.Response{Output: listing})

	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.ListUntracked, Repos: []domain.RepoEntry{{Name: "a"}}}, nil)
	require.NoError(t, err)
	step := out[0].Steps[0]
	assert.Equal(t, "12 untracked file(s)", step.Message)
	assert.Len(t, step.Lines, 11)
	assert.Equal(t, "... and 2 more", step.Lines[10])
}

func TestRunStopsBetweenReposWhenCancelled(t *testing.T) {
	root, fake, o := setup(t, "a", "b")
	ctx, cancel := context.WithCancel(context.Background())

	rec := &cancelOnFirst{cancel: cancel}
	out, err := o.Run(ctx, Request{Root: root, Action: domain.Status, Repos: []domain.RepoEntry{{Name: "a"}, {Name: "b"}}}, rec)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, out, 1)
	for _, c := range fake.Calls() {
		assert.NotContains(t, c, filepath.Join(root, "b"))
	}
}

type cancelOnFirst struct {
	recorder
	cancel context.CancelFunc
}

func (c *cancelOnFirst) RepoFinished(domain.OperationOutcome) { c.cancel() }

func TestPushScenarioAgainstRealRepository(t *testing.T) {
	gittest.RequireGit(t)
	gittest.Isolate(t)

	remote := gittest.NewRemote(t)
	root := t.TempDir()
	dir := remote.CloneInto(t, root, "repoC")
	gittest.WriteFile(t, dir, "change.txt", "local\n")
	gittest.Git(t, dir, "add", "-A")
	gittest.Git(t, dir, "commit", "-m", "local change")

	client := git.NewClient(git.NewExecRunner())
	engine := status.NewEngine(client)
	require.Equal(t, domain.LocalStatus{Kind: domain.LocalUnpushed, Count: 1}, engine.Local(root, "repoC"))

	o := New(client, Options{})
	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Push, Repos: []domain.RepoEntry{{Name: "repoC", URL: remote.Path}}}, nil)
	require.NoError(t, err)
	steps := out[0].Steps
	require.Len(t, steps, 3)
	assert.Equal(t, "Staging changes", steps[0].Message)
	assert.Equal(t, "No changes to commit", steps[1].Message)
	assert.Equal(t, domain.ResultOK, steps[2].Result)

	assert.Equal(t, domain.LocalStatus{Kind: domain.LocalClean}, engine.Local(root, "repoC"))
}

func TestSyncKeepLocalResolvesConflictAgainstRealRepository(t *testing.T) {
	gittest.RequireGit(t)
	gittest.Isolate(t)

	remote := gittest.NewRemote(t)
	root := t.TempDir()
	dir := remote.CloneInto(t, root, "repo")
	remote.Advance(t, "README.md", "remote\n")
	gittest.WriteFile(t, dir, "README.md", "local\n")

	o := New(git.NewClient(git.NewExecRunner()), Options{CommitMessage: "auto"})
	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Sync, Strategy: domain.KeepLocal,
		Repos: []domain.RepoEntry{{Name: "repo", URL: remote.Path}}}, nil)
	require.NoError(t, err)
	assert.False(t, out[0].Failed(), "%+v", out[0].Steps)
	assert.Equal(t, []domain.StepKind{domain.StepPrecommit, domain.StepPull, domain.StepStage, domain.StepCommit, domain.StepPush}, kinds(out[0]))

	content, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "local\n", string(content))
}

func TestCloneAgainstRealRepository(t *testing.T) {
	gittest.RequireGit(t)
	gittest.Isolate(t)

	remote := gittest.NewRemote(t)
	root := t.TempDir()
	o := New(git.NewClient(git.NewExecRunner()), Options{})
	out, err := o.Run(context.Background(), Request{Root: root, Action: domain.Pull,
		Repos: []domain.RepoEntry{{Name: "fresh", URL: remote.Path}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultOK, out[0].Steps[0].Result)
	assert.True(t, git.Exists(filepath.Join(root, "fresh", ".git")))
}
