package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"gcl/internal/domain"
)

func TestPrinterTranscript(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.RepoStarted(domain.RepoEntry{Name: "repoA"})
	step := domain.Step{Kind: domain.StepInspect, Result: domain.ResultWarning, Message: "not cloned"}
	p.StepRecorded("repoA", step)
	p.RepoFinished(domain.OperationOutcome{Repo: "repoA", Steps: []domain.Step{step}})

	p.RepoStarted(domain.RepoEntry{Name: "repoB"})
	failed := domain.Step{Kind: domain.StepPull, Result: domain.ResultFailed, Failure: domain.PullFailure,
		Message: "Pull failed (generic)", Output: "fatal: boom\nhint: retry\n"}
	p.StepRecorded("repoB", failed)
	p.RepoFinished(domain.OperationOutcome{Repo: "repoB", Steps: []domain.Step{failed}})
	p.Summary()

	out := buf.String()
	assert.Contains(t, out, "==> Processing 'repoA'")
	assert.Contains(t, out, "  ⚠ not cloned\n")
	assert.Contains(t, out, "  ✗ Pull failed (generic)\n")
	assert.Contains(t, out, "    fatal: boom\n    hint: retry\n")
	assert.Contains(t, out, "2 repositories processed, 1 failed, 1 warnings")
	assert.Equal(t, 1, p.Failed())
}

func TestPrinterDetailLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.StepRecorded("a", domain.Step{Result: domain.ResultWarning, Message: "2 untracked file(s)", Lines: []string{"x", "y"}})
	assert.Equal(t, "  ⚠ 2 untracked file(s)\n    x\n    y\n", buf.String())
}

func TestFetchTable(t *testing.T) {
	var buf bytes.Buffer
	FetchTable(&buf, []string{"a", "longer"}, []domain.FetchStatus{
		{Kind: domain.FetchPendingPull, Count: 2},
		{Kind: domain.FetchUpToDate},
	})
	assert.Equal(t, "a       2 To Pull\nlonger  Up to Date\n", buf.String())
}
