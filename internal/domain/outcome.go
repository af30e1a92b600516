package domain

// StepKind names a single stage of a repository pipeline
type StepKind string

const (
	StepClone     StepKind = "clone"
	StepFetch     StepKind = "fetch"
	StepPrecommit StepKind = "pre-pull commit"
	StepPull      StepKind = "pull"
	StepRemediate StepKind = "remediate"
	StepAbort     StepKind = "merge abort"
	StepStage     StepKind = "stage"
	StepCommit    StepKind = "commit"
	StepPush      StepKind = "push"
	StepInspect   StepKind = "inspect"
	StepUntracked StepKind = "untracked"
)

// StepResult is the classification of a completed step
type StepResult int

const (
	ResultOK StepResult = iota
	ResultInfo
	ResultSkipped
	ResultWarning
	ResultFailed
)

// FailureKind is the error taxonomy for recorded failures
type FailureKind int

const (
	NoFailure FailureKind = iota
	CloneFailure
	CommitFailure
	PullFailure
	PushFailure
	FetchFailure
	MergeStuck
)

func (k FailureKind) String() string {
	switch k {
	case CloneFailure:
		return "clone failure"
	case CommitFailure:
		return "commit failure"
	case PullFailure:
		return "pull failure"
	case PushFailure:
		return "push failure"
	case FetchFailure:
		return "fetch failure"
	case MergeStuck:
		return "merge stuck"
	}
	return "none"
}

// PullFailureCause refines a PullFailure
type PullFailureCause int

const (
	CauseGeneric PullFailureCause = iota
	CauseLongPath
	CauseSymlink
)

func (c PullFailureCause) String() string {
	switch c {
	case CauseLongPath:
		return "longpath"
	case CauseSymlink:
		return "symlink"
	}
	return "generic"
}

// Step is one recorded stage in an OperationOutcome
type Step struct {
	Kind    StepKind
	Result  StepResult
	Message string      // one-line human readable summary
	Output  string      // raw tool output, may be empty
	Failure FailureKind // set when Result is ResultFailed or ResultWarning
	Lines   []string    // detail lines (status entries, untracked paths)
}

// OperationOutcome is the ordered step log of one repository's pipeline
type OperationOutcome struct {
	Repo  string
	Steps []Step
}

// Add appends a step
func (o *OperationOutcome) Add(s Step) {
	o.Steps = append(o.Steps, s)
}

// Failed reports whether any step failed. Warnings do not count.
func (o OperationOutcome) Failed() bool {
	for _, s := range o.Steps {
		if s.Result == ResultFailed {
			return true
		}
	}
	return false
}

// Failures returns the failure kinds recorded, warnings included
func (o OperationOutcome) Failures() []FailureKind {
	var kinds []FailureKind
	for _, s := range o.Steps {
		if s.Failure != NoFailure {
			kinds = append(kinds, s.Failure)
		}
	}
	return kinds
}

// Ran reports whether a step of the given kind was recorded
func (o OperationOutcome) Ran(kind StepKind) bool {
	for _, s := range o.Steps {
		if s.Kind == kind {
			return true
		}
	}
	return false
}
