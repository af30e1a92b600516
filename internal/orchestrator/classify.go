package orchestrator

import (
	"strings"

	"gcl/internal/domain"
)

// Signatures are matched case-insensitively against git's combined output.
// Matching depends on git's message text and is best effort.
var (
	longPathSignatures = []string{
		"filename too long",
		"file name too long",
		"path too long",
	}
	symlinkSignatures = []string{
		"unable to create symlink",
		"cannot create symlink",
		"could not create symlink",
		"failed to create symbolic link",
	}
)

// ClassifyPullFailure maps pull output to the cause used for remediation
func ClassifyPullFailure(output string) domain.PullFailureCause {
	text := strings.ToLower(output)
	for _, sig := range longPathSignatures {
		if strings.Contains(text, sig) {
			return domain.CauseLongPath
		}
	}
	for _, sig := range symlinkSignatures {
		if strings.Contains(text, sig) {
			return domain.CauseSymlink
		}
	}
	return domain.CauseGeneric
}

// remediation is the one-shot repository config change for a cause
type remediation struct {
	key, value string
}

var remediations = map[domain.PullFailureCause]remediation{
	domain.CauseLongPath: {key: "core.longpaths", value: "true"},
	domain.CauseSymlink:  {key: "core.symlinks", value: "false"},
}
