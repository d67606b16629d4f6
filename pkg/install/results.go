package install

import (
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/ownership"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Status is the overall outcome of a run
type Status string

const (
	// StatusSuccess means every link and command succeeded
	StatusSuccess Status = "success"

	// StatusPartial means some items succeeded, some failed
	StatusPartial Status = "partial"

	// StatusError means every item failed
	StatusError Status = "error"

	// StatusEmpty means there was nothing to do
	StatusEmpty Status = "empty"
)

// Result is the outcome for one directory, link or command
type Result struct {
	// Name is the directory or target as configured, or the command description
	Name string `json:"name"`
	// Source is the link source or the command line
	Source string `json:"source,omitempty"`
	// Handler is "directory", "command" or the installer that handled a link
	Handler  string           `json:"handler"`
	Success  bool             `json:"success"`
	Code     errors.ErrorCode `json:"code,omitempty"`
	Message  string           `json:"message,omitempty"`
	Error    error            `json:"-"`
	Duration time.Duration    `json:"duration"`
}

func newResult(name, handler string, err error, start time.Time) Result {
	result := Result{
		Name:     name,
		Handler:  handler,
		Success:  err == nil,
		Duration: time.Since(start),
	}
	if err != nil {
		result.Error = err
		result.Code = errors.GetErrorCode(err)
		result.Message = err.Error()
	}
	return result
}

// Summary aggregates a run. Succeeded and Failed count links only.
type Summary struct {
	Directories []Result `json:"directories"`
	Links       []Result `json:"links"`
	Commands    []Result `json:"commands"`

	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Status derives the overall outcome from links and commands
func (s Summary) Status() Status {
	ok, failed := 0, 0
	for _, group := range [][]Result{s.Directories, s.Links, s.Commands} {
		for _, r := range group {
			if r.Success {
				ok++
			} else {
				failed++
			}
		}
	}

	switch {
	case ok == 0 && failed == 0:
		return StatusEmpty
	case failed == 0:
		return StatusSuccess
	case ok == 0:
		return StatusError
	default:
		return StatusPartial
	}
}

// FailedCommands counts failed post-install commands
func (s Summary) FailedCommands() int {
	n := 0
	for _, r := range s.Commands {
		if !r.Success {
			n++
		}
	}
	return n
}

// PlanEntry is the read-only assessment of one link
type PlanEntry struct {
	Target     string `json:"target"`
	Source     string `json:"source"`
	TargetPath string `json:"target_path"`
	SourcePath string `json:"source_path"`
	Handler    string `json:"handler"`

	Classification ownership.Classification `json:"-"`
	State          string                   `json:"state"`
	LinkValue      string                   `json:"link_value,omitempty"`

	// Action is what install would do; empty when it would refuse
	Action   string           `json:"action,omitempty"`
	UpToDate bool             `json:"up_to_date"`
	Code     errors.ErrorCode `json:"code,omitempty"`
	Message  string           `json:"message,omitempty"`
}

func newPlanEntry(spec types.LinkSpec, handler, sourcePath, targetPath string, entry ownership.Entry, action string, err *errors.Error) PlanEntry {
	pe := PlanEntry{
		Target:         spec.Target,
		Source:         spec.Source,
		TargetPath:     targetPath,
		SourcePath:     sourcePath,
		Handler:        handler,
		Classification: entry.Kind,
		State:          entry.Kind.String(),
		LinkValue:      entry.LinkValue,
		Action:         action,
	}
	if err != nil {
		pe.Action = ""
		pe.Code = err.Code
		pe.Message = err.Message
	}
	return pe
}
