// Package export implements the multi-resource export orchestrator.
package export

import "fmt"

// Status is the terminal state of one requested category.
type Status int

const (
	// StatusSucceeded - payload fetched and written to disk
	StatusSucceeded Status = iota
	// StatusFailed - upstream or filesystem failure, recorded and skipped
	StatusFailed
	// StatusSkipped - name did not match any known resource category
	StatusSkipped
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// CategoryResult records the outcome for one requested resource name.
type CategoryResult struct {
	// Name is the requested name as the user typed it.
	Name string

	// Status is the terminal state.
	Status Status

	// OutputPath is the written file, set on success.
	OutputPath string

	// Reason describes a failure or skip.
	Reason string
}

// Report is the per-invocation success/failure report.
type Report struct {
	Environment string
	Results     []CategoryResult
}

// Succeeded returns the number of exported categories.
func (r *Report) Succeeded() int { return r.count(StatusSucceeded) }

// Failed returns the number of failed categories.
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Skipped returns the number of unrecognized resource names.
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

func (r *Report) count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Summary returns a one-line count summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d succeeded, %d failed, %d skipped",
		r.Succeeded(), r.Failed(), r.Skipped())
}
