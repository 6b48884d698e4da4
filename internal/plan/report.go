package plan

import (
	"fmt"
	"io"
)

// Outcome records what happened to one plan during execution.
type Outcome struct {
	Plan  Plan
	Moved bool
	Err   error
}

// Report aggregates a run's outcomes for the end-of-run summary.
type Report struct {
	Moved       int
	NoOps       int
	Unparseable int
	Conflicts   int
	Failed      int

	Skipped []Plan    // unparseable and conflicting plans, in scan order
	Errors  []Outcome // plans that failed during execution
}

// NewReport builds a report from the planned batch and the execution
// outcomes. Plans that never reached execution are counted off their status.
func NewReport(plans []Plan, outcomes []Outcome) *Report {
	r := &Report{}

	for _, p := range plans {
		switch p.Status {
		case StatusNoOp:
			r.NoOps++
		case StatusUnparseable:
			r.Unparseable++
			r.Skipped = append(r.Skipped, p)
		case StatusConflict:
			r.Conflicts++
			r.Skipped = append(r.Skipped, p)
		}
	}

	for _, o := range outcomes {
		if o.Moved {
			r.Moved++
			continue
		}
		if o.Err != nil {
			r.Failed++
			r.Errors = append(r.Errors, o)
		}
	}

	return r
}

// Total returns the number of files the run considered.
func (r *Report) Total() int {
	return r.Moved + r.NoOps + r.Unparseable + r.Conflicts + r.Failed
}

// Render writes the human-readable summary.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "%d files processed: %d moved, %d already in place, %d unparseable, %d conflicts, %d failed\n",
		r.Total(), r.Moved, r.NoOps, r.Unparseable, r.Conflicts, r.Failed)

	for _, p := range r.Skipped {
		fmt.Fprintf(w, "  skipped %s: %s\n", p.Source, p.Reason)
	}
	for _, o := range r.Errors {
		fmt.Fprintf(w, "  failed  %s: %v\n", o.Plan.Source, o.Err)
	}
}
