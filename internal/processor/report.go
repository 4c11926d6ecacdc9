package processor

import "github.com/kennyg/scribe/internal/canonical"

// PairReport is the outcome of one (tool, kind) pair at one base
// directory. Failure marks the pair as failed without affecting its
// siblings; Fatal records a filesystem error that aborted the run.
type PairReport struct {
	Tool      string
	Kind      canonical.Kind
	BaseDir   string
	Written   []string
	Deleted   []string
	Skipped   []string // import only: existing canonical files left alone
	Unchanged int
	Failure   error
	Fatal     error
}

// Changed reports whether the pair produced or would produce any
// mutation.
func (p *PairReport) Changed() bool {
	return len(p.Written) > 0 || len(p.Deleted) > 0
}

// Report aggregates one run. SourceErrors are per-artifact parse and
// validation failures from the canonical source; the artifacts they
// belong to were excluded and everything else processed normally.
type Report struct {
	Pairs        []PairReport
	SourceErrors []error
	Warnings     []string
}

// Totals sums the per-pair counters.
func (r *Report) Totals() (written, deleted, skipped, unchanged int) {
	for i := range r.Pairs {
		written += len(r.Pairs[i].Written)
		deleted += len(r.Pairs[i].Deleted)
		skipped += len(r.Pairs[i].Skipped)
		unchanged += r.Pairs[i].Unchanged
	}
	return
}

// Failures returns every per-pair failure in report order.
func (r *Report) Failures() []error {
	var errs []error
	for i := range r.Pairs {
		if r.Pairs[i].Failure != nil {
			errs = append(errs, r.Pairs[i].Failure)
		}
	}
	return errs
}

// OK reports whether the run completed without source errors or pair
// failures.
func (r *Report) OK() bool {
	return len(r.SourceErrors) == 0 && len(r.Failures()) == 0
}
