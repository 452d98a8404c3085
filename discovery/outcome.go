package discovery

import (
	"errors"

	"github.com/leynos/ortho-config-sub000/cfgerr"
)

// LoadFunc reads one candidate. It returns a nil tree and a nil error when the
// file does not exist.
type LoadFunc func(path string) (map[string]any, error)

// BuildFunc turns a loaded tree into the caller's value.
type BuildFunc[T any] func(path string, tree map[string]any) (T, error)

// Outcome is the result of DiscoverFirst. It is never mutated after being
// returned.
type Outcome[T any] struct {
	// Value holds the built value when Found is true.
	Value T
	Found bool
	// Path is the candidate that produced Value.
	Path string
	// RequiredErrors are failures of required candidates. They are kept even
	// when a later optional candidate succeeds.
	RequiredErrors []error
	// OptionalErrors are failures of optional candidates scanned before the
	// successful one, or all of them when nothing loaded.
	OptionalErrors []error
	// Aborted is the extends failure that stopped the scan, if any.
	Aborted error
}

// Errors returns every collected error, required first.
func (o Outcome[T]) Errors() []error {
	out := make([]error, 0, len(o.RequiredErrors)+len(o.OptionalErrors))
	out = append(out, o.RequiredErrors...)
	return append(out, o.OptionalErrors...)
}

// Err combines the collected errors into one when no candidate was built.
// It returns nil when a candidate succeeded or nothing failed, and Aborted
// alone when the scan was stopped.
func (o Outcome[T]) Err() error {
	if o.Aborted != nil {
		return o.Aborted
	}
	if o.Found {
		return nil
	}
	return cfgerr.Aggregate(o.Errors()...)
}

// DiscoverFirst scans candidates in order and stops at the first one that
// loads and builds. A missing required candidate is recorded as a required
// error; a missing optional candidate is skipped silently. A load error
// matching cfgerr.ErrExtends stops the scan whatever the candidate.
func DiscoverFirst[T any](candidates []Candidate, load LoadFunc, build BuildFunc[T]) Outcome[T] {
	var out Outcome[T]
	record := func(c Candidate, err error) {
		if c.Required {
			out.RequiredErrors = append(out.RequiredErrors, err)
		} else {
			out.OptionalErrors = append(out.OptionalErrors, err)
		}
	}

	for _, c := range candidates {
		tree, err := load(c.Path)
		if errors.Is(err, cfgerr.ErrExtends) {
			out.Aborted = err
			return out
		}
		if err != nil {
			record(c, err)
			continue
		}
		if tree == nil {
			if c.Required {
				record(c, cfgerr.NotFound(c.Path))
			}
			continue
		}
		value, err := build(c.Path, tree)
		if err != nil {
			record(c, err)
			continue
		}
		out.Value = value
		out.Found = true
		out.Path = c.Path
		return out
	}
	return out
}
