package harness

import (
	"fmt"
	"reflect"

	"github.com/qecdev/graphify/internal/transform"
	"github.com/qecdev/graphify/internal/verify"
)

// evaluateAssertion checks one assertion against a run result.
// Returns nil when the assertion holds.
func evaluateAssertion(a *Assertion, r *Result) error {
	switch a.Type {
	case AssertGraphlike:
		return assertGraphlike(r)
	case AssertErrorCount:
		return assertErrorCount(a.Count, r)
	case AssertVirtualCount:
		return assertVirtualCount(a.Count, r)
	case AssertPassThrough:
		return assertPassThrough(r)
	case AssertValid:
		return assertValid(a.Expect, r)
	case AssertLogCounts:
		return assertLogCounts(a, r)
	default:
		// validateAssertion rejects unknown types at load time.
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertGraphlike(r *Result) error {
	if violations := verify.Violations(r.Transformed); len(violations) > 0 {
		return fmt.Errorf("output has hyper-edges at instruction(s) %v", violations)
	}
	return nil
}

func assertErrorCount(want int, r *Result) error {
	got := len(r.Transformed.ErrorEvents())
	if got != want {
		return fmt.Errorf("output has %d error event(s), want %d", got, want)
	}
	return nil
}

func assertVirtualCount(want int, r *Result) error {
	got := 0
	for _, entry := range r.Log.Entries {
		got += len(entry.VirtualNodes)
	}
	if got != want {
		return fmt.Errorf("run introduced %d virtual detector(s), want %d", got, want)
	}
	return nil
}

func assertPassThrough(r *Result) error {
	if !reflect.DeepEqual(r.Original.Events, r.Transformed.Events) {
		return fmt.Errorf("output differs from input")
	}
	return nil
}

func assertValid(want bool, r *Result) error {
	if r.Report.Valid != want {
		return fmt.Errorf("verifier valid=%v, want %v", r.Report.Valid, want)
	}
	return nil
}

func assertLogCounts(a *Assertion, r *Result) error {
	got := [3]int{
		r.Log.CountKind(transform.EntryHyperEdgeDetected),
		r.Log.CountKind(transform.EntryHyperEdgeDecomposed),
		r.Log.CountKind(transform.EntryHyperEdgeDecomposeFailed),
	}
	want := [3]int{a.Detected, a.Decomposed, a.Failed}
	if got != want {
		return fmt.Errorf("log counts detected/decomposed/failed = %d/%d/%d, want %d/%d/%d",
			got[0], got[1], got[2], want[0], want[1], want[2])
	}
	return nil
}
