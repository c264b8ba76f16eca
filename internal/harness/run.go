package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/qecdev/graphify/internal/dem"
	"github.com/qecdev/graphify/internal/parser"
	"github.com/qecdev/graphify/internal/transform"
	"github.com/qecdev/graphify/internal/verify"
)

// Result holds the outcome of running one scenario.
type Result struct {
	ScenarioName string

	// Original and Transformed are the models before and after the run.
	Original    *dem.Model
	Transformed *dem.Model

	// Log is the transformation log of the run.
	Log *transform.Log

	// Report is the structural verifier's verdict.
	Report verify.Report

	// Failures lists every assertion that did not hold; empty means the
	// scenario passed.
	Failures []string
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Run executes a scenario against the real transformation and evaluates
// its assertions. Assertion failures land in Result.Failures; the returned
// error covers only scenario-level problems (unreadable input, parse
// errors).
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with scenario progress logged to the given logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	model, err := loadInput(scenario)
	if err != nil {
		return nil, err
	}
	logger.Debug("scenario input parsed", "scenario", scenario.Name, "events", len(model.Events))

	runID := scenario.RunID
	if runID == "" {
		runID = DefaultRunID
	}

	transformed, log := transform.GraphifyWith(model, transform.FixedGenerator{ID: runID})
	report := verify.Verify(model, transformed)
	logger.Debug("scenario transformed",
		"scenario", scenario.Name,
		"hyperedges", log.CountKind(transform.EntryHyperEdgeDetected),
		"valid", report.Valid)

	result := &Result{
		ScenarioName: scenario.Name,
		Original:     model,
		Transformed:  transformed,
		Log:          log,
		Report:       report,
	}

	for i, assertion := range scenario.Assertions {
		if err := evaluateAssertion(&assertion, result); err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("assertions[%d] (%s): %v", i, assertion.Type, err))
		}
	}

	return result, nil
}

// loadInput parses the scenario's inline or file-based model.
func loadInput(scenario *Scenario) (*dem.Model, error) {
	var (
		model *dem.Model
		errs  []error
	)
	if scenario.Input != "" {
		model, errs = parser.ParseString(scenario.Input)
	} else {
		path := scenario.InputFile
		if !filepath.IsAbs(path) {
			path = filepath.Join("testdata", path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("input file not found: %s", path)
		}
		model, errs = parser.ParseFile(path)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("scenario input failed to parse: %w", errors.Join(errs...))
	}
	return model, nil
}
