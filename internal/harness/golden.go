package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/qecdev/graphify/internal/dem"
)

// Snapshot captures the complete observable outcome of a scenario run:
// the transformed model's text, the transformation log, and the verifier
// report. All fields use canonical JSON serialization for deterministic
// comparison.
type Snapshot struct {
	ScenarioName string
	Result       *Result
}

// toCanonicalMap converts a Snapshot to a value dem.MarshalCanonical
// accepts (no floats; probabilities inside the log are pre-rendered).
func (s *Snapshot) toCanonicalMap() map[string]any {
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"model":         dem.Format(s.Result.Transformed),
		"log":           s.Result.Log.CanonicalSnapshot(),
		"report": map[string]any{
			"original_non_empty":    s.Result.Report.OriginalNonEmpty,
			"transformed_non_empty": s.Result.Report.TransformedNonEmpty,
			"valid":                 s.Result.Report.Valid,
		},
	}
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for expected transformation
// output. Assertion failures inside the scenario also fail the test.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, failure := range result.Failures {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	snapshot := Snapshot{ScenarioName: scenario.Name, Result: result}
	data, err := dem.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
