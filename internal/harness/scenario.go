package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultRunID is the run id used when a scenario does not fix one.
// A stable default keeps golden snapshots deterministic.
const DefaultRunID = "test-run-default"

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the DEM model text to transform.
	// Exactly one of Input and InputFile must be set.
	Input string `yaml:"input,omitempty"`

	// InputFile is a path to a DEM file, relative to the scenario file.
	InputFile string `yaml:"input_file,omitempty"`

	// RunID is an optional fixed run id for deterministic golden
	// comparison. Defaults to DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Assertions validate the transformed model and the log.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one structural property of a scenario run.
type Assertion struct {
	// Type specifies the assertion type:
	//   - "graphlike": every error event in the output has ≤2 detectors
	//   - "error_count": the output has exactly Count error events
	//   - "virtual_count": exactly Count virtual detectors were introduced
	//   - "pass_through": the output model equals the input model
	//   - "valid": the verifier's Valid field equals Expect
	//   - "log_counts": detected/decomposed/failed entry counts match
	Type string `yaml:"type"`

	// Count is the expected count (error_count, virtual_count).
	Count int `yaml:"count,omitempty"`

	// Expect is the expected verdict (valid).
	Expect bool `yaml:"expect,omitempty"`

	// Detected, Decomposed and Failed are the expected log entry counts
	// (log_counts).
	Detected   int `yaml:"detected,omitempty"`
	Decomposed int `yaml:"decomposed,omitempty"`
	Failed     int `yaml:"failed,omitempty"`
}

// Assertion type constants.
const (
	AssertGraphlike    = "graphlike"
	AssertErrorCount   = "error_count"
	AssertVirtualCount = "virtual_count"
	AssertPassThrough  = "pass_through"
	AssertValid        = "valid"
	AssertLogCounts    = "log_counts"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Input == "" && s.InputFile == "" {
		return fmt.Errorf("one of input or input_file is required")
	}
	if s.Input != "" && s.InputFile != "" {
		return fmt.Errorf("input and input_file are mutually exclusive")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertGraphlike, AssertPassThrough, AssertValid:
		// No extra fields required.
	case AssertErrorCount, AssertVirtualCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertLogCounts:
		if a.Detected < 0 || a.Decomposed < 0 || a.Failed < 0 {
			return fmt.Errorf("assertions[%d]: log counts must be non-negative", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
