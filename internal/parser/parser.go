// Package parser reads detector error models in their textual convention:
//
//	error(0.1) D0 D1 L0
//	detector(1, 0) D2
//	logical_observable L0
//	shift_detectors(0, 0, 1) 4
//
// '#' starts a comment; blank lines are ignored. Parsing is collect-all:
// every malformed line is reported, and a model is returned only when the
// whole input is well-formed.
package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/qecdev/graphify/internal/dem"
)

// Parse parses DEM text into a model.
//
// On failure it returns a nil model and one error per offending line; the
// caller never sees a partially parsed model.
func Parse(data []byte) (*dem.Model, []error) {
	model := &dem.Model{}
	var errs []error

	for i, raw := range strings.Split(string(data), "\n") {
		lineNo := i + 1
		line := raw
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ev, err := parseInstruction(lineNo, line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		model.Append(ev)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return model, nil
}

// ParseString is a convenience wrapper over Parse for inline models.
func ParseString(s string) (*dem.Model, []error) {
	return Parse([]byte(s))
}

// ParseFile reads and parses a DEM file.
func ParseFile(path string) (*dem.Model, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read model file: %w", err)}
	}
	return Parse(data)
}

// parseInstruction parses a single trimmed, non-empty instruction line.
// The argument list may contain spaces ("detector(1, 0) D0"), so it is
// extracted before the targets are tokenized.
func parseInstruction(lineNo int, line string) (dem.Event, error) {
	name := line
	var args []float64
	var targetsPart string

	if open := strings.IndexByte(line, '('); open >= 0 {
		closeIdx := strings.IndexByte(line, ')')
		if closeIdx < open {
			return nil, errorf(lineNo, "unterminated argument list in %q", line)
		}
		name = line[:open]
		targetsPart = line[closeIdx+1:]

		var err error
		args, err = parseArgs(lineNo, name, line[open+1:closeIdx])
		if err != nil {
			return nil, err
		}
	} else if sp := strings.IndexByte(line, ' '); sp >= 0 {
		name = line[:sp]
		targetsPart = line[sp+1:]
	}
	targets := strings.Fields(targetsPart)

	switch name {
	case "error":
		return parseError(lineNo, args, targets)
	case "detector":
		return parseDetector(lineNo, args, targets)
	case "logical_observable":
		return parseObservable(lineNo, args, targets)
	case "shift_detectors":
		return parseShift(lineNo, args, targets)
	default:
		return nil, errorf(lineNo, "unknown instruction %q", name)
	}
}

// parseArgs parses a comma-separated parenthesized argument list.
func parseArgs(lineNo int, name, inner string) ([]float64, error) {
	if strings.TrimSpace(inner) == "" {
		return nil, errorf(lineNo, "empty argument list in %q", name)
	}

	var args []float64
	for _, part := range strings.Split(inner, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errorf(lineNo, "invalid argument %q in %q", strings.TrimSpace(part), name)
		}
		args = append(args, v)
	}
	return args, nil
}

func parseError(lineNo int, args []float64, targets []string) (dem.Event, error) {
	if len(args) != 1 {
		return nil, errorf(lineNo, "error takes exactly one probability argument, got %d", len(args))
	}
	p := args[0]
	if p <= 0 || p >= 1 {
		return nil, errorf(lineNo, "error probability must be in (0, 1), got %s", dem.FormatValue(p))
	}

	ev := dem.ErrorEvent{Probability: p}
	seen := make(map[int]bool)
	for _, t := range targets {
		switch {
		case strings.HasPrefix(t, "D"):
			id, err := parseID(lineNo, t)
			if err != nil {
				return nil, err
			}
			if seen[id] {
				return nil, errorf(lineNo, "duplicate detector target D%d", id)
			}
			seen[id] = true
			ev.Detectors = append(ev.Detectors, id)
		case strings.HasPrefix(t, "L"):
			id, err := parseID(lineNo, t)
			if err != nil {
				return nil, err
			}
			ev.Observables = append(ev.Observables, id)
		default:
			return nil, errorf(lineNo, "invalid error target %q (want D<id> or L<id>)", t)
		}
	}
	return ev, nil
}

func parseDetector(lineNo int, args []float64, targets []string) (dem.Event, error) {
	if len(targets) != 1 || !strings.HasPrefix(targets[0], "D") {
		return nil, errorf(lineNo, "detector takes exactly one D<id> target")
	}
	id, err := parseID(lineNo, targets[0])
	if err != nil {
		return nil, err
	}
	return dem.DetectorDecl{ID: id, Coords: args}, nil
}

func parseObservable(lineNo int, args []float64, targets []string) (dem.Event, error) {
	if len(args) != 0 {
		return nil, errorf(lineNo, "logical_observable takes no arguments")
	}
	if len(targets) != 1 || !strings.HasPrefix(targets[0], "L") {
		return nil, errorf(lineNo, "logical_observable takes exactly one L<id> target")
	}
	id, err := parseID(lineNo, targets[0])
	if err != nil {
		return nil, err
	}
	return dem.ObservableDecl{ID: id}, nil
}

func parseShift(lineNo int, args []float64, targets []string) (dem.Event, error) {
	if len(targets) != 1 {
		return nil, errorf(lineNo, "shift_detectors takes exactly one offset target")
	}
	offset, err := strconv.Atoi(targets[0])
	if err != nil || offset < 0 {
		return nil, errorf(lineNo, "invalid shift_detectors offset %q", targets[0])
	}
	return dem.DetectorShift{Coords: args, Offset: offset}, nil
}

// parseID parses the numeric part of a D<id> or L<id> target.
func parseID(lineNo int, target string) (int, error) {
	id, err := strconv.Atoi(target[1:])
	if err != nil || id < 0 {
		return 0, errorf(lineNo, "invalid target id %q", target)
	}
	return id, nil
}
