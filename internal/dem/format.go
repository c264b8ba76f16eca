package dem

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders a probability or coordinate the way DEM files write
// them: the shortest decimal string that round-trips the float64.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Format renders the model in the DEM textual convention, one instruction
// per line, each line terminated by a newline.
func Format(m *Model) string {
	var b strings.Builder
	for _, ev := range m.Events {
		appendEvent(&b, ev)
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatEvent renders a single instruction without a trailing newline.
func FormatEvent(ev Event) string {
	var b strings.Builder
	appendEvent(&b, ev)
	return b.String()
}

func appendEvent(b *strings.Builder, ev Event) {
	switch e := ev.(type) {
	case ErrorEvent:
		b.WriteString("error(")
		b.WriteString(FormatValue(e.Probability))
		b.WriteByte(')')
		for _, d := range e.Detectors {
			fmt.Fprintf(b, " D%d", d)
		}
		for _, o := range e.Observables {
			fmt.Fprintf(b, " L%d", o)
		}
	case DetectorDecl:
		b.WriteString("detector")
		appendArgs(b, e.Coords)
		fmt.Fprintf(b, " D%d", e.ID)
	case ObservableDecl:
		fmt.Fprintf(b, "logical_observable L%d", e.ID)
	case DetectorShift:
		b.WriteString("shift_detectors")
		appendArgs(b, e.Coords)
		fmt.Fprintf(b, " %d", e.Offset)
	default:
		// Unreachable as long as the variant set above stays exhaustive.
		fmt.Fprintf(b, "# unknown event %T", ev)
	}
}

func appendArgs(b *strings.Builder, args []float64) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatValue(a))
	}
	b.WriteByte(')')
}
