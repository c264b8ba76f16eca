package dem

// EventKind identifies the instruction variant an Event represents.
type EventKind string

const (
	// KindError is a weighted flip event ("error(p) D0 D1 L0").
	KindError EventKind = "error"

	// KindDetector declares a detector, optionally with coordinates.
	KindDetector EventKind = "detector"

	// KindObservable declares a logical observable.
	KindObservable EventKind = "logical_observable"

	// KindShift is a coordinate-shift marker ("shift_detectors").
	KindShift EventKind = "shift_detectors"
)

// Event is implemented by every instruction variant in a model.
// The rewriter matches exhaustively on the concrete types; only
// ErrorEvent carries content the transformation inspects.
type Event interface {
	Kind() EventKind
}

// ErrorEvent is a Bernoulli flip event: with the given probability, all of
// its detectors and observables flip together, or none do.
//
// Detectors is ordered and contains no duplicates (the parser enforces
// this). Probability lies strictly inside (0, 1).
type ErrorEvent struct {
	Probability float64
	Detectors   []int
	Observables []int
}

// Kind implements Event.
func (ErrorEvent) Kind() EventKind { return KindError }

// IsGraphlike reports whether the event touches at most two detectors.
// A zero-detector event (a pure observable flip) is graphlike by definition.
func (e ErrorEvent) IsGraphlike() bool { return len(e.Detectors) <= 2 }

// DetectorDecl declares detector ID, optionally carrying coordinates.
type DetectorDecl struct {
	ID     int
	Coords []float64
}

// Kind implements Event.
func (DetectorDecl) Kind() EventKind { return KindDetector }

// ObservableDecl declares logical observable ID.
type ObservableDecl struct {
	ID int
}

// Kind implements Event.
func (ObservableDecl) Kind() EventKind { return KindObservable }

// DetectorShift is a coordinate-shift marker. The transformation treats it
// as opaque and passes it through in place; Offset is the amount downstream
// consumers add to subsequent detector indices.
type DetectorShift struct {
	Coords []float64
	Offset int
}

// Kind implements Event.
func (DetectorShift) Kind() EventKind { return KindShift }

// Model is an ordered sequence of events. Order is preserved by every
// operation in this repository: transformation replaces hyper-edges in
// place and copies everything else through unchanged.
type Model struct {
	Events []Event
}

// Append adds events to the end of the model.
func (m *Model) Append(events ...Event) {
	m.Events = append(m.Events, events...)
}

// IsEmpty reports whether the model contains no events.
func (m *Model) IsEmpty() bool { return len(m.Events) == 0 }

// MaxDetectorID returns the largest detector id a consumer of this model
// can observe, or -1 when the model references no detectors.
//
// The scan covers error targets and detector declarations. Because
// shift_detectors adds its offset to every subsequent detector index, the
// running shift total is added to ids that follow it; a virtual id must
// clear any id a shifted target can denote (invariant: freshly allocated
// ids are strictly greater than every id present in the input).
func (m *Model) MaxDetectorID() int {
	max := -1
	shift := 0
	for _, ev := range m.Events {
		switch e := ev.(type) {
		case ErrorEvent:
			for _, d := range e.Detectors {
				if d+shift > max {
					max = d + shift
				}
			}
		case DetectorDecl:
			if e.ID+shift > max {
				max = e.ID + shift
			}
		case DetectorShift:
			if e.Offset > 0 {
				shift += e.Offset
			}
		}
	}
	return max
}

// ErrorEvents returns the error events of the model in order, paired with
// their instruction indices.
func (m *Model) ErrorEvents() []IndexedError {
	var out []IndexedError
	for i, ev := range m.Events {
		if e, ok := ev.(ErrorEvent); ok {
			out = append(out, IndexedError{Index: i, Event: e})
		}
	}
	return out
}

// IndexedError pairs an error event with its position in the model.
type IndexedError struct {
	Index int
	Event ErrorEvent
}
