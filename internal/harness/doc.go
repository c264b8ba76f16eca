// Package harness provides a conformance testing framework for the
// hyper-edge decomposition engine.
//
// Scenarios are YAML files pairing an input model (inline text or a file
// path) with structural assertions: graphlike post-condition, error event
// and virtual detector counts, pass-through equality, verifier verdict,
// and log completeness. Each scenario runs with a fixed run id so its
// transformed model and transformation log can also be compared against a
// golden snapshot with goldie.
//
// The harness drives the real transformation (transform.GraphifyWith);
// nothing is mocked. Every scenario run constructs its own model, log and
// allocator, so scenarios are independent and may run in parallel.
package harness
