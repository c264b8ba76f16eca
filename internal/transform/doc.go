// Package transform decomposes hyper-edges into graphlike chains.
//
// A hyper-edge is an error event touching three or more detectors.
// Matching decoders require a graphlike model, where every error event
// touches at most two. The transformation walks the model once, in order,
// replacing each hyper-edge with a chain of two-detector edges threaded
// through freshly allocated virtual detectors, and returns the rewritten
// model together with a typed, append-only log of every decision.
//
// The transformation is pure: it never mutates its input, holds no global
// state, and independent calls may run concurrently. The allocator and log
// are owned by one Graphify invocation and discarded with it.
package transform
