// Package quality scores document content quality in two stages.
//
// The heuristic scorer is pure and synchronous: it flags documents that are
// mostly links by comparing the combined child-URL length against the content
// length, assigning a hard zero or near-zero score. It runs first as a cheap
// filter so the paid model-based scorer only sees documents the heuristic
// could not judge.
//
// The model-based scorer sends a fixed rubric prompt to a language model and
// parses a structured {"score": float} reply defensively. It is funneled
// through the enrich engine: bounded concurrency, paced requests, one retry
// pass for the failed subset.
package quality
