// Package pipeline wires the collection and enrichment stages together:
// documents are pulled from a content source, expanded through the link
// crawler, scored heuristically and then by the model scorer, and persisted.
// The dataset generator consumes the persisted corpus separately.
package pipeline
