// Package dataset turns enriched documents into an instruct-tuning dataset.
// The generator pre-filters documents by length and quality score, runs
// several summarization passes over fresh copies at a ramping temperature so
// one document can yield several answers, post-filters runaway generations,
// and splits the resulting samples deterministically into train, validation,
// and test partitions.
package dataset
