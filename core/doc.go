// Package core defines the domain value types for instructgen: documents
// collected from a content source or discovered by crawling, and the
// instruction datasets built from their generated summaries.
//
// Documents are value types with structural copy semantics. Enrichment
// policies mutate a document in place (filling its quality score or summary)
// and return the same logical document; the dataset generator clones the
// working set before each augmentation pass so passes never interfere.
//
// Document identity is the ID field alone. Two documents with equal IDs are
// the same document regardless of their other fields, which is what makes
// deduplicating the union of original and crawled documents possible.
package core
