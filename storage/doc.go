// Package storage defines persistence contracts for documents and generated
// datasets, plus the JSON serialization shared by the backends. Implementations
// live in subpackages.
package storage
