// Package source defines the content-source contract the pipeline collects
// documents from, plus a directory-backed implementation for corpora already
// exported to disk.
package source
