// Package enrich provides a bounded-concurrency batch engine for applying a
// fallible, rate-limited external transformation to a collection of
// independent items.
//
// The engine runs two phases. Phase one submits every item to a worker pool
// of a fixed size (the admission gate) and paces each call with a short sleep
// before the worker slot is released, throttling the aggregate request rate.
// Items whose transformation fails are collected and retried once in phase
// two with a longer pacing interval, since most failures against hosted
// models are rate limits. Items that fail both phases are dropped from the
// enriched result but surfaced in the batch report, so callers can account
// for data loss without parsing logs.
//
// A failed transformation never aborts the batch: failure is a first-class
// per-item value absorbed at the engine boundary. Callers must treat fewer
// outputs than inputs as the normal degraded-success case. The enriched
// result is in task completion order, not input order.
package enrich
