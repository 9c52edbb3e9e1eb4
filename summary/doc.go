// Package summary generates document and chunk summaries with a language
// model, funneled through the enrich engine for bounded concurrency, paced
// requests, and one retry pass over the failed subset.
//
// Three policies live here:
//
//   - Summarizer: a bounded-length markdown TL;DR per document, with an
//     adjustable generation temperature used by the dataset generator's
//     augmentation loop.
//   - ContextualSummarizer: a short situating blurb per text chunk, produced
//     from the chunk plus a truncated window of the whole document, prepended
//     to the chunk to improve retrieval.
//   - SimpleSummarizer: one whole-document summary prepended to every chunk,
//     a cheaper alternative to the contextual variant.
package summary
