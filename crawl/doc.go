// Package crawl expands a document's child URLs into new documents. Each
// distinct child URL is fetched once, converted into a document that records
// its parent's metadata, and returned alongside the originals. Fetch failures
// drop the URL; the crawl never retries and never recurses into the children's
// own links.
package crawl
