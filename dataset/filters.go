package dataset

import "github.com/poiesic/instructgen/core"

// Filter is a predicate over a document. Filters have no side effects, so
// composing them is equivalent to a logical AND.
type Filter func(*core.Document) bool

// ApplyFilters runs each filter over the full output of the previous one.
func ApplyFilters(documents []*core.Document, filters ...Filter) []*core.Document {
	kept := documents
	for _, filter := range filters {
		next := make([]*core.Document, 0, len(kept))
		for _, doc := range kept {
			if filter(doc) {
				next = append(next, doc)
			}
		}
		kept = next
	}
	return kept
}

// MinLengthFilter keeps documents whose content is at least min characters.
func MinLengthFilter(min int) Filter {
	return func(doc *core.Document) bool {
		return len(doc.Content) >= min
	}
}

// MinQualityFilter keeps unscored documents and documents scoring at least
// min.
func MinQualityFilter(min float64) Filter {
	return func(doc *core.Document) bool {
		return doc.ContentQualityScore == nil || *doc.ContentQualityScore >= min
	}
}

// SummaryLengthFilter keeps documents whose summary is present and shorter
// than max characters. Bounds runaway generations.
func SummaryLengthFilter(max int) Filter {
	return func(doc *core.Document) bool {
		return doc.Summary != nil && len(*doc.Summary) < max
	}
}
