package badger

// Key prefixes for different data types
const (
	documentPrefix = "docrec"
	datasetPrefix  = "dsrec"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id string) []byte {
	return []byte(documentPrefix + ":" + id)
}

// makeDatasetKey generates a key for a dataset by name.
func makeDatasetKey(name string) []byte {
	return []byte(datasetPrefix + ":" + name)
}
