package domain

// RawFile represents an uploaded file before extraction.
// It is the upload handler's input to the pipeline.
type RawFile struct {
	// Filename is the original name of the uploaded file.
	Filename string

	// Content is the raw bytes.
	Content []byte

	// DatasetID optionally assigns the document to a dataset.
	DatasetID string

	// TagIDs optionally tag the document.
	TagIDs []string
}
