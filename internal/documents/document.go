// Package documents implements the client document domain for Consilium.
// It provides types, data access, and business logic for document upload,
// registration, text capture, and blob storage integration.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document represents an uploaded client document with its metadata and
// blob storage reference. ExtractedText holds the text content supplied
// at upload time; analysis pipelines read it instead of re-parsing the blob.
type Document struct {
	ID            uuid.UUID `json:"id"`
	ClientRef     string    `json:"client_ref"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"content_type"`
	SizeBytes     int64     `json:"size_bytes"`
	PageCount     *int      `json:"page_count"`
	StorageKey    string    `json:"storage_key"`
	Status        string    `json:"status"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new
// client document. Data holds the raw file bytes. PageCount is optional
// and may be extracted by the caller via pdfcpu; nil values are stored
// as NULL.
type CreateCommand struct {
	Data          []byte
	Filename      string
	ContentType   string
	ClientRef     string
	ExtractedText string
	PageCount     *int
}
