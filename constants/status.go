package constants

// DocumentStatus is the canonical status for rows in documents.
type DocumentStatus string

// Stable values (store these exact strings in DB).
const (
	DocumentStatusProcessed DocumentStatus = "PROCESSED" // record built, possibly partial
	DocumentStatusFailed    DocumentStatus = "FAILED"    // input contract violated or I/O failure
)
