package cvs

import "time"

// CVFile is the single stored CV of a user.
type CVFile struct {
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string
	UploadedAt       time.Time
}
