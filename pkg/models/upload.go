package models

import "time"

// UploadReceipt acknowledges an uploaded data file. Content is not parsed.
type UploadReceipt struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Extension  string    `json:"extension"`
	SizeBytes  int64     `json:"size_bytes"`
	ReceivedAt time.Time `json:"received_at"`
	Message    string    `json:"message"`
}
