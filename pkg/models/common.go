package models

import (
	"github.com/google/uuid"
)

// NewUUID generates a new UUID string
func NewUUID() string {
	return uuid.New().String()
}

// NewShortID returns the first block of a UUID, used for human-facing run ids
func NewShortID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}
