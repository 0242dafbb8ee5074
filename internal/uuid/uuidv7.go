// Package uuid generates the identifiers used for transactions, budgets and
// activity entries.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7. UUIDv7 values are time-ordered, so ids created
// later sort after ids created earlier.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the clock or entropy source fails
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates and normalizes a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
