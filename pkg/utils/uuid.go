package utils

import "github.com/google/uuid"

// GenerateID returns a fresh v4 UUID string.
func GenerateID() string {
	return uuid.New().String()
}

// IsUUID checks if the string is a valid UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsUUIDv4 checks that the string is a well-formed version-4 UUID.
// Confirmation tokens are always v4, anything else is rejected outright.
func IsUUIDv4(s string) bool {
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Version() == 4
}
