package repository

import "strings"

// IsDuplicateKey reports whether err is a uniqueness-constraint
// violation. Matched by message because the postgres and sqlite
// drivers surface different error types for the same condition.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
