// utils/format.go - Display helpers for notifications and reports
package utils

import (
	"strings"
)

// Salutation derives the gender title used in notification mails.
func Salutation(gender, maritalStatus string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male", "m":
		return "Mr."
	case "female", "f":
		switch strings.ToLower(strings.TrimSpace(maritalStatus)) {
		case "married":
			return "Mrs."
		default:
			return "Ms."
		}
	default:
		return "Mr./Ms."
	}
}

// NormalizeTableName maps a service's db_table descriptor to a physical
// annexure table name.
func NormalizeTableName(dbTable string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(dbTable), "-", "_"))
}
