// Package normalize canonicalizes user-entered identity fields before
// they are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are stored and
// looked up in this form, which is what makes the unique index effective.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses interior whitespace in a display name.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
