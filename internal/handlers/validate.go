package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for lead capture and policy fields.
const (
	maxNameLen    = 200
	maxEmailLen   = 320
	maxPhoneLen   = 40
	maxMessageLen = 5_000
	maxSourceLen  = 100

	maxPolicyTitleLen   = 300
	maxPolicyContentLen = 100_000
	maxDocumentBytes    = 1 << 20
)

// validateLead checks lead capture inputs and returns the first error found.
func validateLead(name, email, phone, message string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen || !strings.Contains(email, "@") {
		return "Email address is not valid."
	}
	if utf8.RuneCountInString(phone) > maxPhoneLen {
		return "Phone number is too long (max 40 characters)."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}

// validatePolicy checks policy upsert inputs and returns the first error found.
func validatePolicy(typ, title, content string) string {
	switch typ {
	case "returns", "shipping", "privacy", "terms":
	default:
		return "Unknown policy type."
	}
	if utf8.RuneCountInString(title) > maxPolicyTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(content) > maxPolicyContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}
