package lead

import "strings"

var phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// absent reports whether a field value carries no identifying
// information. Provider payloads use "N/A" as an explicit sentinel.
func absent(s string) bool {
	return s == "" || s == "N/A"
}

// NormalizeWebsite lowercases the URL and strips trailing slashes.
// The second return is false when the value is absent and must be
// excluded from matching.
func NormalizeWebsite(s string) (string, bool) {
	if absent(s) {
		return "", false
	}
	return strings.TrimRight(strings.ToLower(s), "/"), true
}

// NormalizePhone removes spaces, hyphens, and parentheses.
func NormalizePhone(s string) (string, bool) {
	if absent(s) {
		return "", false
	}
	return phoneStripper.Replace(s), true
}

// NormalizeName lowercases the business name.
func NormalizeName(s string) (string, bool) {
	if absent(s) {
		return "", false
	}
	return strings.ToLower(s), true
}
