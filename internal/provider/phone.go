package provider

import "strings"

// NormalizePhone puts a recipient number into E.164 form. Numbers without a
// country prefix are assumed Brazilian and get +55; numbers that already
// carry a leading + pass through unchanged.
func NormalizePhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}
	return "+55" + trimmed
}
