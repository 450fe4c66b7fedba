package services

import "strings"

// defaultCountryCode is prepended when an outbound number carries no country
// code. The store ships to a single country, so this is safe.
const defaultCountryCode = "966"

// NormalizePhone reduces a raw phone number to a canonical digits-only key:
// the trailing 9 digits. This aligns country-code-present and country-code-
// absent representations of the same subscriber number, e.g.
// "+966501234567", "0501234567" and "501234567" all normalize to "501234567".
//
// The key is deliberately lossy (two numbers in different countries can
// collide on their last 9 digits); acceptable for a single-country customer
// base.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 9 {
		digits = digits[len(digits)-9:]
	}
	return digits
}

// FormatForWhatsApp formats a customer-entered phone number as a WhatsApp
// destination ("whatsapp:+9665..."). Numbers without a country code are
// assumed to be local: a leading zero is replaced by the country code, a bare
// subscriber number gets it prepended.
func FormatForWhatsApp(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	p := b.String()

	if !strings.HasPrefix(p, "+") {
		switch {
		case strings.HasPrefix(p, "0"):
			p = "+" + defaultCountryCode + p[1:]
		case strings.HasPrefix(p, defaultCountryCode):
			p = "+" + p
		default:
			p = "+" + defaultCountryCode + p
		}
	}

	return "whatsapp:" + p
}
