package utils

import "strings"

const whatsAppBase = "https://wa.me/"

// WhatsAppNumber converts a stored Malaysian phone number into the digits-only
// international form wa.me expects: "+60123456789" and "0123456789" both
// become "60123456789".
func WhatsAppNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = "6" + digits
	}
	return digits
}

// WhatsAppLink builds the deep link for phone, or "" when there is no number.
func WhatsAppLink(phone string) string {
	number := WhatsAppNumber(phone)
	if number == "" {
		return ""
	}
	return whatsAppBase + number
}
