package checkout

import "strings"

const (
	cardDigits = 16
	cvvDigits  = 4
)

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber keeps at most sixteen digits and groups them in fours,
// e.g. "4242424242424242" becomes "4242 4242 4242 4242".
func FormatCardNumber(s string) string {
	digits := digitsOnly(s)
	if len(digits) > cardDigits {
		digits = digits[:cardDigits]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry keeps the digits and inserts a slash once more than two digits
// are present, e.g. "1225" becomes "12/25".
func FormatExpiry(s string) string {
	digits := digitsOnly(s)
	if len(digits) <= 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits[:2] + "/" + digits[2:]
}

// FormatCVV keeps at most four digits.
func FormatCVV(s string) string {
	digits := digitsOnly(s)
	if len(digits) > cvvDigits {
		digits = digits[:cvvDigits]
	}
	return digits
}

// normalizePhone strips the separators people type between digit groups.
func normalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
