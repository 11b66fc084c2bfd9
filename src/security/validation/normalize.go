// backend/src/validation/normalize.go
package validation

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeField cleans one raw field value: control characters are stripped,
// Unicode is canonically composed (NFC) and the result is trimmed. The second
// return reports whether the full normalization was applied; when the input
// is not valid UTF-8 the trimmed-but-uncomposed value is returned with false
// instead of failing the row. Idempotent: normalizing an already-normalized
// value is a no-op.
func NormalizeField(s string) (string, bool) {
	if s == "" {
		return "", true
	}
	if !utf8.ValidString(s) {
		return strings.TrimSpace(s), false
	}
	cleaned := stripControlChars(s)
	cleaned = norm.NFC.String(cleaned)
	return strings.TrimSpace(cleaned), true
}

// stripControlChars drops the C0/C1 control ranges while keeping TAB, LF and
// CR, preserving any valid multi-byte sequence untouched.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r <= 0x08:
			return -1
		case r == 0x0B || r == 0x0C:
			return -1
		case r >= 0x0E && r <= 0x1F:
			return -1
		case r >= 0x7F && r <= 0x9F:
			return -1
		}
		return r
	}, s)
}

// ParseAmount coerces a raw numeric field to a float, accepting both the dot
// and the comma as decimal separator. Empty or non-numeric values coerce to
// zero; the second return is false when that fallback was taken.
func ParseAmount(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.Trim(cleaned, "\"")
	if cleaned == "" {
		return 0, false
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeDate coerces a raw date field to YYYY-MM-DD. ISO dates pass
// through unchanged; D/M/YYYY and DD/MM/YYYY are rewritten with zero padding.
// An absent date substitutes the current date, reported by the false return.
func NormalizeDate(s string) (string, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return time.Now().Format("2006-01-02"), false
	}
	if !strings.Contains(cleaned, "/") {
		return cleaned, true
	}
	parts := strings.Split(cleaned, "/")
	if len(parts) != 3 {
		return time.Now().Format("2006-01-02"), false
	}
	day, month, year := parts[0], parts[1], parts[2]
	return year + "-" + padDatePart(month) + "-" + padDatePart(day), true
}

func padDatePart(p string) string {
	if len(p) == 1 {
		return "0" + p
	}
	return p
}
