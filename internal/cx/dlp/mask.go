// Package dlp provides pattern-based PII redaction applied before any
// downstream logic sees raw user text.
package dlp

import "regexp"

const (
	EmailToken = "[EMAIL]"
	PhoneToken = "[PHONE]"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\b\+?\d[\d\- ]{8,}\d\b`)
)

// Result carries the redacted text and whether anything was replaced.
type Result struct {
	MaskedText string
	Masked     bool
}

// Mask replaces email addresses and phone-like numbers with fixed tokens.
// Email substitution runs before phone substitution. Pure function; empty or
// malformed input comes back unchanged.
func Mask(text string) Result {
	masked := emailRe.ReplaceAllString(text, EmailToken)
	masked = phoneRe.ReplaceAllString(masked, PhoneToken)
	return Result{MaskedText: masked, Masked: masked != text}
}
