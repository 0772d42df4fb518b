// Package compliance screens inbound user text before any downstream
// processing. The gate masks PII, scans the raw text for disallowed secret
// material, and rejects requests outside the supported intent surface.
package compliance

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zero-touch-cx/server/internal/cx/dlp"
	"github.com/zero-touch-cx/server/internal/cx/intent"
	"github.com/zero-touch-cx/server/pkg/tracing"
)

// Risk scores reported by the gate. The router escalates to a human handoff
// at or above HandoffRiskThreshold.
const (
	RiskAllowed          = 0.10
	RiskOffTopic         = 0.70
	RiskSecrets          = 0.90
	HandoffRiskThreshold = 0.85
)

// Decision is the outcome of screening one message. SanitizedText is always
// populated and is the only form of the text downstream stages may see.
type Decision struct {
	Allow                 bool     `json:"allow"`
	Reason                string   `json:"reason"`
	SanitizedText         string   `json:"sanitized_text"`
	RiskScore             float64  `json:"risk_score"`
	Violations            []string `json:"violations,omitempty"`
	RequiredClarification string   `json:"required_clarification,omitempty"`
	PIIMasked             bool     `json:"pii_masked"`
}

// disallowedKeywords trip a violation when present in the raw text. These are
// requests to handle credentials or government identifiers, which this
// assistant must never do.
var disallowedKeywords = []string{
	"password",
	"credit card",
	"cvv",
	"otp",
	"social security",
	"ssn",
	"aadhar",
}

// secretPatterns catch identifier-shaped digit runs that the PII masker does
// not cover.
var secretPatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "SSN-like identifier"},
	{regexp.MustCompile(`\b\d{16}\b`), "Card-like 16-digit number"},
	{regexp.MustCompile(`\b\d{12}\b`), "Aadhaar-like 12-digit number"},
}

// hintVocabulary is the deliberately broad keyword map for the gate's topic
// pre-check. It is wider than the router's classifier on purpose: the gate
// only decides whether a message is on-topic at all, so ambiguous or vague
// but on-topic text still reaches the router's confidence gate.
var hintVocabulary = []struct {
	intent intent.Intent
	words  []string
}{
	{intent.PlanUpgrade, []string{"upgrade", "downgrade", "plan", "pro", "max", "starter", "basic"}},
	{intent.ReportRequest, []string{"report", "status", "usage", "wire", "events", "history"}},
	{intent.BillingInquiry, []string{"bill", "billing"}},
}

// allowedIntents is the supported intent surface. A hint outside this set is
// off-topic for the gate.
var allowedIntents = map[intent.Intent]struct{}{
	intent.ReportRequest:  {},
	intent.PlanUpgrade:    {},
	intent.BillingInquiry: {},
}

// inferIntentHint is a cheap, non-probabilistic topic hint. First vocabulary
// hit wins; no hit resolves to Other.
func inferIntentHint(text string) intent.Intent {
	t := strings.ToLower(text)
	for _, v := range hintVocabulary {
		for _, w := range v.words {
			if strings.Contains(t, w) {
				return v.intent
			}
		}
	}
	return intent.Other
}

// Check screens one message. Masking runs first so SanitizedText is usable
// on every path; the secret scan runs on the original text because masking
// must never hide a violation. The topic pre-check decides before the
// violations block: off-topic text stays at the lower risk score even when
// it carries secrets, and the decision still enumerates what was found.
func Check(ctx context.Context, text string) Decision {
	_, span := tracing.Span(ctx, "compliance.check")
	defer span.End()

	masked := dlp.Mask(text)
	raw := strings.ToLower(text)

	var violations []string
	for _, kw := range disallowedKeywords {
		if strings.Contains(raw, kw) {
			violations = append(violations, fmt.Sprintf("Disallowed keyword: %s", kw))
		}
	}
	for _, p := range secretPatterns {
		if p.re.MatchString(text) {
			violations = append(violations, p.label)
		}
	}

	hint := inferIntentHint(masked.MaskedText)
	if _, ok := allowedIntents[hint]; !ok {
		span.SetAttributes(
			attribute.Bool("compliance.allow", false),
			attribute.String("compliance.hint", string(hint)),
		)
		return Decision{
			Allow:                 false,
			Reason:                "Request is outside the supported scope",
			SanitizedText:         masked.MaskedText,
			RiskScore:             RiskOffTopic,
			Violations:            violations,
			RequiredClarification: "I can help with wire reports, billing questions, or plan upgrades. Could you rephrase your request?",
			PIIMasked:             masked.Masked,
		}
	}

	if len(violations) > 0 {
		span.SetAttributes(
			attribute.Bool("compliance.allow", false),
			attribute.Int("compliance.violations", len(violations)),
		)
		return Decision{
			Allow:         false,
			Reason:        "Message contains sensitive or disallowed content",
			SanitizedText: masked.MaskedText,
			RiskScore:     RiskSecrets,
			Violations:    violations,
			PIIMasked:     masked.Masked,
		}
	}

	span.SetAttributes(attribute.Bool("compliance.allow", true))
	return Decision{
		Allow:         true,
		Reason:        "ok",
		SanitizedText: masked.MaskedText,
		RiskScore:     RiskAllowed,
		PIIMasked:     masked.Masked,
	}
}
