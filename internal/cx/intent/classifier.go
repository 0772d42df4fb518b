// Package intent implements deterministic keyword classification and entity
// extraction over sanitized user text. Confidence values are discrete
// constants tied to rule specificity so the router's confidence gate stays
// deterministic and testable.
package intent

import (
	"regexp"
	"strings"
)

// Intent labels the classified purpose of a user message.
type Intent string

const (
	ReportRequest  Intent = "report_request"
	BillingInquiry Intent = "billing_inquiry"
	PlanUpgrade    Intent = "plan_upgrade"
	Ambiguous      Intent = "ambiguous"
	Other          Intent = "other"
)

// Confidence constants per rule specificity.
const (
	ConfidenceMatched   = 0.85
	ConfidenceAmbiguous = 0.55
	ConfidenceOther     = 0.60
)

// Classification pairs an intent with its rule confidence.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

var (
	reportRe  = regexp.MustCompile(`\breport\b|status report|wire status`)
	upgradeRe = regexp.MustCompile(`\bupgrade\b|\bpro\b|plan\b`)
	billingRe = regexp.MustCompile(`\bbills?\b|\bbilling\b`)
)

// Classify scores the text against the report, upgrade, and billing
// vocabularies. Both report and upgrade vocabulary present is ambiguous; the
// billing check runs only before falling through to Other.
func Classify(text string) Classification {
	t := strings.ToLower(text)
	report := reportRe.MatchString(t)
	upgrade := upgradeRe.MatchString(t)

	switch {
	case report && upgrade:
		return Classification{Intent: Ambiguous, Confidence: ConfidenceAmbiguous}
	case report:
		return Classification{Intent: ReportRequest, Confidence: ConfidenceMatched}
	case upgrade:
		return Classification{Intent: PlanUpgrade, Confidence: ConfidenceMatched}
	case billingRe.MatchString(t):
		return Classification{Intent: BillingInquiry, Confidence: ConfidenceMatched}
	}
	return Classification{Intent: Other, Confidence: ConfidenceOther}
}
