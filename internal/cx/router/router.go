// Package router wires the screening, classification, and flow layers into a
// single entry point. Every user message passes through the compliance gate,
// then the intent classifier, then at most one flow handler, and comes back
// as one response envelope.
package router

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zero-touch-cx/server/internal/audit"
	"github.com/zero-touch-cx/server/internal/cx/compliance"
	"github.com/zero-touch-cx/server/internal/cx/flows"
	"github.com/zero-touch-cx/server/internal/cx/intent"
	"github.com/zero-touch-cx/server/internal/cx/model"
	"github.com/zero-touch-cx/server/internal/cx/plan"
	logx "github.com/zero-touch-cx/server/pkg/logger"
	"github.com/zero-touch-cx/server/pkg/tracing"
)

// Confidence gates applied after classification.
const (
	ClarifyThreshold = 0.80
	HandoffThreshold = 0.50
)

// Config carries the router's collaborators. Audit may be nil.
type Config struct {
	Billing   *flows.BillingHandler
	Reporting *flows.ReportingHandler
	Upgrade   *flows.UpgradeHandler
	Audit     audit.Sink
}

// Router dispatches screened user messages to flow handlers.
type Router struct {
	cfg Config
}

// New builds a router from its collaborators.
func New(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// Respond runs the full pipeline for one user message and always returns a
// well-formed envelope. Downstream stages only ever see the sanitized text.
func (r *Router) Respond(ctx context.Context, text string) model.AgentResponse {
	ctx, span := tracing.Span(ctx, "router.respond")
	defer span.End()

	decision := compliance.Check(ctx, text)
	if !decision.Allow {
		return r.blocked(ctx, decision)
	}

	cls := intent.Classify(decision.SanitizedText)
	span.SetAttributes(
		attribute.String("intent", string(cls.Intent)),
		attribute.Float64("intent.confidence", cls.Confidence),
	)

	if cls.Confidence < ClarifyThreshold || cls.Intent == intent.Ambiguous || cls.Intent == intent.Other {
		return r.clarify(ctx, decision, cls)
	}

	customerID := intent.CustomerID(decision.SanitizedText)
	resp := r.dispatch(ctx, customerID, decision.SanitizedText, cls.Intent)

	if resp.HandoffRequired {
		r.record(ctx, audit.NewEvent(audit.KindHandoff, customerID, resp.HandoffReason))
	}
	if dec, ok := resp.Payload.(model.UpgradeDecision); ok && dec.TicketID != "" {
		r.record(ctx, audit.NewEvent(audit.KindUpgradeExecuted, customerID, dec.TicketID))
	}
	return resp
}

func (r *Router) dispatch(ctx context.Context, customerID, sanitized string, it intent.Intent) model.AgentResponse {
	switch it {
	case intent.ReportRequest:
		return r.cfg.Reporting.Generate(ctx, customerID, intent.Days(sanitized))
	case intent.BillingInquiry:
		return r.cfg.Billing.Summarize(ctx, customerID)
	case intent.PlanUpgrade:
		return r.cfg.Upgrade.Decide(ctx, customerID, plan.RequestedPlan(sanitized), sanitized)
	}
	// Unreachable after the confidence gate; answer safely anyway.
	return model.NewHandoff(
		"I could not route your request.",
		map[string]any{"kind": model.KindClarification, "detected_intent": string(it)},
		"Unroutable intent",
	)
}

// blocked converts a compliance denial into an envelope. Only secret-bearing
// messages escalate to a human; off-topic messages get a clarification.
func (r *Router) blocked(ctx context.Context, d compliance.Decision) model.AgentResponse {
	payload := map[string]any{
		"kind":       model.KindComplianceBlock,
		"reason":     d.Reason,
		"risk_score": d.RiskScore,
		"violations": d.Violations,
	}

	if d.RiskScore >= compliance.HandoffRiskThreshold {
		logx.Component("router").Warn().
			Float64("risk", d.RiskScore).
			Strs("violations", d.Violations).
			Msg("message blocked")
		r.record(ctx, audit.NewEvent(audit.KindComplianceBlock, "", d.Reason))
		return model.NewHandoff(
			"I can't help with that request. A specialist will follow up.",
			payload,
			"Sensitive data detected",
		)
	}

	summary := d.RequiredClarification
	if summary == "" {
		summary = "I can't help with that request."
	}
	return model.New(summary, payload)
}

// clarify handles low-confidence and out-of-scope classifications. Only very
// low confidence escalates to a human.
func (r *Router) clarify(ctx context.Context, d compliance.Decision, cls intent.Classification) model.AgentResponse {
	payload := map[string]any{
		"kind":             model.KindClarification,
		"detected_intent":  string(cls.Intent),
		"confidence":       cls.Confidence,
		"masked_user_text": d.SanitizedText,
	}
	summary := "Could you clarify? I can help with wire reports, billing questions, or plan upgrades."

	if cls.Confidence < HandoffThreshold {
		resp := model.NewHandoff(summary, payload, "Low confidence intent classification")
		r.record(ctx, audit.NewEvent(audit.KindHandoff, "", resp.HandoffReason))
		return resp
	}
	return model.New(summary, payload)
}

func (r *Router) record(ctx context.Context, ev audit.Event) {
	if r.cfg.Audit == nil {
		return
	}
	if err := r.cfg.Audit.Record(ctx, ev); err != nil {
		logx.Component("router").Error().Err(err).Str("kind", ev.Kind).Msg("audit record failed")
	}
}
