package router

import (
	"fmt"
	"strings"

	"github.com/zero-touch-cx/server/internal/cx/model"
)

// Render flattens an envelope into the text shown to the end user. Structure
// varies by payload; the handoff note always comes last.
func Render(resp model.AgentResponse) string {
	var b strings.Builder
	b.WriteString(resp.Summary)

	switch p := resp.Payload.(type) {
	case model.ReportCard:
		renderReportCard(&b, p)
	case model.UpgradeDecision:
		renderUpgradeDecision(&b, p)
	case model.BillingSummary:
		renderBillingSummary(&b, p)
	}

	if resp.HandoffRequired {
		fmt.Fprintf(&b, "\n\nA human agent will take over: %s.", resp.HandoffReason)
	}
	return b.String()
}

func renderReportCard(b *strings.Builder, c model.ReportCard) {
	fmt.Fprintf(b, "\n\n%s (%s)", c.Title, c.DateRange)
	for _, k := range c.KPIs {
		fmt.Fprintf(b, "\n  %s: %v %s", k.Name, k.Value, k.Unit)
	}
	if c.ChartURI != "" {
		fmt.Fprintf(b, "\nChart: %s", c.ChartURI)
	}
	if len(c.NextBestActions) > 0 {
		b.WriteString("\nNext steps:")
		for _, a := range c.NextBestActions {
			fmt.Fprintf(b, "\n  - %s", a)
		}
	}
}

func renderUpgradeDecision(b *strings.Builder, d model.UpgradeDecision) {
	fmt.Fprintf(b, "\n\nPlan: %s -> %s ($%.0f/month)", d.CurrentPlan, d.RequestedPlan, d.SimulatedMonthlyPriceUSD)
	for _, r := range d.Reasons {
		fmt.Fprintf(b, "\n  - %s", r)
	}
	if d.TicketID != "" {
		fmt.Fprintf(b, "\nTicket: %s", d.TicketID)
	}
	for _, a := range d.NextBestActions {
		fmt.Fprintf(b, "\n  - %s", a)
	}
}

func renderBillingSummary(b *strings.Builder, s model.BillingSummary) {
	fmt.Fprintf(b, "\n\nBilling %s to %s", s.StartDate, s.EndDate)
	for _, e := range s.BillingHistory {
		fmt.Fprintf(b, "\n  %s  $%.2f  %s", e.Date, e.Amount, e.Description)
	}
	fmt.Fprintf(b, "\nTotal due: $%.2f", s.TotalAmountDue)
}
