package tools

import (
	"testing"

	"github.com/zero-touch-cx/server/internal/cx/plan"
)

func TestEvalPlanEligibilityOptionalSuggestsUpgrade(t *testing.T) {
	out, err := evalPlanEligibility(&PlanEligibilityInput{
		CustomerID: "cust_001",
		Feature:    "Deposit Correction",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Result.Eligibility != plan.Optional {
		t.Fatalf("eligibility = %v, want OPTIONAL", out.Result.Eligibility)
	}
	if out.NextTier != "Silver" {
		t.Fatalf("next tier = %q, want Silver", out.NextTier)
	}
	if len(out.UpgradeBenefits) == 0 {
		t.Fatal("optional feature must still carry upgrade benefits")
	}
}

func TestEvalPlanEligibilityNotAvailableSuggestsUpgrade(t *testing.T) {
	out, err := evalPlanEligibility(&PlanEligibilityInput{
		CustomerID: "cust_001",
		Feature:    "Intraday Expanded Detail",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Result.Eligibility != plan.NotAvailable {
		t.Fatalf("eligibility = %v, want NOT_AVAILABLE", out.Result.Eligibility)
	}
	if out.NextTier != "Silver" || len(out.UpgradeBenefits) == 0 {
		t.Fatalf("missing suggestion: %+v", out)
	}
}

func TestEvalPlanEligibilityIncludedHasNoSuggestion(t *testing.T) {
	out, err := evalPlanEligibility(&PlanEligibilityInput{
		CustomerID: "cust_001",
		Feature:    "Reports",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Result.Eligibility != plan.Included {
		t.Fatalf("eligibility = %v, want INCLUDED", out.Result.Eligibility)
	}
	if out.NextTier != "" || len(out.UpgradeBenefits) != 0 {
		t.Fatalf("included feature must not pitch an upgrade: %+v", out)
	}
}

func TestEvalPlanEligibilityResolvesFeatureFromQuery(t *testing.T) {
	out, err := evalPlanEligibility(&PlanEligibilityInput{
		CustomerID: "cust_001",
		Query:      "can I see my intraday balance?",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Result.Feature != "Intraday Expanded Detail" {
		t.Fatalf("feature = %q", out.Result.Feature)
	}
}
