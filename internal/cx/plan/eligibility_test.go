package plan

import (
	"errors"
	"testing"
)

func TestFeatureEligibility(t *testing.T) {
	cases := []struct {
		name        string
		customerID  string
		feature     string
		want        Eligibility
		availableOn Tier
	}{
		{"included on plan", "cust_001", "Reports", Included, ""},
		{"optional on plan", "cust_001", "Deposit Correction", Optional, ""},
		{"not available on bronze", "cust_001", "Payments GBF", NotAvailable, Silver},
		{"included on gold", "cust_003", "Payments GBF", Included, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FeatureEligibility(tc.customerID, tc.feature)
			if err != nil {
				t.Fatal(err)
			}
			if got.Eligibility != tc.want {
				t.Fatalf("eligibility = %v, want %v", got.Eligibility, tc.want)
			}
			if got.AvailableOn != tc.availableOn {
				t.Fatalf("availableOn = %v, want %v", got.AvailableOn, tc.availableOn)
			}
		})
	}
}

func TestFeatureEligibilityErrors(t *testing.T) {
	if _, err := FeatureEligibility("cust_999", "Reports"); !errors.Is(err, ErrUnknownCustomer) {
		t.Fatalf("err = %v", err)
	}
	if _, err := FeatureEligibility("cust_001", "Quantum Ledger"); !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("err = %v", err)
	}
}

func TestReportAccessIncludedOnEveryTier(t *testing.T) {
	// Each catalog tier carries at least one included report feature, so the
	// gate only ever blocks unknown customers with the demo data.
	for id := range customers {
		got, err := ReportAccess(id)
		if err != nil {
			t.Fatalf("ReportAccess(%q): %v", id, err)
		}
		if got.Eligibility != Included {
			t.Fatalf("ReportAccess(%q) = %+v, want INCLUDED", id, got)
		}
	}
}

func TestStatementAccessIncludedOnEveryTier(t *testing.T) {
	for id := range customers {
		got, err := StatementAccess(id)
		if err != nil {
			t.Fatalf("StatementAccess(%q): %v", id, err)
		}
		if got.Eligibility != Included {
			t.Fatalf("StatementAccess(%q) = %+v, want INCLUDED", id, got)
		}
	}
}

func TestReportAccessUnknownCustomer(t *testing.T) {
	if _, err := ReportAccess("cust_999"); !errors.Is(err, ErrUnknownCustomer) {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckEligibilityFromQuery(t *testing.T) {
	got, err := CheckEligibility("can USR-StellarQ see intraday balance?")
	if err != nil {
		t.Fatal(err)
	}
	if got.CustomerID != "USR-StellarQ" || got.Feature != "Intraday Expanded Detail" {
		t.Fatalf("resolved %+v", got)
	}
	if got.Eligibility != NotAvailable || got.AvailableOn != Silver {
		t.Fatalf("eligibility %+v", got)
	}
}
