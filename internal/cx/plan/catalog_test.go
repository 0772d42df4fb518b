package plan

import "testing"

func TestCatalogInvariants(t *testing.T) {
	for tier, f := range Catalog {
		for feat := range f.Optional {
			if _, dup := f.Included[feat]; dup {
				t.Errorf("%s: %q is both included and optional", tier, feat)
			}
		}
	}
	top := Hierarchy[len(Hierarchy)-1]
	if len(Catalog[top].Optional) != 0 {
		t.Errorf("top tier %s must have no optional features", top)
	}
}

func TestNext(t *testing.T) {
	if n, ok := Next(Bronze); !ok || n != Silver {
		t.Fatalf("Next(Bronze) = %v, %v", n, ok)
	}
	if n, ok := Next(Silver); !ok || n != Gold {
		t.Fatalf("Next(Silver) = %v, %v", n, ok)
	}
	if _, ok := Next(Gold); ok {
		t.Fatal("Gold has no next tier")
	}
}

func TestLookupCustomer(t *testing.T) {
	if id, ok := LookupCustomer("please check usr-astrozen for me"); !ok || id != "USR-AstroZen" {
		t.Fatalf("got %q, %v", id, ok)
	}
	if _, ok := LookupCustomer("nobody here"); ok {
		t.Fatal("expected no match")
	}
}

func TestRequestedPlan(t *testing.T) {
	cases := []struct {
		text string
		want Tier
	}{
		{"Upgrade me to Pro", Gold},
		{"move me to silver please", Silver},
		{"switch to the basic plan", Bronze},
		{"I want the max plan", Gold},
		{"upgrade me", Gold},
	}
	for _, tc := range cases {
		if got := RequestedPlan(tc.text); got != tc.want {
			t.Fatalf("RequestedPlan(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestUpgradeBenefits(t *testing.T) {
	next, gained, ok := UpgradeBenefits(Bronze)
	if !ok || next != Silver {
		t.Fatalf("next = %v, ok = %v", next, ok)
	}
	have := allFeatures(Bronze)
	for _, f := range gained {
		if _, held := have[f]; held {
			t.Errorf("benefit %q is already held on Bronze", f)
		}
	}
	if len(gained) == 0 {
		t.Fatal("expected gained features moving Bronze to Silver")
	}
	if _, _, ok := UpgradeBenefits(Gold); ok {
		t.Fatal("Gold cannot upgrade")
	}
}

func TestExtractFeature(t *testing.T) {
	if f, ok := ExtractFeature("do I get intraday balance on my plan"); !ok || f != "Intraday Expanded Detail" {
		t.Fatalf("got %q, %v", f, ok)
	}
	if _, ok := ExtractFeature("unrelated request"); ok {
		t.Fatal("expected no feature")
	}
}

func TestPaymentOnFile(t *testing.T) {
	if HasPaymentOnFile("cust_002") {
		t.Fatal("cust_002 has no payment method in the demo data")
	}
	if !HasPaymentOnFile("cust_001") {
		t.Fatal("cust_001 should have a payment method")
	}
}
