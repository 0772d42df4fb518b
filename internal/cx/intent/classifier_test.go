package intent

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Classification
	}{
		{
			name: "report vocabulary only",
			text: "Show me my wire status report for last 30 days cust_001",
			want: Classification{Intent: ReportRequest, Confidence: ConfidenceMatched},
		},
		{
			name: "upgrade vocabulary only",
			text: "Upgrade me to Pro cust_001",
			want: Classification{Intent: PlanUpgrade, Confidence: ConfidenceMatched},
		},
		{
			name: "both vocabularies is ambiguous",
			text: "I want a report about my plan upgrade",
			want: Classification{Intent: Ambiguous, Confidence: ConfidenceAmbiguous},
		},
		{
			name: "billing checked before other",
			text: "what is on my bill this month",
			want: Classification{Intent: BillingInquiry, Confidence: ConfidenceMatched},
		},
		{
			name: "neither vocabulary",
			text: "tell me a joke",
			want: Classification{Intent: Other, Confidence: ConfidenceOther},
		},
		{
			name: "case insensitive",
			text: "WIRE STATUS please",
			want: Classification{Intent: ReportRequest, Confidence: ConfidenceMatched},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.text)
			if got != tc.want {
				t.Fatalf("Classify(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestCustomerID(t *testing.T) {
	if got := CustomerID("please check cust_007 for me"); got != "cust_007" {
		t.Fatalf("got %q, want cust_007", got)
	}
	if got := CustomerID("no id here"); got != DefaultCustomerID {
		t.Fatalf("got %q, want default %q", got, DefaultCustomerID)
	}
	if got := CustomerID("CUST_042 in caps"); got != "cust_042" {
		t.Fatalf("got %q, want cust_042", got)
	}
}

func TestDays(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"last 7 days", 7},
		{"", DefaultDays},
		{"last 0 days", DefaultDays},
		{"show report for LAST 90 DAYS", 90},
		{"sometime recently", DefaultDays},
	}
	for _, tc := range cases {
		if got := Days(tc.text); got != tc.want {
			t.Fatalf("Days(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
