package dlp

import (
	"strings"
	"testing"
)

func TestMaskEmail(t *testing.T) {
	got := Mask("reach me at jane.doe+cx@example.co.uk please")
	if !got.Masked {
		t.Fatal("expected Masked=true")
	}
	if strings.Contains(got.MaskedText, "@") {
		t.Fatalf("email survived masking: %q", got.MaskedText)
	}
	if !strings.Contains(got.MaskedText, EmailToken) {
		t.Fatalf("missing %s token: %q", EmailToken, got.MaskedText)
	}
}

func TestMaskPhone(t *testing.T) {
	cases := []string{
		"call me on +1 415-555-0171 today",
		"my number is 0412 345 678",
	}
	for _, in := range cases {
		got := Mask(in)
		if !got.Masked {
			t.Fatalf("Mask(%q): expected Masked=true", in)
		}
		if !strings.Contains(got.MaskedText, PhoneToken) {
			t.Fatalf("Mask(%q): missing %s token: %q", in, PhoneToken, got.MaskedText)
		}
	}
}

func TestMaskCleanText(t *testing.T) {
	in := "show me my wire status report for last 30 days cust_001"
	got := Mask(in)
	if got.Masked || got.MaskedText != in {
		t.Fatalf("clean text changed: %+v", got)
	}
}

func TestMaskEmptyInput(t *testing.T) {
	got := Mask("")
	if got.Masked || got.MaskedText != "" {
		t.Fatalf("empty input changed: %+v", got)
	}
}
