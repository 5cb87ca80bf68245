package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		in     string
		region string
		want   string
	}{
		{"0812-3456-7890", "ID", "+6281234567890"},
		{"+62 812 3456 7890", "", "+6281234567890"},
		{"  ", "ID", ""},
		{"not a number", "ID", "not a number"},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.in, tc.region); got != tc.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePtrBlankIsNil(t *testing.T) {
	blank := "   "
	if NormalizePtr(&blank, "ID") != nil {
		t.Fatal("expected nil for blank input")
	}
	if NormalizePtr(nil, "ID") != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestWhatsAppLink(t *testing.T) {
	if got := WhatsAppLink("+6281234567890"); got != "https://wa.me/6281234567890" {
		t.Fatalf("unexpected link %q", got)
	}
}
