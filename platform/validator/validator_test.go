package validator

import "testing"

type sample struct {
	FullName string `validate:"required,max=200"`
	Expiry   string `validate:"omitempty,isodate"`
}

func TestStructReportsFieldErrors(t *testing.T) {
	val := New()

	err := val.Struct(sample{Expiry: "14-10-2026"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields := FieldErrors(err)
	if fields["fullName"] != "required" {
		t.Errorf("expected fullName=required, got %v", fields)
	}
	if fields["expiry"] != "isodate" {
		t.Errorf("expected expiry=isodate, got %v", fields)
	}
}

func TestStructAcceptsValidInput(t *testing.T) {
	if err := New().Struct(sample{FullName: "Siti Aminah", Expiry: "2027-03-01"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
