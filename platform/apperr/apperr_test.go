package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("lead not found"), http.StatusNotFound},
		{Validation("full name is required"), http.StatusBadRequest},
		{BadRequest("invalid id"), http.StatusBadRequest},
		{Conflict("lead already converted"), http.StatusConflict},
		{Forbidden("forbidden"), http.StatusForbidden},
		{Unauthorized("unauthorized"), http.StatusUnauthorized},
		{Internal("boom"), http.StatusInternalServerError},
		{New(KindUnknown, "?"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestGetKindFollowsWrapChain(t *testing.T) {
	base := NotFound("departure not found")
	wrapped := fmt.Errorf("convert lead: %w", base)

	if GetKind(wrapped) != KindNotFound {
		t.Fatalf("expected not_found through wrap, got %s", GetKind(wrapped))
	}
	if !Is(wrapped, KindNotFound) {
		t.Fatal("expected Is to match wrapped kind")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected unknown kind for untyped error")
	}
}

func TestErrorMessageIncludesOpAndCause(t *testing.T) {
	err := Wrap(KindInternal, "insert booking", errors.New("connection reset")).WithOp("ConvertLead")
	want := "ConvertLead: insert booking: connection reset"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
