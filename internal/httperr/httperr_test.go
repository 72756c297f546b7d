package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsBusiness_UnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("create booking: %w", ErrConflict("slot_unavailable"))
	if !IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable to be recognised")
	}
	if IsBusiness(err, "invalid_phone") {
		t.Fatalf("unexpected match for a different code")
	}
	if IsBusiness(errors.New("boom"), "slot_unavailable") {
		t.Fatalf("plain errors are not business errors")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrValidation("invalid_phone"), http.StatusBadRequest},
		{ErrBusiness("missing_field"), http.StatusBadRequest},
		{ErrConflict("slot_unavailable"), http.StatusConflict},
		{ErrNotFound("booking_not_found"), http.StatusNotFound},
		{ErrPolicy("not_owner"), http.StatusForbidden},
		{ErrPolicy("cancel_window_closed"), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			be, ok := AsBusiness(tt.err)
			if !ok {
				t.Fatalf("expected business error")
			}
			if got := StatusFor(be); got != tt.want {
				t.Fatalf("StatusFor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsExclusionConflict(t *testing.T) {
	if !IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})) {
		t.Fatalf("23P01 must be an exclusion conflict")
	}
	if !IsExclusionConflict(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("23505 must be treated as a conflict")
	}
	if IsExclusionConflict(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a slot conflict")
	}
	if IsExclusionConflict(errors.New("boom")) {
		t.Fatalf("plain error is not a conflict")
	}
}
