package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid expression", inner)

	if err.Error() != "invalid expression: parse failed" {
		t.Errorf("expected 'invalid expression: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty parentheses")

	wrapped := fmt.Errorf("failed to parse: %w", original)
	doubleWrapped := fmt.Errorf("storage error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty parentheses" {
		t.Errorf("expected 'empty parentheses', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}

func TestBackendErrors_Distinguishable(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")

	errs := []error{
		apperr.NewConnection("postgres", cause),
		apperr.NewWrite("mongo", cause),
		apperr.NewQuery("elasticsearch", "Read", cause),
	}

	for _, err := range errs {
		if !errors.Is(err, cause) {
			t.Errorf("expected %q to wrap cause", err)
		}
	}

	var ce *apperr.BackendConnectionError
	if !errors.As(fmt.Errorf("run: %w", errs[0]), &ce) {
		t.Fatal("errors.As should find BackendConnectionError")
	}
	if ce.Backend != "postgres" {
		t.Errorf("expected backend 'postgres', got %q", ce.Backend)
	}

	var we *apperr.BackendWriteError
	if errors.As(errs[2], &we) {
		t.Fatal("query error must not match BackendWriteError")
	}
}

func TestBackendWriteError_IncludesEngine(t *testing.T) {
	err := apperr.NewWrite("elasticsearch", fmt.Errorf("bulk item rejected"))

	if err.Error() != "elasticsearch write failed: bulk item rejected" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestUnsupportedFieldError(t *testing.T) {
	err := fmt.Errorf("read: %w", apperr.NewUnsupportedField("color"))

	var ue *apperr.UnsupportedFieldError
	if !errors.As(err, &ue) {
		t.Fatal("errors.As should find UnsupportedFieldError")
	}
	if ue.Field != "color" {
		t.Errorf("expected field 'color', got %q", ue.Field)
	}
}

func TestWrapQuery(t *testing.T) {
	cause := fmt.Errorf("failed to count records: connection refused")

	var qe *apperr.BackendQueryError
	if !errors.As(apperr.WrapQuery("postgres", "Read", cause), &qe) {
		t.Fatal("plain error should become BackendQueryError")
	}
	if qe.Backend != "postgres" || qe.Op != "Read" {
		t.Errorf("unexpected query error %+v", qe)
	}

	field := apperr.NewUnsupportedField("color")
	if got := apperr.WrapQuery("postgres", "Read", field); got != error(field) {
		t.Errorf("expected UnsupportedFieldError unchanged, got %v", got)
	}

	conn := apperr.NewConnection("postgres", cause)
	if got := apperr.WrapQuery("postgres", "Read", conn); got != error(conn) {
		t.Errorf("expected BackendConnectionError unchanged, got %v", got)
	}

	if apperr.WrapQuery("postgres", "Read", nil) != nil {
		t.Error("expected nil for nil error")
	}
}
