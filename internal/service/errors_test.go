package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFamilies(t *testing.T) {
	for _, err := range []error{
		ErrInvalidCartItem, ErrQuantityExceedsStock, ErrProductOutOfStock, ErrCartEmpty,
		ErrShippingAddressRequired, ErrPaymentMethodRequired, ErrPaymentMethodInvalid,
		ErrOrderStatusInvalid, ErrInvalidProduct, ErrGuestTokenRequired, ErrUserStatusInvalid,
	} {
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%v should belong to ErrValidation", err)
		}
		if errors.Is(err, ErrNotFound) {
			t.Fatalf("%v should not belong to ErrNotFound", err)
		}
	}
	for _, err := range []error{ErrCartNotFound, ErrProductNotFound, ErrOrderNotFound, ErrUserNotFound} {
		if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
			t.Fatalf("%v should belong to ErrNotFound only", err)
		}
	}

	wrapped := fmt.Errorf("submit: %w", ErrCartEmpty)
	if !errors.Is(wrapped, ErrCartEmpty) || errors.Is(wrapped, ErrShippingAddressRequired) {
		t.Fatalf("specific errors must stay distinguishable inside a family")
	}
}
