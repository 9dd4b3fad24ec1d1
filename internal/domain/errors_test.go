package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestIsProductNotFound(t *testing.T) {
	err := &domain.ProductNotFoundError{ProductID: "sku-42"}

	id, ok := domain.IsProductNotFound(err)
	if !ok {
		t.Fatal("expected product-not-found error to be recognized")
	}
	if id != "sku-42" {
		t.Fatalf("expected productId sku-42, got %s", id)
	}

	wrapped := fmt.Errorf("submit order: %w", err)
	if _, ok := domain.IsProductNotFound(wrapped); !ok {
		t.Fatal("expected wrapped error to be recognized")
	}

	if _, ok := domain.IsProductNotFound(domain.ErrEmptyCart); ok {
		t.Fatal("unrelated error must not be recognized")
	}
}

func TestWrapDependency(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.WrapDependency("catalog lookup", cause)

	if !errors.Is(err, domain.ErrDependency) {
		t.Fatal("expected ErrDependency in the chain")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the original cause to stay in the chain for logging")
	}
	if domain.IsClientError(err) {
		t.Fatal("dependency failure is not a client error")
	}
}

func TestIsClientError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{domain.ErrEmptyBody, true},
		{domain.ErrInvalidPayload, true},
		{domain.ErrEmptyCart, true},
		{&domain.ProductNotFoundError{ProductID: "x"}, true},
		{domain.ErrDependency, false},
		{errors.New("boom"), false},
	}

	for _, tc := range cases {
		if got := domain.IsClientError(tc.err); got != tc.want {
			t.Errorf("IsClientError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
