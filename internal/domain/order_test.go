package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestCartItemEffectiveQuantity(t *testing.T) {
	cases := []struct {
		name string
		item domain.CartItem
		want string
	}{
		{
			name: "absent quantity defaults to one",
			item: domain.CartItem{ProductID: "sku-1"},
			want: "1",
		},
		{
			name: "zero quantity defaults to one",
			item: domain.CartItem{ProductID: "sku-1", Quantity: decimal.Zero},
			want: "1",
		},
		{
			name: "explicit quantity preserved",
			item: domain.CartItem{ProductID: "sku-1", Quantity: decimal.NewFromInt(3)},
			want: "3",
		},
		{
			// Отрицательные и дробные количества не валидируются — см. errors.go.
			name: "negative quantity preserved",
			item: domain.CartItem{ProductID: "sku-1", Quantity: decimal.NewFromInt(-2)},
			want: "-2",
		},
		{
			name: "fractional quantity preserved",
			item: domain.CartItem{ProductID: "sku-1", Quantity: decimal.RequireFromString("0.5")},
			want: "0.5",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.item.EffectiveQuantity()
			if got.String() != tc.want {
				t.Fatalf("expected quantity %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDistinctProductIDs(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: "b"},
		{ProductID: "a"},
		{ProductID: "b"},
		{ProductID: "c"},
		{ProductID: "a"},
	}

	got := domain.DistinctProductIDs(items)
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCartPayloadUnmarshal(t *testing.T) {
	var payload domain.CartPayload
	raw := `{"items":[{"productId":"a","quantity":2},{"productId":"b"}]}`
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	if len(payload.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(payload.Items))
	}
	if payload.Items[0].ProductID != "a" || payload.Items[0].Quantity.String() != "2" {
		t.Fatalf("unexpected first item: %+v", payload.Items[0])
	}
	if !payload.Items[1].Quantity.IsZero() {
		t.Fatalf("expected zero quantity for absent field, got %s", payload.Items[1].Quantity)
	}
}
