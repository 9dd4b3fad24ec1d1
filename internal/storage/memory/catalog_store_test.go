package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func product(id string, price string) domain.Product {
	return domain.Product{ID: id, Price: decimal.RequireFromString(price)}
}

func TestCatalogStoreGetPrices_OmitsUnknown(t *testing.T) {
	store := memory.NewCatalogStore(product("a", "10"), product("b", "3.50"))

	got, err := store.GetPrices(context.Background(), []string{"a", "missing", "b"})
	if err != nil {
		t.Fatalf("get prices: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 known products, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected products: %+v", got)
	}
	if !got[1].Price.Equal(decimal.RequireFromString("3.50")) {
		t.Fatalf("expected price 3.50, got %s", got[1].Price)
	}
}

func TestCatalogStoreListProducts_EmptyCatalog(t *testing.T) {
	store := memory.NewCatalogStore()

	got, err := store.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d products", len(got))
	}
}

func TestCatalogStoreListProducts_SortedByID(t *testing.T) {
	store := memory.NewCatalogStore(product("c", "1"), product("a", "2"), product("b", "3"))
	store.Put(product("d", "4"))

	got, err := store.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}

	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %d products, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected order %v, got %+v", want, got)
		}
	}
}
