package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// CatalogStore — простая in-memory реализация CatalogLookup для локальной
// разработки и тестов.
type CatalogStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewCatalogStore возвращает in-memory каталог, заполненный переданными товарами.
func NewCatalogStore(products ...domain.Product) *CatalogStore {
	store := &CatalogStore{products: make(map[string]domain.Product, len(products))}
	for _, product := range products {
		store.products[product.ID] = product
	}
	return store
}

// Put добавляет или заменяет товар в каталоге.
func (s *CatalogStore) Put(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
}

// GetPrices возвращает только известные товары из запрошенного набора;
// неизвестные id молча пропускаются.
func (s *CatalogStore) GetPrices(_ context.Context, productIDs []string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		if product, ok := s.products[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// ListProducts возвращает снимок каталога, отсортированный по id, чтобы не
// протекал недетерминированный порядок map.
func (s *CatalogStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
