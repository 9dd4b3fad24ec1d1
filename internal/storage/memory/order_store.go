package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OrderStore — in-memory реализация OrderStore для локальной разработки и
// тестов. Идентификатор и момент создания назначаются при вставке.
type OrderStore struct {
	mu     sync.RWMutex
	orders []domain.Order
}

// NewOrderStore возвращает пустое in-memory хранилище заказов.
func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

// InsertOrder сохраняет новый заказ и возвращает назначенный идентификатор.
func (s *OrderStore) InsertOrder(_ context.Context, totalAmount decimal.Decimal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := domain.Order{
		ID:          uuid.NewString(),
		TotalAmount: totalAmount,
		CreatedAt:   time.Now().UTC(),
	}
	s.orders = append(s.orders, order)
	return order.ID, nil
}

// Orders возвращает копию всех сохранённых заказов в порядке вставки.
func (s *OrderStore) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Order, len(s.orders))
	copy(result, s.orders)
	return result
}
