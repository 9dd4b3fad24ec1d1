package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderStore создаёт PostgreSQL-реализацию OrderStore.
func NewOrderStore(store *Store) domain.OrderStore {
	return &orderRepository{db: store.DB()}
}

// InsertOrder сохраняет заказ с новым идентификатором; момент создания
// назначает база через NOW(). Таймаут отсчитывается от фонового контекста:
// начатая запись не отменяется вместе с запросом клиента.
func (r *orderRepository) InsertOrder(_ context.Context, totalAmount decimal.Decimal) (string, error) {
	writeCtx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	id := uuid.NewString()
	if _, err := r.db.ExecContext(writeCtx, `
		INSERT INTO orders (id, total_amount, created_at)
		VALUES ($1, $2, NOW())
	`, id, totalAmount); err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	return id, nil
}
