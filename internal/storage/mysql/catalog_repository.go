package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const opTimeout = 5 * time.Second

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogLookup создаёт MySQL-реализацию CatalogLookup.
func NewCatalogLookup(store *Store) domain.CatalogLookup {
	return &catalogRepository{db: store.DB()}
}

// GetPrices делает один IN-запрос по всему набору id; неизвестные id просто
// отсутствуют в результате.
func (r *catalogRepository) GetPrices(ctx context.Context, productIDs []string) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return []domain.Product{}, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(productIDs)), ",")
	args := make([]any, len(productIDs))
	for i, id := range productIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(queryCtx,
		"SELECT id, price FROM products WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("select prices: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(queryCtx, "SELECT id, price FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Price); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}
