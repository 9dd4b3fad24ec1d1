package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogLookup описывает доступ к каталогу товаров.
type CatalogLookup interface {
	// GetPrices возвращает (id, price) только для известных товаров из
	// переданного набора. Неизвестные id молча опускаются: частичное
	// совпадение не является ошибкой.
	GetPrices(ctx context.Context, productIDs []string) ([]Product, error)
	// ListProducts возвращает полный снимок каталога. Пустой каталог —
	// пустой срез, не ошибка.
	ListProducts(ctx context.Context) ([]Product, error)
}

// OrderStore описывает хранилище финализированных заказов.
type OrderStore interface {
	// InsertOrder сохраняет новый заказ с указанной суммой. Идентификатор
	// и момент создания назначает само хранилище; идентификатор
	// возвращается вызывающему.
	InsertOrder(ctx context.Context, totalAmount decimal.Decimal) (string, error)
}
