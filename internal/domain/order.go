package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem представляет одну позицию корзины из входящего запроса.
// Позиция эфемерна: она живёт только в рамках одного вызова и не сохраняется.
type CartItem struct {
	// ProductID — внешний идентификатор товара из каталога.
	ProductID string `json:"productId"`
	// Quantity — запрошенное количество. Нулевое или отсутствующее значение
	// трактуется как 1 (см. EffectiveQuantity). Отрицательные и дробные
	// значения намеренно не отклоняются: поведение унаследовано от
	// исходного контракта и зафиксировано тестами.
	Quantity decimal.Decimal `json:"quantity"`
}

// EffectiveQuantity возвращает количество с учётом дефолта:
// отсутствующее или нулевое количество означает одну единицу товара.
func (i CartItem) EffectiveQuantity() decimal.Decimal {
	if i.Quantity.IsZero() {
		return decimal.NewFromInt(1)
	}
	return i.Quantity
}

// CartPayload — разобранное тело запроса на создание заказа.
type CartPayload struct {
	Items []CartItem `json:"items"`
}

// DistinctProductIDs возвращает уникальные productId в порядке первого
// появления. Дубликаты схлопываются только для запроса к каталогу;
// при подсчёте суммы каждая позиция корзины учитывается независимо.
func DistinctProductIDs(items []CartItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Product — товар каталога с текущей ценой. Для этого сервиса каталог
// доступен только на чтение.
type Product struct {
	ID    string          `json:"id"`
	Price decimal.Decimal `json:"price"`
}

// Order агрегирует финализированный заказ. Идентификатор и момент создания
// назначаются хранилищем при вставке; после создания заказ не изменяется.
type Order struct {
	ID          string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}
