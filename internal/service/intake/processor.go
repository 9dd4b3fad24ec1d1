package intake

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Причины отказа для метрик; совпадают с кодами ошибок наружного контракта.
const (
	reasonEmptyBody       = "EMPTY_BODY"
	reasonInvalidPayload  = "INVALID_PAYLOAD"
	reasonEmptyCart       = "EMPTY_CART"
	reasonProductNotFound = "PRODUCT_NOT_FOUND"

	collaboratorCatalog    = "catalog"
	collaboratorOrderStore = "order-store"
)

// Receipt — результат успешного приёма заказа. OrderID предназначен для
// логирования и наблюдаемости; наружный контракт его не возвращает.
type Receipt struct {
	OrderID string
	Total   decimal.Decimal
}

// Processor реализует конвейер приёма заказа: разбор, валидация, цены,
// сумма, запись. Конвейер линейный, без повторов и частичных коммитов.
type Processor struct {
	catalog domain.CatalogLookup
	store   domain.OrderStore
	logger  *log.Entry
	metrics *metrics.IntakeMetrics
}

// NewProcessor конструирует процессор с зависимостями.
func NewProcessor(catalog domain.CatalogLookup, store domain.OrderStore, logger *log.Entry, m *metrics.IntakeMetrics) *Processor {
	if logger == nil {
		logger = log.WithField("component", "intake")
	}
	if m == nil {
		m = metrics.NewIntakeMetrics()
	}
	return &Processor{
		catalog: catalog,
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// SubmitOrder принимает сырое тело запроса и проводит его через весь
// конвейер. Валидация обрывается на первой ошибке; каталог вызывается не
// раньше, чем корзина прошла структурные проверки; запись в хранилище
// выполняется ровно один раз и только при полностью валидной корзине.
func (p *Processor) SubmitOrder(ctx context.Context, raw []byte) (Receipt, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		p.metrics.RecordValidationFailure(reasonEmptyBody)
		return Receipt{}, domain.ErrEmptyBody
	}

	var payload domain.CartPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		p.metrics.RecordValidationFailure(reasonInvalidPayload)
		return Receipt{}, domain.ErrInvalidPayload
	}

	if len(payload.Items) == 0 {
		p.metrics.RecordValidationFailure(reasonEmptyCart)
		return Receipt{}, domain.ErrEmptyCart
	}

	products, err := p.catalog.GetPrices(ctx, domain.DistinctProductIDs(payload.Items))
	if err != nil {
		p.metrics.RecordDependencyError(collaboratorCatalog)
		p.logger.WithError(err).Error("catalog lookup failed")
		return Receipt{}, domain.WrapDependency("catalog lookup", err)
	}

	prices := make(map[string]decimal.Decimal, len(products))
	for _, product := range products {
		prices[product.ID] = product.Price
	}

	// Сумма накапливается в порядке позиций корзины; дубликаты productId
	// считаются независимо. Первый неизвестный товар обрывает обработку,
	// последующие позиции не проверяются.
	total := decimal.Zero
	for _, item := range payload.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			p.metrics.RecordValidationFailure(reasonProductNotFound)
			return Receipt{}, &domain.ProductNotFoundError{ProductID: item.ProductID}
		}
		total = total.Add(price.Mul(item.EffectiveQuantity()))
	}

	orderID, err := p.store.InsertOrder(ctx, total)
	if err != nil {
		p.metrics.RecordDependencyError(collaboratorOrderStore)
		p.logger.WithError(err).Error("order insert failed")
		return Receipt{}, domain.WrapDependency("insert order", err)
	}

	totalFloat, _ := total.Float64()
	p.metrics.RecordOrderCreated(totalFloat)
	p.logger.WithFields(log.Fields{
		"order_id": orderID,
		"total":    total.String(),
		"items":    len(payload.Items),
	}).Info("заказ принят")

	return Receipt{OrderID: orderID, Total: total}, nil
}

// ListProducts возвращает полный снимок каталога без какой-либо
// дополнительной обработки.
func (p *Processor) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := p.catalog.ListProducts(ctx)
	if err != nil {
		p.metrics.RecordDependencyError(collaboratorCatalog)
		p.logger.WithError(err).Error("catalog list failed")
		return nil, domain.WrapDependency("list products", err)
	}
	return products, nil
}
