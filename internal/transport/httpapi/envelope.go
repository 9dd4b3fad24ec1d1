package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Машинные коды ошибок наружного контракта.
const (
	codeEmptyBody        = "EMPTY_BODY"
	codeInvalidPayload   = "INVALID_PAYLOAD"
	codeEmptyCart        = "EMPTY_CART"
	codeProductNotFound  = "PRODUCT_NOT_FOUND"
	codeDBError          = "DB_ERROR"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeNotFound         = "NOT_FOUND"
)

// errorEnvelope — тело ответа об ошибке. ProductID заполняется только для
// PRODUCT_NOT_FOUND.
type errorEnvelope struct {
	Error     string `json:"error"`
	ProductID string `json:"productId,omitempty"`
}

// orderCreatedEnvelope — тело успешного ответа на создание заказа.
// Total сериализуется как число, а не строка.
type orderCreatedEnvelope struct {
	Status string      `json:"status"`
	Total  json.Number `json:"total"`
}

// productEnvelope — представление товара в листинге.
type productEnvelope struct {
	ID    string      `json:"id"`
	Price json.Number `json:"price"`
}

// OrderCreatedBody собирает тело успешного ответа 201.
func OrderCreatedBody(total decimal.Decimal) any {
	return orderCreatedEnvelope{Status: "ok", Total: json.Number(total.String())}
}

// ProductsBody собирает тело листинга каталога.
func ProductsBody(products []domain.Product) any {
	result := make([]productEnvelope, 0, len(products))
	for _, product := range products {
		result = append(result, productEnvelope{
			ID:    product.ID,
			Price: json.Number(product.Price.String()),
		})
	}
	return result
}

// ErrorBody отображает ошибку конвейера в HTTP-статус и тело ответа.
// Ошибки входных данных дают 400 и конкретный код; любой сбой
// коллаборатора схлопывается в непрозрачный DB_ERROR без деталей.
func ErrorBody(err error) (int, any) {
	if productID, ok := domain.IsProductNotFound(err); ok {
		return http.StatusBadRequest, errorEnvelope{Error: codeProductNotFound, ProductID: productID}
	}
	switch {
	case errors.Is(err, domain.ErrEmptyBody):
		return http.StatusBadRequest, errorEnvelope{Error: codeEmptyBody}
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest, errorEnvelope{Error: codeInvalidPayload}
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, errorEnvelope{Error: codeEmptyCart}
	default:
		return http.StatusInternalServerError, errorEnvelope{Error: codeDBError}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(body)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"DB_ERROR"}`))
		return
	}
	_, _ = w.Write(payload)
}
