package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка пустого или отсутствующего тела запроса.
	ErrEmptyBody = errors.New("request body is required")
	// Ошибка тела запроса, которое не разбирается как JSON-объект.
	ErrInvalidPayload = errors.New("request body is not a valid payload")
	// Ошибка корзины без единой позиции.
	ErrEmptyCart = errors.New("cart must contain at least one item")
	// ErrDependency — любая инфраструктурная ошибка коллаборатора (каталог,
	// хранилище заказов). Причина логируется, но не раскрывается клиенту.
	ErrDependency = errors.New("dependency failure")
)

// ProductNotFoundError возвращается, когда позиция корзины ссылается на
// товар, которого каталог не знает. Несёт первый проблемный productId.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found in catalog", e.ProductID)
}

// IsProductNotFound извлекает productId из ошибки, если это ошибка
// отсутствующего товара.
func IsProductNotFound(err error) (string, bool) {
	var notFound *ProductNotFoundError
	if errors.As(err, &notFound) {
		return notFound.ProductID, true
	}
	return "", false
}

// WrapDependency помечает инфраструктурную ошибку как ErrDependency,
// сохраняя причину для логирования через errors.Unwrap-цепочку.
func WrapDependency(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependency, op, cause)
}

// IsClientError проверяет, относится ли ошибка к ошибкам входных данных
// (все они транслируются в 400-е коды и не подлежат повтору).
func IsClientError(err error) bool {
	if errors.Is(err, ErrEmptyBody) || errors.Is(err, ErrInvalidPayload) || errors.Is(err, ErrEmptyCart) {
		return true
	}
	_, ok := IsProductNotFound(err)
	return ok
}
