package lambdafn

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/intake"
	"github.com/vladislavdragonenkov/storefront/internal/transport/httpapi"
)

// Adapter отображает события API Gateway на тот же контракт, что и
// HTTP-сервер: одинаковые маршруты, конверты и CORS-заголовки.
type Adapter struct {
	processor *intake.Processor
	logger    *log.Entry
}

// NewAdapter конструирует serverless-адаптер поверх процессора.
func NewAdapter(processor *intake.Processor, logger *log.Entry) *Adapter {
	if logger == nil {
		logger = log.WithField("component", "lambdafn")
	}
	return &Adapter{processor: processor, logger: logger}
}

// Handle — входная точка lambda. Маршрутизация по path+method повторяет
// HTTP-сервер; неизвестный маршрут отвечает 404.
func (a *Adapter) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod == http.MethodOptions {
		return respond(http.StatusNoContent, nil), nil
	}

	switch {
	case req.Path == "/health" && req.HTTPMethod == http.MethodGet:
		return respond(http.StatusOK, map[string]string{"status": "ok"}), nil

	case req.Path == "/products" && req.HTTPMethod == http.MethodGet:
		products, err := a.processor.ListProducts(ctx)
		if err != nil {
			status, body := httpapi.ErrorBody(err)
			return respond(status, body), nil
		}
		return respond(http.StatusOK, httpapi.ProductsBody(products)), nil

	case req.Path == "/orders" && req.HTTPMethod == http.MethodPost:
		raw, err := requestBody(req)
		if err != nil {
			a.logger.WithError(err).Warn("failed to decode request body")
			status, body := httpapi.ErrorBody(domain.ErrInvalidPayload)
			return respond(status, body), nil
		}
		receipt, err := a.processor.SubmitOrder(ctx, raw)
		if err != nil {
			status, body := httpapi.ErrorBody(err)
			return respond(status, body), nil
		}
		return respond(http.StatusCreated, httpapi.OrderCreatedBody(receipt.Total)), nil

	default:
		return respond(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"}), nil
	}
}

// requestBody возвращает сырое тело события с учётом base64-кодирования
// API Gateway.
func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	headers := httpapi.CORSHeaders()
	headers["Content-Type"] = "application/json"

	response := events.APIGatewayProxyResponse{StatusCode: status, Headers: headers}
	if body == nil {
		return response
	}

	payload, err := json.Marshal(body)
	if err != nil {
		response.StatusCode = http.StatusInternalServerError
		response.Body = `{"error":"DB_ERROR"}`
		return response
	}
	response.Body = string(payload)
	return response
}
