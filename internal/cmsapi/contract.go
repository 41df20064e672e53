// contract.go — проверка ответов CMS API по OpenAPI-описанию.
// Описание потребляемой части API встроено в бинарник (contract/cms-api.yaml).
// Проверяются только успешные JSON-ответы; ошибки API не валидируются.
package cmsapi

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed contract/cms-api.yaml
var contractDoc []byte

// Contract — валидатор ответов CMS API.
type Contract struct {
	router   routers.Router
	enforced bool
	logger   *slog.Logger
}

// LoadContract загружает встроенное описание API и строит маршрутизатор
// для baseURL. enforce=true превращает несоответствие в ошибку запроса.
func LoadContract(baseURL string, enforce bool, logger *slog.Logger) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractDoc)
	if err != nil {
		return nil, fmt.Errorf("загрузка OpenAPI-описания CMS API: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("валидация OpenAPI-описания CMS API: %w", err)
	}

	// Маршрутизатор сопоставляет запросы с servers, поэтому подставляем
	// фактический origin вместо значения из файла.
	doc.Servers = openapi3.Servers{&openapi3.Server{URL: baseURL}}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("построение маршрутизатора контракта: %w", err)
	}

	return &Contract{
		router:   router,
		enforced: enforce,
		logger:   logger.With(slog.String("component", "cms_api_contract")),
	}, nil
}

// Enforced сообщает, приводит ли несоответствие к ошибке запроса.
func (c *Contract) Enforced() bool {
	return c.enforced
}

// Check проверяет успешный ответ на запрос req.
// Запросы к путям, отсутствующим в описании, не проверяются.
func (c *Contract) Check(ctx context.Context, req *http.Request, status int, header http.Header, body []byte) error {
	route, pathParams, err := c.router.FindRoute(req)
	if err != nil {
		c.logger.Debug("Путь отсутствует в контракте",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)
		return nil
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			MultiError: true,
		},
	}
	input.SetBodyBytes(body)

	return openapi3filter.ValidateResponse(ctx, input)
}
