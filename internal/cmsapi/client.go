// Пакет cmsapi — HTTP-клиент удалённого CMS API.
// Все запросы к /api/admin/* несут bearer-токен текущей сессии;
// токен берётся из TokenProvider (по умолчанию — из контекста запроса).
// Поддерживает TLS с кастомным CA (CMS_API_CA_CERT_PATH) и опциональную
// проверку ответов по OpenAPI-контракту.
package cmsapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// TokenProvider — функция, возвращающая bearer-токен для запроса.
// Пустая строка означает запрос без авторизации.
type TokenProvider func(ctx context.Context) (string, error)

// tokenContextKey — ключ токена сессии в контексте.
type tokenContextKey struct{}

// WithToken возвращает контекст, несущий токен сессии.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext извлекает токен сессии из контекста.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

// ContextTokenProvider — TokenProvider, читающий токен из контекста запроса.
func ContextTokenProvider(ctx context.Context) (string, error) {
	return TokenFromContext(ctx), nil
}

// StaticTokenProvider возвращает TokenProvider с фиксированным токеном.
func StaticTokenProvider(token string) TokenProvider {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// Options — параметры клиента.
type Options struct {
	// BaseURL — origin CMS API (http://localhost:8080)
	BaseURL string
	// Timeout — таймаут HTTP-запроса (0 — 30s)
	Timeout time.Duration
	// CACertPath — путь к CA-сертификату (пустая строка — системный пул)
	CACertPath string
	// TokenProvider — источник токена (nil — из контекста)
	TokenProvider TokenProvider
	// Contract — проверка ответов по контракту (nil — отключена)
	Contract *Contract
}

// Client — HTTP-клиент CMS API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider TokenProvider
	contract      *Contract
	logger        *slog.Logger
}

// New создаёт клиент CMS API.
func New(opts Options, logger *slog.Logger) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if _, err := url.Parse(base); err != nil || base == "" {
		return nil, fmt.Errorf("некорректный URL CMS API %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	if opts.CACertPath != "" {
		tlsConfig, err := buildTLSConfig(opts.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата CMS API: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат CMS API добавлен в пул доверия",
			slog.String("ca_cert", opts.CACertPath),
		)
	}

	tp := opts.TokenProvider
	if tp == nil {
		tp = ContextTokenProvider
	}

	return &Client{
		baseURL:       base,
		httpClient:    httpClient,
		tokenProvider: tp,
		contract:      opts.Contract,
		logger:        logger.With(slog.String("component", "cms_api_client")),
	}, nil
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("файл %s не содержит PEM-сертификатов", caCertPath)
	}

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// BaseURL возвращает origin CMS API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do выполняет JSON-запрос: body кодируется в JSON (nil — без тела),
// успешный ответ декодируется в out (nil — тело игнорируется).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		r, err := jsonReader(body)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		reader = r
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, reader, contentType, true, out)
}

// jsonReader кодирует значение в JSON для тела запроса.
func jsonReader(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("кодирование тела запроса: %w", err)
	}
	return bytes.NewReader(data), nil
}

// send — общий путь выполнения запроса: авторизация, метрики,
// разбор ошибок и проверка контракта.
func (c *Client) send(
	ctx context.Context,
	method, path string,
	query url.Values,
	body io.Reader,
	contentType string,
	authorize bool,
	out any,
) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("создание запроса %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if authorize {
		token, err := c.tokenProvider(ctx)
		if err != nil {
			return fmt.Errorf("получение токена для CMS API: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resource := resourceLabel(path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	apiRequestDuration.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())
	if err != nil {
		apiRequestsTotal.WithLabelValues(method, resource, "error").Inc()
		return fmt.Errorf("запрос %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	apiRequestsTotal.WithLabelValues(method, resource, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("чтение ответа %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(respBody)}
		c.logger.Debug("CMS API вернул ошибку",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message),
		)
		return apiErr
	}

	if c.contract != nil && isJSON(resp.Header.Get("Content-Type")) {
		if err := c.contract.Check(ctx, req, resp.StatusCode, resp.Header, respBody); err != nil {
			apiContractViolations.WithLabelValues(resource).Inc()
			if c.contract.Enforced() {
				return fmt.Errorf("%w: %s %s: %v", ErrContractViolation, method, path, err)
			}
			c.logger.Warn("Ответ CMS API не соответствует контракту",
				slog.String("method", method),
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("декодирование ответа %s %s: %w", method, path, err)
	}
	return nil
}

// isJSON сообщает, что Content-Type ответа — JSON.
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// Upload отправляет файл multipart-формой (поле file) на общий
// endpoint загрузки и возвращает URL сохранённого файла.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("формирование multipart: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("чтение загружаемого файла: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("формирование multipart: %w", err)
	}

	var resp model.UploadResponse
	if err := c.send(ctx, http.MethodPost, PathUpload, nil, &buf, mw.FormDataContentType(), true, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("ответ загрузки не содержит url")
	}
	return resp.URL, nil
}

// Ping проверяет доступность CMS API по health endpoint (без авторизации).
func (c *Client) Ping(ctx context.Context, healthPath string) error {
	return c.send(ctx, http.MethodGet, healthPath, nil, nil, "", false, nil)
}

// AssetURL превращает относительный путь файла, возвращённый API,
// в абсолютный URL на origin CMS API.
func (c *Client) AssetURL(path string) string {
	return AssetURL(c.baseURL, path)
}

// AssetURL добавляет origin к относительному пути.
// Абсолютные URL и пустые строки возвращаются без изменений.
func AssetURL(base, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + path
}
