package cmsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel-ошибки клиента CMS API.
var (
	// ErrUnauthorized — API отклонило токен (401). Сессию нужно завершить.
	ErrUnauthorized = errors.New("CMS API: требуется повторная аутентификация")
	// ErrNotFound — ресурс не найден (404).
	ErrNotFound = errors.New("CMS API: ресурс не найден")
	// ErrContractViolation — ответ не соответствует OpenAPI-контракту.
	ErrContractViolation = errors.New("CMS API: ответ не соответствует контракту")
)

// maxPlainMessage — максимальная длина текстового тела ошибки,
// которое показывается пользователю как есть.
const maxPlainMessage = 300

// APIError — ошибочный ответ CMS API.
type APIError struct {
	// StatusCode — HTTP статус ответа
	StatusCode int
	// Message — сообщение сервера (message, error или текст тела); может быть пустым
	Message string
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("CMS API вернул статус %d", e.StatusCode)
	}
	return fmt.Sprintf("CMS API вернул статус %d: %s", e.StatusCode, e.Message)
}

// Is сопоставляет статус ответа с sentinel-ошибками.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}

// MessageOr возвращает сообщение сервера из err или fallback,
// если сервер сообщения не прислал (или это сетевая ошибка).
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// extractMessage извлекает текст ошибки из тела ответа.
// Порядок: поле message, поле error (строка или объект с message),
// JSON-строка, короткий текст без разметки.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		if msg := rawString(obj["message"]); msg != "" {
			return msg
		}
		if raw, ok := obj["error"]; ok {
			if msg := rawString(raw); msg != "" {
				return msg
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(raw, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
		}
		return ""
	}

	var str string
	if err := json.Unmarshal([]byte(trimmed), &str); err == nil {
		return str
	}

	if strings.HasPrefix(trimmed, "<") || utf8.RuneCountInString(trimmed) > maxPlainMessage {
		return ""
	}
	return trimmed
}

// rawString декодирует JSON-строку; для остальных типов возвращает "".
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
