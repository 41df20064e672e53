// Пакет flash — одноразовые баннеры панели, переживающие redirect.
// Сообщение кладётся в cookie и удаляется при первом чтении.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// CookieName — имя cookie с баннером.
const CookieName = "cms_flash"

// Виды баннеров.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Message — баннер. Text — английский текст, он же ключ перевода.
type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Success сообщает, что баннер об успехе (исчезает сам).
func (m Message) Success() bool {
	return m.Kind == KindSuccess
}

// Set сохраняет баннер для следующего запроса.
func Set(w http.ResponseWriter, kind, text string) {
	data, err := json.Marshal(Message{Kind: kind, Text: text})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Success сохраняет баннер об успехе.
func Success(w http.ResponseWriter, text string) {
	Set(w, KindSuccess, text)
}

// Error сохраняет баннер об ошибке.
func Error(w http.ResponseWriter, text string) {
	Set(w, KindError, text)
}

// Pop читает и удаляет баннер. nil — баннера нет или cookie повреждён.
func Pop(w http.ResponseWriter, r *http.Request) *Message {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Path:   "/admin",
		MaxAge: -1,
	})

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil || m.Text == "" {
		return nil
	}
	return &m
}
