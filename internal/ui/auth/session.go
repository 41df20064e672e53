// Пакет auth — хранение сессии администратора в зашифрованных cookie.
// Значения шифруются AES-256-GCM; каждый ключ сессии (token, user)
// лежит в отдельном cookie с путём /admin.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bigkaa/cms-admin/internal/session"
)

// CookiePrefix — префикс имён cookie сессии.
const CookiePrefix = "cms_"

// SessionCookieMaxAge — максимальный возраст cookie сессии (24 часа).
const SessionCookieMaxAge = 24 * 60 * 60

// cookiePath — путь cookie: сессия видна только панели.
const cookiePath = "/admin"

// SessionManager шифрует и дешифрует значения сессии через AES-256-GCM.
type SessionManager struct {
	gcm    cipher.AEAD
	secure bool
}

// NewSessionManager создаёт менеджер сессий.
// key — base64 32-байтового ключа либо произвольная строка, которая
// хешируется SHA-256. Пустой key — случайный ключ (сессии не переживают рестарт).
func NewSessionManager(key string, secure bool) (*SessionManager, error) {
	var keyBytes []byte

	if key == "" {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа сессии: %w", err)
		}
	} else {
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			keyBytes = sha256Key(key)
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &SessionManager{gcm: gcm, secure: secure}, nil
}

// Encrypt шифрует значение и возвращает base64-строку.
func (sm *SessionManager) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, sm.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}
	// nonce prepended к ciphertext
	ciphertext := sm.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt дешифрует base64-строку.
func (sm *SessionManager) Decrypt(encrypted string) (string, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	nonceSize := sm.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", errors.New("зашифрованные данные слишком короткие")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := sm.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка дешифрования сессии: %w", err)
	}
	return string(plaintext), nil
}

// Store возвращает хранилище сессии поверх cookie запроса r и ответа w.
func (sm *SessionManager) Store(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{sm: sm, w: w, r: r, pending: make(map[string]*string)}
}

// CookieStore — session.Store поверх зашифрованных cookie одного запроса.
// Значения, записанные в ходе запроса, видны последующим Get.
type CookieStore struct {
	sm      *SessionManager
	w       http.ResponseWriter
	r       *http.Request
	pending map[string]*string
}

var _ session.Store = (*CookieStore)(nil)

// CookieName возвращает имя cookie для ключа сессии.
func CookieName(key string) string {
	return CookiePrefix + key
}

// Get возвращает значение ключа. Повреждённый cookie считается отсутствующим.
func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	cookie, err := s.r.Cookie(CookieName(key))
	if err != nil || cookie.Value == "" {
		return "", false
	}
	value, err := s.sm.Decrypt(cookie.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set шифрует значение и устанавливает cookie.
func (s *CookieStore) Set(key, value string) error {
	encrypted, err := s.sm.Encrypt(value)
	if err != nil {
		return err
	}
	http.SetCookie(s.w, s.cookie(key, encrypted, SessionCookieMaxAge))
	s.pending[key] = &value
	return nil
}

// Delete удаляет cookie ключа.
func (s *CookieStore) Delete(key string) error {
	http.SetCookie(s.w, s.cookie(key, "", -1))
	s.pending[key] = nil
	return nil
}

func (s *CookieStore) cookie(key, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName(key),
		Value:    value,
		Path:     cookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.sm.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// sha256Key хеширует строковый ключ в 32 bytes через SHA-256.
func sha256Key(key string) []byte {
	h := sha256.Sum256([]byte(key))
	return h[:]
}
