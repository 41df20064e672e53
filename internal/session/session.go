// Пакет session — жизненный цикл сессии администратора: вход, выход,
// восстановление из долговременного хранилища.
//
// Сессия хранится под двумя фиксированными ключами: token и user
// (JSON {username, email}). Токен не проверяется на стороне клиента:
// наличие токена означает аутентифицированную сессию до первого отказа API.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// Ключи долговременного хранилища сессии.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Маршруты, на которые переходит интерфейс после входа и выхода.
const (
	HomeRoute  = "/admin/"
	LoginRoute = "/admin/login"
)

// LoginFailedMessage — сообщение, если сервер не объяснил отказ.
const LoginFailedMessage = "Login failed"

// Store — долговременное хранилище пар ключ/значение.
type Store interface {
	// Get возвращает значение и признак его наличия.
	Get(key string) (string, bool)
	// Set сохраняет значение.
	Set(key, value string) error
	// Delete удаляет ключ; отсутствие ключа не ошибка.
	Delete(key string) error
}

// User — текущий пользователь.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session — снимок сессии. Нулевое значение — анонимная сессия.
type Session struct {
	Token string
	User  *User
}

// IsAuthenticated истинно, если токен присутствует.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Username возвращает имя пользователя или пустую строку.
func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// AuthError — отказ во входе.
type AuthError struct {
	// Message — сообщение сервера или LoginFailedMessage
	Message string
	// Fallback — сервер сообщения не прислал
	Fallback bool
	// Err — исходная ошибка
	Err error
}

// Error реализует интерфейс error.
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap возвращает исходную ошибку.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Authenticator — сервер аутентификации (CMS API).
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
}

// Manager — менеджер сессий. Единственный, кто пишет в Store.
type Manager struct {
	auth   Authenticator
	logger *slog.Logger
}

// NewManager создаёт менеджер сессий.
func NewManager(auth Authenticator, logger *slog.Logger) *Manager {
	return &Manager{
		auth:   auth,
		logger: logger.With(slog.String("component", "session")),
	}
}

// Login отправляет учётные данные и при успехе сохраняет token и user.
// При отказе возвращает *AuthError и не меняет хранилище.
func (m *Manager) Login(ctx context.Context, store Store, username, password string) (Session, error) {
	resp, err := m.auth.Login(ctx, username, password)
	if err != nil {
		msg := cmsapi.MessageOr(err, LoginFailedMessage)
		m.logger.Info("Вход отклонён",
			slog.String("username", username),
			slog.String("reason", err.Error()),
		)
		return Session{}, &AuthError{Message: msg, Fallback: msg == LoginFailedMessage, Err: err}
	}
	if resp.Token == "" {
		return Session{}, &AuthError{Message: LoginFailedMessage, Fallback: true, Err: errors.New("ответ без токена")}
	}

	user := &User{Username: resp.Username, Email: resp.Email}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return Session{}, fmt.Errorf("сериализация пользователя: %w", err)
	}

	if err := store.Set(KeyToken, resp.Token); err != nil {
		return Session{}, fmt.Errorf("сохранение токена: %w", err)
	}
	if err := store.Set(KeyUser, string(userJSON)); err != nil {
		_ = store.Delete(KeyToken)
		return Session{}, fmt.Errorf("сохранение пользователя: %w", err)
	}

	m.logger.Info("Вход выполнен", slog.String("username", user.Username))
	return Session{Token: resp.Token, User: user}, nil
}

// Logout удаляет token и user. Всегда завершается успешно и идемпотентен;
// ошибки хранилища только журналируются.
func (m *Manager) Logout(store Store) {
	for _, key := range []string{KeyToken, KeyUser} {
		if err := store.Delete(key); err != nil {
			m.logger.Warn("Ошибка удаления ключа сессии",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Restore читает сессию из хранилища. Сессия восстанавливается, только
// если присутствуют оба ключа и пользователь разбирается; иначе
// возвращается анонимная сессия без сообщения об ошибке.
func (m *Manager) Restore(store Store) Session {
	return Restore(store)
}

// Restore — то же, что Manager.Restore, без менеджера.
func Restore(store Store) Session {
	token, ok := store.Get(KeyToken)
	if !ok || token == "" {
		return Session{}
	}
	raw, ok := store.Get(KeyUser)
	if !ok || raw == "" {
		return Session{}
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return Session{}
	}
	return Session{Token: token, User: &user}
}
