// Пакет middleware — HTTP middleware панели CMS.
// auth.go — проверка сессии (cookie-based) и принудительный выход по 401.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/cms-admin/internal/api/errors"
	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/session"
	"github.com/bigkaa/cms-admin/internal/ui/auth"
)

// contextKey — тип для ключей контекста UI.
type contextKey string

const (
	// ContextKeyUISession — снимок сессии в контексте запроса.
	ContextKeyUISession contextKey = "ui_session"
)

// ExpiredRoute — страница входа с пояснением об истёкшей сессии.
const ExpiredRoute = session.LoginRoute + "?expired=1"

// UIAuth — middleware для проверки аутентификации администратора.
// Восстанавливает сессию из зашифрованных cookie и передаёт токен
// клиенту CMS API через контекст. Без сессии — redirect на /admin/login.
type UIAuth struct {
	sessionManager *auth.SessionManager
	sessions       *session.Manager
	logger         *slog.Logger
}

// NewUIAuth создаёт новый UIAuth middleware.
func NewUIAuth(
	sessionManager *auth.SessionManager,
	sessions *session.Manager,
	logger *slog.Logger,
) *UIAuth {
	return &UIAuth{
		sessionManager: sessionManager,
		sessions:       sessions,
		logger:         logger.With(slog.String("component", "ui_auth_middleware")),
	}
}

// Middleware возвращает HTTP middleware для проверки сессии.
// Применяется к маршрутам /admin/*, кроме /admin/login.
func (ua *UIAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Восстанавливаем сессию из cookie
			s := ua.sessions.Restore(ua.sessionManager.Store(w, r))

			// 2. Анонимный запрос — на страницу входа
			if !s.IsAuthenticated() {
				ua.logger.Debug("Запрос без сессии",
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				)
				RedirectToLogin(w, r, session.LoginRoute)
				return
			}

			// 3. Помещаем сессию и токен в контекст
			ctx := WithSession(r.Context(), s)
			ctx = cmsapi.WithToken(ctx, s.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Expire завершает сессию после отказа CMS API (401):
// очищает cookie и отправляет пользователя на страницу входа.
func (ua *UIAuth) Expire(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())
	ua.sessions.Logout(ua.sessionManager.Store(w, r))
	ua.logger.Info("Сессия завершена: CMS API отклонил токен",
		slog.String("username", s.Username()),
		slog.String("path", r.URL.Path),
	)
	RedirectToLogin(w, r, ExpiredRoute)
}

// RedirectToLogin перенаправляет на target. Запросам из скриптов
// (fetch с X-Requested-With) отвечает 401 с заголовком HX-Redirect,
// чтобы страница перешла сама.
func RedirectToLogin(w http.ResponseWriter, r *http.Request, target string) {
	if IsScripted(r) {
		w.Header().Set("HX-Redirect", target)
		apierrors.Unauthorized(w, "сессия отсутствует или истекла")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// IsScripted сообщает, что запрос отправлен скриптом страницы.
func IsScripted(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "fetch" || r.Header.Get("HX-Request") == "true"
}

// WithSession возвращает контекст со снимком сессии.
func WithSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, ContextKeyUISession, s)
}

// SessionFromContext извлекает снимок сессии из контекста запроса.
// ok=false, если запрос не прошёл через UIAuth middleware.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(ContextKeyUISession).(session.Session)
	return s, ok
}
