// auth.go — вход и выход администратора. Учётные данные отправляются
// в CMS API, полученный токен хранится в зашифрованных cookie.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/session"
	"github.com/bigkaa/cms-admin/internal/ui/flash"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

// AuthHandler — обработчики входа и выхода.
type AuthHandler struct {
	base
}

// NewAuthHandler создаёт AuthHandler.
func NewAuthHandler(deps *Deps) *AuthHandler {
	return &AuthHandler{base: newBase(deps, "ui_auth")}
}

// HandleLoginPage обрабатывает GET /admin/login.
// Уже вошедший администратор переходит на главную страницу.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	s := h.deps.Sessions.Restore(h.deps.Cookies.Store(w, r))
	if s.IsAuthenticated() {
		http.Redirect(w, r, session.HomeRoute, http.StatusFound)
		return
	}
	h.renderLogin(w, r, pages.LoginData{Expired: r.URL.Query().Get("expired") == "1"})
}

// HandleLogin обрабатывает POST /admin/login.
// Ошибка входа показывается на той же странице, введённое имя сохраняется.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, pages.LoginData{Error: msgBadRequest})
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	s, err := h.deps.Sessions.Login(r.Context(), h.deps.Cookies.Store(w, r), username, password)
	if err != nil {
		msg := session.LoginFailedMessage
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			msg = authErr.Message
		} else {
			h.logger.Error("Ошибка сохранения сессии", slog.String("error", err.Error()))
		}
		h.journal(r, username, "login", err, msg)
		h.renderLogin(w, r, pages.LoginData{Username: username, Error: msg})
		return
	}

	h.journal(r, s.Username(), "login", nil, "")
	http.Redirect(w, r, session.HomeRoute, http.StatusSeeOther)
}

// HandleLogout обрабатывает POST /admin/logout. Состояние списков
// сессии удаляется вместе с cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	store := h.deps.Cookies.Store(w, r)
	s := h.deps.Sessions.Restore(store)
	if s.IsAuthenticated() {
		h.deps.Lists.Forget(listing.OwnerKey(s.Token))
		h.journal(r, s.Username(), "logout", nil, "")
	}
	h.deps.Sessions.Logout(store)
	done(w, r, session.LoginRoute, flash.KindSuccess, msgLoggedOut)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, data pages.LoginData) {
	data.Layout = h.layout(w, r, "login.heading", "")
	h.render(w, r, "login", pages.Login(data))
}

// journal записывает вход и выход: сессии в контексте запроса ещё
// (или уже) нет, поэтому имя передаётся явно.
func (h *AuthHandler) journal(r *http.Request, username, act string, err error, message string) {
	outcome := model.OutcomeSuccess
	if err != nil {
		outcome = model.OutcomeFailure
	}
	h.deps.Journal.Record(r.Context(), model.Activity{
		OccurredAt: time.Now().UTC(),
		Username:   username,
		Action:     act,
		Resource:   "session",
		Outcome:    outcome,
		Message:    message,
	})
}
