// language.go — обработчик переключения языка UI.
package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bigkaa/cms-admin/internal/session"
	"github.com/bigkaa/cms-admin/internal/ui/i18n"
)

// langCookieMaxAge — время жизни cookie языка (1 год).
const langCookieMaxAge = 365 * 24 * time.Hour

// HandleSetLanguage обрабатывает POST /admin/language.
// Устанавливает cookie "lang" и возвращает на предыдущую страницу.
// Параметр lang: "en" или "ru" (из формы или query).
func HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Normalize(r.FormValue("lang"))

	http.SetCookie(w, &http.Cookie{
		Name:     i18n.LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int(langCookieMaxAge.Seconds()),
		HttpOnly: false, // JS читает язык для подтверждений
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(langCookieMaxAge),
	})

	http.Redirect(w, r, backTarget(r), http.StatusSeeOther)
}

// backTarget возвращает путь страницы из Referer того же хоста
// внутри /admin, иначе главную страницу панели.
func backTarget(r *http.Request) string {
	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || ref.Path == "" {
		return session.HomeRoute
	}
	if ref.Host != "" && ref.Host != r.Host {
		return session.HomeRoute
	}
	if !strings.HasPrefix(ref.Path, "/admin") {
		return session.HomeRoute
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
