package i18n

import (
	"net/http"
)

// LangCookieName — cookie с языком, выбранным переключателем панели.
// Cookie не HttpOnly: скрипт страницы читает её для текстов подтверждений.
const LangCookieName = "lang"

// Middleware определяет язык запроса и кладёт его в контекст:
// cookie lang, затем Accept-Language, затем DefaultLang.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), requestLang(r))))
		})
	}
}

func requestLang(r *http.Request) string {
	if c, err := r.Cookie(LangCookieName); err == nil && Supported(c.Value) {
		return c.Value
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return MatchLanguage(accept)
	}
	return DefaultLang
}
