// Пакет pages — страницы панели CMS.
//
// Каждая страница — templ.Component. Разметка лежит во встроенных
// html/template файлах (templates/*.html): общий каркас layout.html,
// фрагменты partials.html и по одному файлу на страницу с шаблоном content.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/ui/flash"
	"github.com/bigkaa/cms-admin/internal/ui/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// Layout — общие данные каркаса страницы. Встраивается в данные каждой страницы.
type Layout struct {
	// Lang — язык интерфейса (en, ru)
	Lang string
	// Title — ключ перевода заголовка
	Title string
	// Active — ключ активного раздела навигации
	Active string
	// User — имя администратора (пусто на странице входа)
	User string
	// Flash — баннер из предыдущего запроса
	Flash *flash.Message
	// FlashDismiss — время показа баннера об успехе
	FlashDismiss time.Duration
	// APIBase — origin CMS API для ссылок на файлы
	APIBase string
}

// T переводит ключ на язык страницы.
func (l Layout) T(key string) string {
	return i18n.Tl(l.Lang, key)
}

// Asset возвращает абсолютный URL файла CMS API.
func (l Layout) Asset(path string) string {
	return cmsapi.AssetURL(l.APIBase, path)
}

// DismissMS — время показа баннера об успехе в миллисекундах.
func (l Layout) DismissMS() int64 {
	return l.FlashDismiss.Milliseconds()
}

// NavItem — пункт навигации.
type NavItem struct {
	Key   string
	Href  string
	Label string
}

// Navigation — разделы панели в порядке меню.
var Navigation = []NavItem{
	{Key: "dashboard", Href: "/admin/", Label: "nav.dashboard"},
	{Key: "blogs", Href: "/admin/blogs", Label: "nav.blogs"},
	{Key: "news", Href: "/admin/news", Label: "nav.news"},
	{Key: "products", Href: "/admin/products", Label: "nav.products"},
	{Key: "brands", Href: "/admin/brands", Label: "nav.brands"},
	{Key: "categories", Href: "/admin/categories", Label: "nav.categories"},
	{Key: "gallery", Href: "/admin/gallery", Label: "nav.gallery"},
	{Key: "divisions", Href: "/admin/divisions", Label: "nav.divisions"},
	{Key: "home", Href: "/admin/home", Label: "nav.home"},
	{Key: "about", Href: "/admin/about", Label: "nav.about"},
	{Key: "contact", Href: "/admin/contact", Label: "nav.contact"},
	{Key: "admins", Href: "/admin/admins", Label: "nav.admins"},
	{Key: "files", Href: "/admin/files", Label: "nav.files"},
	{Key: "profile", Href: "/admin/profile", Label: "nav.profile"},
}

// Nav возвращает пункты навигации.
func (l Layout) Nav() []NavItem {
	return Navigation
}

// funcs — функции, доступные шаблонам.
var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict: нечётное число аргументов")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: ключ %v не строка", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
	"path": func(parts ...any) string {
		var b strings.Builder
		for _, p := range parts {
			switch v := p.(type) {
			case int:
				fmt.Fprintf(&b, "[%d]", v)
			default:
				if b.Len() > 0 {
					b.WriteByte('.')
				}
				fmt.Fprint(&b, v)
			}
		}
		return b.String()
	},
	"ternary": func(cond bool, yes, no string) string {
		if cond {
			return yes
		}
		return no
	},
	"list": func(items ...int) []int { return items },
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
	"truncate": func(n int, s string) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n]) + "…"
	},
}

// pageFiles — шаблон каждой страницы.
var pageFiles = []string{
	"login", "dashboard", "confirm", "error",
	"blogs", "blog_form",
	"news", "news_form",
	"products", "product_form",
	"brands", "categories", "name_form",
	"gallery", "gallery_form",
	"divisions", "division_form",
	"admins", "admin_form", "profile_form",
	"about_form", "contact_form", "home_form",
	"files",
}

var (
	parseOnce sync.Once
	parsed    map[string]*template.Template
	parseErr  error
)

// templates разбирает шаблоны один раз на процесс.
func templates() (map[string]*template.Template, error) {
	parseOnce.Do(func() {
		parsed = make(map[string]*template.Template, len(pageFiles))
		for _, name := range pageFiles {
			t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
				"templates/layout.html",
				"templates/partials.html",
				"templates/"+name+".html",
			)
			if err != nil {
				parseErr = fmt.Errorf("разбор шаблона %s: %w", name, err)
				return
			}
			parsed[name] = t
		}
	})
	return parsed, parseErr
}

// Validate проверяет, что все шаблоны разбираются. Вызывается при старте.
func Validate() error {
	_, err := templates()
	return err
}

// component возвращает страницу name с данными data.
func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		all, err := templates()
		if err != nil {
			return err
		}
		t, ok := all[name]
		if !ok {
			return fmt.Errorf("страница %s не зарегистрирована", name)
		}
		return t.ExecuteTemplate(w, "page", data)
	})
}
