// Пакет i18n — переводы панели CMS на английский и русский.
//
// Каталоги плоские: ключ → строка. Ключи двух видов: точечные
// идентификаторы разметки (nav.blogs, action.save) и английский текст
// сообщений об успехе и ошибках (Failed to save blog). Английский каталог
// служит запасным, а ключ без перевода выводится как есть, поэтому
// сообщения CMS API, которых нет в каталогах, показываются без изменений.
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/text/language"
)

// Коды языков панели.
const (
	LangEnglish = "en"
	LangRussian = "ru"

	// DefaultLang — язык без cookie и подходящего Accept-Language.
	DefaultLang = LangEnglish
)

// Languages — коды языков, для которых встроены каталоги.
var Languages = []string{LangEnglish, LangRussian}

// matcher сопоставляет Accept-Language с Languages (порядок совпадает).
var matcher = language.NewMatcher([]language.Tag{language.English, language.Russian})

// Supported сообщает, что для lang есть каталог.
func Supported(lang string) bool {
	return slices.Contains(Languages, lang)
}

// Normalize возвращает lang, если он поддерживается, иначе DefaultLang.
func Normalize(lang string) string {
	if Supported(lang) {
		return lang
	}
	return DefaultLang
}

// MatchLanguage выбирает язык панели по заголовку Accept-Language.
func MatchLanguage(acceptLanguage string) string {
	_, idx, conf := language.MatchStrings(matcher, acceptLanguage)
	if conf == language.No || idx < 0 || idx >= len(Languages) {
		return DefaultLang
	}
	return Languages[idx]
}

type ctxKey struct{}

// Bundle — каталоги переводов по языкам.
type Bundle struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]string
	logger   *slog.Logger
}

// NewBundle создаёт Bundle без каталогов.
func NewBundle(logger *slog.Logger) *Bundle {
	return &Bundle{
		catalogs: make(map[string]map[string]string),
		logger:   logger,
	}
}

// LoadMessages разбирает JSON-каталог {"ключ": "перевод"} языка lang
// и заменяет им ранее загруженный.
func (b *Bundle) LoadMessages(lang string, data []byte) error {
	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("i18n: каталог %s: %w", lang, err)
	}

	b.mu.Lock()
	b.catalogs[lang] = messages
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Debug("Каталог переводов загружен",
			slog.String("lang", lang),
			slog.Int("keys", len(messages)),
		)
	}
	return nil
}

// Translate ищет key в каталоге lang, затем в английском.
// Ненайденный ключ возвращается без изменений.
func (b *Bundle) Translate(lang, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msg, ok := b.catalogs[lang][key]; ok {
		return msg
	}
	if msg, ok := b.catalogs[DefaultLang][key]; ok {
		return msg
	}
	return key
}

// Translatef переводит key и подставляет args в полученную строку.
func (b *Bundle) Translatef(lang, key string, args ...any) string {
	msg := b.Translate(lang, key)
	if len(args) == 0 {
		return msg
	}
	return formatFunc(msg, args...)
}

// Процессный Bundle: его читают T, Tf и Tl.
var (
	globalBundle *Bundle
	globalOnce   sync.Once
)

// Init создаёт процессный Bundle при первом вызове и возвращает его.
func Init(logger *slog.Logger) *Bundle {
	globalOnce.Do(func() {
		globalBundle = NewBundle(logger)
	})
	return globalBundle
}

// GetBundle возвращает процессный Bundle или nil до Init.
func GetBundle() *Bundle {
	return globalBundle
}

// WithLang кладёт язык запроса в контекст.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFromContext возвращает язык запроса или DefaultLang.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(ctxKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

// Tl переводит key на язык lang. Используется шаблонами страниц,
// которым язык передаётся в данных макета.
func Tl(lang, key string) string {
	if globalBundle == nil {
		return key
	}
	return globalBundle.Translate(lang, key)
}

// T переводит key на язык запроса из ctx.
func T(ctx context.Context, key string) string {
	return Tl(LangFromContext(ctx), key)
}

// Tf переводит key на язык запроса и подставляет args.
// Без загруженного Bundle форматируется сам ключ.
func Tf(ctx context.Context, key string, args ...any) string {
	if globalBundle == nil {
		if len(args) == 0 {
			return key
		}
		return formatFunc(key, args...)
	}
	return globalBundle.Translatef(LangFromContext(ctx), key, args...)
}

// formatFunc — fmt.Sprintf через переменную: строки формата приходят
// из каталогов, и printf-анализатор go vet их не видит.
//
//nolint:govet // строка формата из каталога
var formatFunc = fmt.Sprintf
