package i18n

import "embed"

// LocaleFS — каталоги locales/en.json и locales/ru.json, встроенные в бинарник.
//
//go:embed locales/*.json
var LocaleFS embed.FS
