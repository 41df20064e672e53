// Пакет slug — построение URL-идентификаторов из заголовков.
package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	dashes       = regexp.MustCompile(`-+`)
	notSlugChar  = regexp.MustCompile(`[^a-z0-9-]`)
)

// Make строит slug: нижний регистр, только латиница, цифры и дефисы,
// пробелы заменяются дефисами, повторные дефисы схлопываются.
func Make(title string) string {
	s := strings.ToLower(title)
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = dashes.ReplaceAllString(s, "-")
	return strings.TrimSpace(s)
}

// Clean приводит введённый вручную slug к допустимому виду: нижний
// регистр, каждый недопустимый символ заменяется дефисом.
func Clean(s string) string {
	return notSlugChar.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}
