// Пакет listing — состояние списков ресурсов CMS: запрос страницы,
// фильтры, навигация, локальная фильтрация и изменение порядка.
//
// Для каждого ресурса выбирается стратегия построения запроса (Endpoint):
// фильтрация либо делегируется серверу (PathScoped, SearchEndpoint,
// QueryParams), либо выполняется в памяти (LocalFilter).
package listing

import (
	"net/url"
	"strconv"

	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// Endpoint строит путь и параметры запроса страницы по ListQuery.
type Endpoint interface {
	Build(q model.ListQuery) (path string, params url.Values)
}

// withPaging добавляет page и size.
func withPaging(params url.Values, q model.ListQuery) url.Values {
	if params == nil {
		params = url.Values{}
	}
	params.Set("page", strconv.Itoa(q.PageNumber))
	params.Set("size", strconv.Itoa(q.PageSize))
	return params
}

// PathScoped — фильтр области передаётся сегментом пути, ключевое слово —
// через подпуть /search. Таблица для блогов:
//
//	нет фильтров         → {Base}
//	только область       → {Base}/{Segment}/{scope}
//	только ключевое слово → {Base}/search?keyword=
//	оба                  → {Base}/{Segment}/{scope}/search?keyword=
type PathScoped struct {
	// Base — базовый путь коллекции
	Base string
	// Segment — литерал сегмента области (division)
	Segment string
	// ScopeFilter — ключ фильтра области
	ScopeFilter string
	// KeywordFilter — ключ фильтра ключевого слова
	KeywordFilter string
}

// Build реализует Endpoint.
func (e PathScoped) Build(q model.ListQuery) (string, url.Values) {
	path := e.Base
	params := url.Values{}
	if scope := q.Filter(e.ScopeFilter); scope != "" {
		path += "/" + e.Segment + "/" + url.PathEscape(scope)
	}
	if kw := q.Filter(e.KeywordFilter); kw != "" {
		path += "/search"
		params.Set("keyword", kw)
	}
	return path, withPaging(params, q)
}

// SearchEndpoint — единственный фильтр ключевого слова через {Base}/search.
type SearchEndpoint struct {
	Base          string
	KeywordFilter string
}

// Build реализует Endpoint.
func (e SearchEndpoint) Build(q model.ListQuery) (string, url.Values) {
	params := url.Values{}
	if kw := q.Filter(e.KeywordFilter); kw != "" {
		params.Set("keyword", kw)
		return e.Base + "/search", withPaging(params, q)
	}
	return e.Base, withPaging(params, q)
}

// QueryParams — все фильтры передаются query-параметрами одного endpoint.
type QueryParams struct {
	Base string
	// Params — соответствие ключа фильтра имени query-параметра
	Params map[string]string
}

// Build реализует Endpoint.
func (e QueryParams) Build(q model.ListQuery) (string, url.Values) {
	params := url.Values{}
	for filter, param := range e.Params {
		if v := q.Filter(filter); v != "" {
			params.Set(param, v)
		}
	}
	return e.Base, withPaging(params, q)
}
