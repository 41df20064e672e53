package listing

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// Имена query-параметров страниц списков.
const (
	ParamPage = "page"
	ParamSize = "size"
	ParamGoTo = "goto"
)

// ListParams — параметры навигации, пришедшие в URL страницы списка.
type ListParams struct {
	// Page — номер страницы (с 0)
	Page *int
	// Size — размер страницы
	Size *int
	// GoTo — номер страницы из поля «перейти» (с 1)
	GoTo *int
	// Filters — значения фильтров (отсутствующие в URL — пустые)
	Filters map[string]string
}

// ParseListParams разбирает параметры навигации и фильтры filterKeys.
func ParseListParams(values url.Values, filterKeys ...string) (ListParams, error) {
	var p ListParams
	if err := runtime.BindQueryParameter("form", true, false, ParamPage, values, &p.Page); err != nil {
		return p, fmt.Errorf("параметр %s: %w", ParamPage, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, ParamSize, values, &p.Size); err != nil {
		return p, fmt.Errorf("параметр %s: %w", ParamSize, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, ParamGoTo, values, &p.GoTo); err != nil {
		return p, fmt.Errorf("параметр %s: %w", ParamGoTo, err)
	}

	p.Filters = make(map[string]string, len(filterKeys))
	for _, key := range filterKeys {
		var v *string
		if err := runtime.BindQueryParameter("form", true, false, key, values, &v); err != nil {
			return p, fmt.Errorf("параметр %s: %w", key, err)
		}
		if v != nil {
			p.Filters[key] = *v
		}
	}
	return p, nil
}

// Navigate применяет параметры к контроллеру и сообщает, нужно ли
// запрашивать страницу. Изменение фильтров или размера страницы
// сбрасывает номер страницы; переход GoTo на текущую страницу запроса
// не порождает.
func Navigate[T any](c *Controller[T], p ListParams) bool {
	firstLoad := c.View().Result == nil

	changed := c.SetFilters(p.Filters)
	if p.Size != nil && c.SetPageSize(*p.Size) {
		changed = true
	}
	if changed {
		return true
	}

	if p.GoTo != nil {
		return c.GoTo(*p.GoTo-1) || firstLoad
	}
	if p.Page != nil {
		c.SetPage(*p.Page)
	}
	return true
}
