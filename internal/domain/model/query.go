package model

import "maps"

// Ключи фильтров списков.
const (
	FilterKeyword  = "keyword"
	FilterDivision = "division"
	FilterCategory = "category"
	FilterBrand    = "brand"
	FilterStatus   = "status"
)

// ListQuery — параметры запроса страницы списка.
type ListQuery struct {
	// PageNumber — номер страницы (с 0)
	PageNumber int
	// PageSize — размер страницы
	PageSize int
	// Filters — активные фильтры; пустые значения не хранятся
	Filters map[string]string
}

// Filter возвращает значение фильтра или пустую строку.
func (q ListQuery) Filter(key string) string {
	return q.Filters[key]
}

// Clone возвращает копию запроса с независимой картой фильтров.
func (q ListQuery) Clone() ListQuery {
	c := q
	c.Filters = maps.Clone(q.Filters)
	if c.Filters == nil {
		c.Filters = map[string]string{}
	}
	return c
}

// SameFilters сообщает, совпадают ли наборы фильтров.
func (q ListQuery) SameFilters(filters map[string]string) bool {
	return maps.Equal(compact(q.Filters), compact(filters))
}

// compact убирает фильтры с пустыми значениями.
func compact(filters map[string]string) map[string]string {
	out := make(map[string]string, len(filters))
	for k, v := range filters {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
