// Пакет model — доменные модели CMS: сущности, зеркалирующие ресурсы
// удалённого CMS API, постраничные ответы и параметры запросов списков.
package model

// PageResult — постраничный ответ CMS API для коллекций.
type PageResult[T any] struct {
	// Content — элементы текущей страницы
	Content []T `json:"content"`
	// PageNumber — номер страницы (с 0)
	PageNumber int `json:"pageNumber"`
	// PageSize — размер страницы
	PageSize int `json:"pageSize"`
	// TotalElements — общее количество элементов
	TotalElements int64 `json:"totalElements"`
	// TotalPages — общее количество страниц
	TotalPages int `json:"totalPages"`
	// First — текущая страница первая
	First bool `json:"first"`
	// Last — текущая страница последняя
	Last bool `json:"last"`
	// Empty — на странице нет элементов
	Empty bool `json:"empty"`
}

// Normalize пересчитывает флаги first/last/empty из числовых полей,
// чтобы они не зависели от того, что прислал сервер.
func (p *PageResult[T]) Normalize() {
	if p.PageNumber < 0 {
		p.PageNumber = 0
	}
	if p.TotalPages < 0 {
		p.TotalPages = 0
	}
	if p.Content == nil {
		p.Content = []T{}
	}
	p.First = p.PageNumber == 0
	p.Last = p.TotalPages == 0 || p.PageNumber >= p.TotalPages-1
	p.Empty = len(p.Content) == 0
}

// StartItem возвращает порядковый номер (с 1) первого элемента страницы.
func (p *PageResult[T]) StartItem() int64 {
	if p.Empty {
		return 0
	}
	return int64(p.PageNumber)*int64(p.PageSize) + 1
}

// EndItem возвращает порядковый номер последнего элемента страницы.
func (p *PageResult[T]) EndItem() int64 {
	if p.Empty {
		return 0
	}
	return p.StartItem() + int64(len(p.Content)) - 1
}
