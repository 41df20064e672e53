package listing

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// ErrSuperseded — ответ устарел: после него был выдан более новый запрос.
var ErrSuperseded = errors.New("ответ списка устарел")

// PageFetcher выполняет запрос страницы.
type PageFetcher[T any] func(ctx context.Context, path string, params url.Values) (*model.PageResult[T], error)

// View — снимок состояния контроллера для отображения.
type View[T any] struct {
	// Query — текущий запрос
	Query model.ListQuery
	// Result — последняя успешно полученная страница (nil до первой загрузки)
	Result *model.PageResult[T]
	// Err — ошибка последнего обновления (nil, если оно успешно)
	Err error
}

// CanPrev — доступны кнопки «Первая» и «Предыдущая».
func (v View[T]) CanPrev() bool {
	return v.Result != nil && !v.Result.First
}

// CanNext — доступны кнопки «Следующая» и «Последняя».
func (v View[T]) CanNext() bool {
	return v.Result != nil && !v.Result.Last
}

// Controller — состояние постраничного списка одного ресурса.
// Каждый Refresh получает порядковый номер; применяется только ответ
// на последний выданный запрос.
type Controller[T any] struct {
	mu       sync.Mutex
	endpoint Endpoint
	fetch    PageFetcher[T]
	query    model.ListQuery
	result   *model.PageResult[T]
	err      error
	issued   uint64
}

// NewController создаёт контроллер с первой страницей размера pageSize.
func NewController[T any](endpoint Endpoint, fetch PageFetcher[T], pageSize int) *Controller[T] {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Controller[T]{
		endpoint: endpoint,
		fetch:    fetch,
		query:    model.ListQuery{PageSize: pageSize, Filters: map[string]string{}},
	}
}

// Query возвращает копию текущего запроса.
func (c *Controller[T]) Query() model.ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Clone()
}

// Request возвращает путь и параметры, которые выдаст следующий Refresh.
func (c *Controller[T]) Request() (string, url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoint.Build(c.query.Clone())
}

// SetFilter задаёт значение фильтра. Изменение сбрасывает страницу на первую.
func (c *Controller[T]) SetFilter(key, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	value = strings.TrimSpace(value)
	if c.query.Filters[key] == value {
		return false
	}
	if value == "" {
		delete(c.query.Filters, key)
	} else {
		c.query.Filters[key] = value
	}
	c.query.PageNumber = 0
	return true
}

// SetFilters заменяет набор фильтров целиком. Изменение сбрасывает страницу.
func (c *Controller[T]) SetFilters(filters map[string]string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make(map[string]string, len(filters))
	for k, v := range filters {
		if v = strings.TrimSpace(v); v != "" {
			next[k] = v
		}
	}
	if c.query.SameFilters(next) {
		return false
	}
	c.query.Filters = next
	c.query.PageNumber = 0
	return true
}

// SetPageSize меняет размер страницы. Изменение сбрасывает страницу.
func (c *Controller[T]) SetPageSize(size int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size < 1 || size == c.query.PageSize {
		return false
	}
	c.query.PageSize = size
	c.query.PageNumber = 0
	return true
}

// SetPage переходит на страницу n без ограничения сверху.
func (c *Controller[T]) SetPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPageLocked(max(n, 0))
}

// GoTo переходит на страницу n, молча ограничивая её диапазоном
// [0, totalPages-1]. Возвращает false, если страница не изменилась:
// в этом случае запрос выдавать не нужно.
func (c *Controller[T]) GoTo(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	last := 0
	if c.result != nil && c.result.TotalPages > 0 {
		last = c.result.TotalPages - 1
	}
	return c.setPageLocked(min(max(n, 0), last))
}

// First переходит на первую страницу.
func (c *Controller[T]) First() bool {
	return c.GoTo(0)
}

// Prev переходит на предыдущую страницу.
func (c *Controller[T]) Prev() bool {
	c.mu.Lock()
	n := c.query.PageNumber - 1
	c.mu.Unlock()
	return c.GoTo(n)
}

// Next переходит на следующую страницу.
func (c *Controller[T]) Next() bool {
	c.mu.Lock()
	n := c.query.PageNumber + 1
	c.mu.Unlock()
	return c.GoTo(n)
}

// Last переходит на последнюю страницу.
func (c *Controller[T]) Last() bool {
	c.mu.Lock()
	n := 0
	if c.result != nil {
		n = c.result.TotalPages - 1
	}
	c.mu.Unlock()
	return c.GoTo(n)
}

func (c *Controller[T]) setPageLocked(n int) bool {
	if n == c.query.PageNumber {
		return false
	}
	c.query.PageNumber = n
	return true
}

// Refresh запрашивает страницу по текущему запросу.
// Успешный ответ заменяет результат целиком; при ошибке прежний результат
// сохраняется, а ошибка запоминается. Ответ на устаревший запрос
// отбрасывается с ErrSuperseded.
func (c *Controller[T]) Refresh(ctx context.Context) (View[T], error) {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	path, params := c.endpoint.Build(c.query.Clone())
	c.mu.Unlock()

	res, err := c.fetch(ctx, path, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.issued {
		return c.viewLocked(), ErrSuperseded
	}
	if err != nil {
		c.err = err
		return c.viewLocked(), err
	}
	res.Normalize()
	c.result = res
	c.err = nil
	return c.viewLocked(), nil
}

// View возвращает снимок состояния.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller[T]) viewLocked() View[T] {
	return View[T]{Query: c.query.Clone(), Result: c.result, Err: c.err}
}
