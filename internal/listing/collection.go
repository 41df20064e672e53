// collection.go — плоские списки без пагинации (бренды, категории,
// галерея, подразделения, администраторы) и локальная фильтрация.
package listing

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// Значения фильтра статуса.
const (
	StatusAll      = ""
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ListFetcher возвращает коллекцию целиком.
type ListFetcher[T any] func(ctx context.Context) ([]T, error)

// Collection — состояние плоского списка. Как и Controller, применяет
// только ответ на последний выданный запрос и при ошибке сохраняет
// прежние элементы.
type Collection[T any] struct {
	mu     sync.Mutex
	fetch  ListFetcher[T]
	items  []T
	loaded bool
	err    error
	issued uint64
}

// NewCollection создаёт список с источником fetch.
func NewCollection[T any](fetch ListFetcher[T]) *Collection[T] {
	return &Collection[T]{fetch: fetch}
}

// Reload запрашивает коллекцию заново.
func (c *Collection[T]) Reload(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.issued {
		return slices.Clone(c.items), ErrSuperseded
	}
	if err != nil {
		c.err = err
		return slices.Clone(c.items), err
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.loaded = true
	c.err = nil
	return slices.Clone(items), nil
}

// Items возвращает копию текущих элементов.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Loaded сообщает, была ли хотя бы одна успешная загрузка.
func (c *Collection[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Err возвращает ошибку последней загрузки.
func (c *Collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// LocalFilter — фильтрация загруженного списка в памяти: подстрочный
// поиск без учёта регистра и фильтр статуса.
type LocalFilter[T any] struct {
	// Text — текст элемента, по которому идёт поиск
	Text func(T) string
	// Active — статус элемента (nil — фильтр статуса не поддерживается)
	Active func(T) bool
}

// Apply возвращает элементы, удовлетворяющие фильтрам keyword и status.
func (f LocalFilter[T]) Apply(items []T, filters map[string]string) []T {
	needle := strings.ToLower(strings.TrimSpace(filters[model.FilterKeyword]))
	status := filters[model.FilterStatus]

	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && f.Text != nil && !strings.Contains(strings.ToLower(f.Text(item)), needle) {
			continue
		}
		if f.Active != nil {
			switch status {
			case StatusActive:
				if !f.Active(item) {
					continue
				}
			case StatusInactive:
				if f.Active(item) {
					continue
				}
			}
		}
		out = append(out, item)
	}
	return out
}

// BrandFilter — локальный фильтр брендов по имени и статусу.
var BrandFilter = LocalFilter[model.Brand]{
	Text:   func(b model.Brand) string { return b.Name },
	Active: model.Brand.IsActive,
}
