// lists.go — загрузка списков для страниц: постраничные списки
// с серверной фильтрацией и плоские коллекции.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

// pageFetcher связывает ресурс API с контроллером списка.
func pageFetcher[T any](res *cmsapi.Resource[T]) listing.PageFetcher[T] {
	return func(ctx context.Context, path string, params url.Values) (*model.PageResult[T], error) {
		return res.Page(ctx, path, params)
	}
}

// pagedView применяет параметры URL к контроллеру списка name текущей
// сессии и при необходимости запрашивает страницу. Без параметров
// в URL показывается сохранённое состояние (возврат из формы).
// Возвращает false, если ответ уже отправлен.
func pagedView[T any](
	b base,
	w http.ResponseWriter,
	r *http.Request,
	name string,
	filterKeys []string,
	create func() *listing.Controller[T],
) (listing.View[T], bool) {
	ctrl := listing.Obtain(b.deps.Lists, owner(r), name, create)

	fetch := true
	if r.URL.RawQuery != "" {
		params, err := listing.ParseListParams(r.URL.Query(), filterKeys...)
		if err != nil {
			b.logger.Debug("Некорректные параметры списка",
				slog.String("list", name),
				slog.String("error", err.Error()),
			)
		} else {
			fetch = listing.Navigate(ctrl, params)
		}
	}
	if !fetch {
		return ctrl.View(), true
	}

	view, err := ctrl.Refresh(r.Context())
	if errors.Is(err, listing.ErrSuperseded) {
		return ctrl.View(), true
	}
	if b.expired(w, r, err) {
		return view, false
	}
	if err != nil {
		b.logger.Warn("Ошибка загрузки списка",
			slog.String("list", name),
			slog.String("error", err.Error()),
		)
	}
	return view, true
}

// collectionItems перезагружает плоский список name текущей сессии.
// Ошибка загрузки доступна через Err коллекции.
// Возвращает false, если ответ уже отправлен.
func collectionItems[T any](
	b base,
	w http.ResponseWriter,
	r *http.Request,
	name string,
	fetch listing.ListFetcher[T],
) (*listing.Collection[T], []T, bool) {
	coll := obtainCollection(b, r, name, fetch)
	items, err := coll.Reload(r.Context())
	if errors.Is(err, listing.ErrSuperseded) {
		return coll, coll.Items(), true
	}
	if b.expired(w, r, err) {
		return coll, nil, false
	}
	if err != nil {
		b.logger.Warn("Ошибка загрузки списка",
			slog.String("list", name),
			slog.String("error", err.Error()),
		)
	}
	return coll, items, true
}

func obtainCollection[T any](b base, r *http.Request, name string, fetch listing.ListFetcher[T]) *listing.Collection[T] {
	return listing.Obtain(b.deps.Lists, owner(r), name, func() *listing.Collection[T] {
		return listing.NewCollection(fetch)
	})
}

// localItems — плоский список с фильтрацией в памяти по ключам keys.
// Если в URL только эти фильтры, а список уже загружен без ошибки,
// фильтруются загруженные элементы без запроса к API. Страница без
// параметров (в том числе возврат после изменения) и повтор после
// ошибки перезагружают список.
func localItems[T any](
	b base,
	w http.ResponseWriter,
	r *http.Request,
	name string,
	fetch listing.ListFetcher[T],
	keys ...string,
) (*listing.Collection[T], []T, bool) {
	coll := obtainCollection(b, r, name, fetch)
	if r.URL.RawQuery != "" && onlyKeys(r.URL.Query(), keys) && coll.Loaded() && coll.Err() == nil {
		return coll, coll.Items(), true
	}
	return collectionItems(b, w, r, name, fetch)
}

// onlyKeys сообщает, что values не содержит ключей кроме keys.
func onlyKeys(values url.Values, keys []string) bool {
	for k := range values {
		if !slices.Contains(keys, k) {
			return false
		}
	}
	return true
}

// localFilters читает значения фильтров keys из URL.
func localFilters(r *http.Request, keys ...string) map[string]string {
	q := r.URL.Query()
	filters := make(map[string]string, len(keys))
	for _, k := range keys {
		filters[k] = q.Get(k)
	}
	return filters
}

// viewError — ошибка последнего обновления списка для баннера.
func viewError[T any](r *http.Request, v listing.View[T]) *pages.LoadError {
	return loadError(r, v.Err, msgLoadData)
}

// errItemMissing — элемента нет в списке.
var errItemMissing = errors.New("элемент не найден в списке")

// findItem ищет элемент плоского списка name текущей сессии.
// Если в загруженном списке элемента нет, список перезапрашивается.
func findItem[T any](
	ctx context.Context,
	lists *listing.Registry,
	ownerKey, name string,
	fetch listing.ListFetcher[T],
	match func(T) bool,
) (T, error) {
	coll := listing.Obtain(lists, ownerKey, name, func() *listing.Collection[T] {
		return listing.NewCollection(fetch)
	})
	if item, ok := firstMatch(coll.Items(), match); ok {
		return item, nil
	}
	var zero T
	items, err := coll.Reload(ctx)
	if err != nil && !errors.Is(err, listing.ErrSuperseded) {
		return zero, err
	}
	if item, ok := firstMatch(items, match); ok {
		return item, nil
	}
	return zero, errItemMissing
}

func firstMatch[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
