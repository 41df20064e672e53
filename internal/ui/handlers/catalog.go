// catalog.go — справочники каталога: бренды (локальный поиск и фильтр
// статуса) и категории. Форма у обоих справочников одна: поле name.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const (
	brandsPath     = "/admin/brands"
	categoriesPath = "/admin/categories"
)

func nameFormPage(d pages.FormData[model.NameForm]) templ.Component {
	return pages.NameForm(d)
}

// nameSaved выбирает сообщение об успехе для создания или обновления.
func nameSaved(created, updated string) func(bool) string {
	return func(creating bool) string {
		if creating {
			return created
		}
		return updated
	}
}

// nameSaver сохраняет справочник {name}.
func nameSaver[T any](res *cmsapi.Resource[T]) func(context.Context, string, model.NameForm) error {
	return func(ctx context.Context, id string, f model.NameForm) error {
		if id == "" {
			return res.Create(ctx, f)
		}
		return res.Update(ctx, id, f)
	}
}

// BrandsHandler — обработчик страниц брендов.
type BrandsHandler struct {
	base
	*formHandler[model.NameForm]
}

// NewBrandsHandler создаёт BrandsHandler.
func NewBrandsHandler(deps *Deps) *BrandsHandler {
	api := deps.API
	return &BrandsHandler{
		base: newBase(deps, "ui.brands"),
		formHandler: newFormHandler(deps, formDef[model.NameForm]{
			resource:  "brands",
			active:    "brands",
			titleNew:  "brands.new",
			titleEdit: "brands.edit",
			back:      brandsPath,
			load: func(ctx context.Context, ownerKey, id string) (model.NameForm, string, error) {
				if id == "" {
					return model.NameForm{}, "", nil
				}
				b, err := findItem[model.Brand](ctx, deps.Lists, ownerKey, "brands", api.Brands.List, func(b model.Brand) bool {
					return strconv.FormatInt(b.ID, 10) == id
				})
				if err != nil {
					return model.NameForm{}, "", err
				}
				return model.NameForm{Name: b.Name}, id, nil
			},
			save:       nameSaver(api.Brands),
			loadFailed: msgLoadData,
			saveFailed: msgSaveBrand,
			saved:      nameSaved(msgBrandCreated, msgBrandUpdated),
			page:       nameFormPage,
		}),
	}
}

// HandleList обрабатывает GET /admin/brands. Поиск и фильтр статуса
// выполняются в памяти по загруженному списку, без запроса к API.
func (h *BrandsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	coll, items, ok := localItems[model.Brand](h.base, w, r, "brands", h.deps.API.Brands.List,
		model.FilterKeyword, model.FilterStatus)
	if !ok {
		return
	}
	filters := localFilters(r, model.FilterKeyword, model.FilterStatus)
	data := pages.ListData[model.Brand]{
		Layout:  h.base.layout(w, r, "brands.heading", "brands"),
		Items:   listing.BrandFilter.Apply(items, filters),
		Total:   len(items),
		Filters: filters,
		Error:   loadError(r, coll.Err(), msgLoadData),
	}
	h.base.render(w, r, "brands", pages.Brands(data))
}

// HandleDelete обрабатывает POST /admin/brands/{id}/delete.
func (h *BrandsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:      "delete",
		resource:  "brands",
		back:      brandsPath,
		question:  askDeleteBrand,
		failed:    msgDeleteBrand,
		succeeded: msgBrandDeleted,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Brands.Delete(ctx, id)
	})
}

// CategoriesHandler — обработчик страниц категорий.
type CategoriesHandler struct {
	base
	*formHandler[model.NameForm]
}

// NewCategoriesHandler создаёт CategoriesHandler.
func NewCategoriesHandler(deps *Deps) *CategoriesHandler {
	api := deps.API
	return &CategoriesHandler{
		base: newBase(deps, "ui.categories"),
		formHandler: newFormHandler(deps, formDef[model.NameForm]{
			resource:  "categories",
			active:    "categories",
			titleNew:  "categories.new",
			titleEdit: "categories.edit",
			back:      categoriesPath,
			load: func(ctx context.Context, ownerKey, id string) (model.NameForm, string, error) {
				if id == "" {
					return model.NameForm{}, "", nil
				}
				c, err := findItem[model.Category](ctx, deps.Lists, ownerKey, "categories", api.Categories.List, func(c model.Category) bool {
					return strconv.FormatInt(c.ID, 10) == id
				})
				if err != nil {
					return model.NameForm{}, "", err
				}
				return model.NameForm{Name: c.Name}, id, nil
			},
			save:       nameSaver(api.Categories),
			loadFailed: msgLoadData,
			saveFailed: msgSaveCategory,
			saved:      nameSaved(msgCategoryCreated, msgCategoryUpdated),
			page:       nameFormPage,
		}),
	}
}

// HandleList обрабатывает GET /admin/categories.
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	coll, items, ok := collectionItems[model.Category](h.base, w, r, "categories", h.deps.API.Categories.List)
	if !ok {
		return
	}
	data := pages.ListData[model.Category]{
		Layout: h.base.layout(w, r, "categories.heading", "categories"),
		Items:  items,
		Total:  len(items),
		Error:  loadError(r, coll.Err(), msgLoadData),
	}
	h.base.render(w, r, "categories", pages.Categories(data))
}

// HandleDelete обрабатывает POST /admin/categories/{id}/delete.
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:      "delete",
		resource:  "categories",
		back:      categoriesPath,
		question:  askDeleteCategory,
		failed:    msgDeleteCategory,
		succeeded: msgCategoryDeleted,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Categories.Delete(ctx, id)
	})
}
