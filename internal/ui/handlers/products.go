// products.go — страницы товаров: список с серверными фильтрами
// (поиск, категория, бренд), размером страницы и переходом на страницу,
// форма и удаление.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const productsPath = "/admin/products"

// errInvalidPrice — цена товара не число.
var errInvalidPrice = errors.New(msgInvalidPrice)

// productPageSizes — варианты размера страницы списка товаров.
var productPageSizes = []string{"5", "10", "25", "50", "100"}

// ProductsHandler — обработчик страниц товаров.
type ProductsHandler struct {
	base
	*formHandler[model.ProductForm]
}

// NewProductsHandler создаёт ProductsHandler.
func NewProductsHandler(deps *Deps) *ProductsHandler {
	api := deps.API
	h := &ProductsHandler{base: newBase(deps, "ui.products")}
	h.formHandler = newFormHandler(deps, formDef[model.ProductForm]{
		resource:  "products",
		active:    "products",
		titleNew:  "products.new",
		titleEdit: "products.edit",
		back:      productsPath,
		options:   h.catalogOptions,
		load: func(ctx context.Context, _, id string) (model.ProductForm, string, error) {
			if id == "" {
				return model.ProductForm{}, "", nil
			}
			p, err := api.Products.Get(ctx, id)
			if err != nil {
				return model.ProductForm{}, "", err
			}
			return model.ProductFormFrom(*p), id, nil
		},
		validate: func(f model.ProductForm, _ bool) error {
			if _, err := f.ToProduct(); err != nil {
				return errInvalidPrice
			}
			return nil
		},
		save: func(ctx context.Context, id string, f model.ProductForm) error {
			p, err := f.ToProduct()
			if err != nil {
				return err
			}
			if id == "" {
				return api.Products.Create(ctx, p)
			}
			return api.Products.Update(ctx, id, p)
		},
		loadFailed: msgLoadData,
		saveFailed: msgSaveProduct,
		saved:      func(bool) string { return msgProductSaved },
		page:       func(d pages.FormData[model.ProductForm]) templ.Component { return pages.ProductForm(d) },
	})
	return h
}

// catalogOptions загружает названия брендов и категорий для фильтров
// и формы. Ошибка не мешает показу страницы: списки остаются пустыми.
func (h *ProductsHandler) catalogOptions(ctx context.Context) map[string][]string {
	opts := map[string][]string{
		"brand":    {},
		"category": {},
		"size":     productPageSizes,
	}
	brands, err := h.deps.API.Brands.List(ctx)
	if err != nil {
		h.base.logger.Warn("Ошибка загрузки брендов", slog.String("error", err.Error()))
	}
	for _, b := range brands {
		opts["brand"] = append(opts["brand"], b.Name)
	}
	categories, err := h.deps.API.Categories.List(ctx)
	if err != nil {
		h.base.logger.Warn("Ошибка загрузки категорий", slog.String("error", err.Error()))
	}
	for _, c := range categories {
		opts["category"] = append(opts["category"], c.Name)
	}
	return opts
}

// HandleList обрабатывает GET /admin/products.
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	view, ok := pagedView(h.base, w, r, "products",
		[]string{model.FilterKeyword, model.FilterCategory, model.FilterBrand},
		func() *listing.Controller[model.Product] {
			return listing.NewController(listing.QueryParams{
				Base: cmsapi.PathProducts,
				Params: map[string]string{
					model.FilterKeyword:  "search",
					model.FilterCategory: "category",
					model.FilterBrand:    "brand",
				},
			}, pageFetcher(h.deps.API.Products), h.deps.PageSize)
		})
	if !ok {
		return
	}

	filters := view.Query.Filters
	filters[listing.ParamSize] = strconv.Itoa(view.Query.PageSize)
	data := pages.ListData[model.Product]{
		Layout:  h.base.layout(w, r, "products.heading", "products"),
		Pager:   pages.NewPager(productsPath, view),
		Filters: filters,
		Options: h.catalogOptions(r.Context()),
		Error:   viewError(r, view),
	}
	if view.Result != nil {
		data.Items = view.Result.Content
	}
	h.base.render(w, r, "products", pages.Products(data))
}

// HandleDelete обрабатывает POST /admin/products/{id}/delete.
func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:      "delete",
		resource:  "products",
		back:      productsPath,
		question:  askDeleteProduct,
		failed:    msgDeleteProduct,
		succeeded: msgProductDeleted,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Products.Delete(ctx, id)
	})
}
