// news.go — страницы новостей: список с поиском, форма,
// публикация, «избранное» и удаление.
package handlers

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const newsPath = "/admin/news"

// NewsHandler — обработчик страниц новостей.
type NewsHandler struct {
	base
	*formHandler[model.News]
}

// NewNewsHandler создаёт NewsHandler.
func NewNewsHandler(deps *Deps) *NewsHandler {
	api := deps.API
	return &NewsHandler{
		base: newBase(deps, "ui.news"),
		formHandler: newFormHandler(deps, formDef[model.News]{
			resource:  "news",
			active:    "news",
			titleNew:  "news.new",
			titleEdit: "news.edit",
			back:      newsPath,
			options: func(context.Context) map[string][]string {
				return map[string][]string{"category": model.NewsCategories}
			},
			load: func(ctx context.Context, _, id string) (model.News, string, error) {
				if id == "" {
					return model.News{Category: model.NewsCategories[0], IsPublished: true}, "", nil
				}
				n, err := api.News.Get(ctx, id)
				if err != nil {
					return model.News{}, "", err
				}
				return *n, id, nil
			},
			save: func(ctx context.Context, id string, n model.News) error {
				if id == "" {
					return api.News.Create(ctx, n)
				}
				return api.News.Update(ctx, id, n)
			},
			loadFailed: msgLoadData,
			saveFailed: msgSaveItem,
			saved:      func(bool) string { return msgNewsSaved },
			page:       func(d pages.FormData[model.News]) templ.Component { return pages.NewsForm(d) },
		}),
	}
}

// HandleList обрабатывает GET /admin/news.
func (h *NewsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	view, ok := pagedView(h.base, w, r, "news",
		[]string{model.FilterKeyword},
		func() *listing.Controller[model.News] {
			return listing.NewController(listing.SearchEndpoint{
				Base:          cmsapi.PathNews,
				KeywordFilter: model.FilterKeyword,
			}, pageFetcher(h.deps.API.News), h.deps.PageSize)
		})
	if !ok {
		return
	}

	data := pages.ListData[model.News]{
		Layout:  h.base.layout(w, r, "news.heading", "news"),
		Pager:   pages.NewPager(newsPath, view),
		Filters: view.Query.Filters,
		Error:   viewError(r, view),
	}
	if view.Result != nil {
		data.Items = view.Result.Content
	}
	h.base.render(w, r, "news", pages.News(data))
}

// HandleTogglePublish обрабатывает POST /admin/news/{id}/toggle-publish.
func (h *NewsHandler) HandleTogglePublish(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, cmsapi.ActionTogglePublish, msgTogglePublish)
}

// HandleToggleFeatured обрабатывает POST /admin/news/{id}/toggle-featured.
func (h *NewsHandler) HandleToggleFeatured(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, cmsapi.ActionToggleFeatured, msgToggleFeatured)
}

func (h *NewsHandler) toggle(w http.ResponseWriter, r *http.Request, act, failed string) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:     act,
		resource: "news",
		back:     newsPath,
		failed:   failed,
	}, id, func(ctx context.Context) error {
		return h.deps.API.News.Toggle(ctx, id, act)
	})
}

// HandleDelete обрабатывает POST /admin/news/{id}/delete.
func (h *NewsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:      "delete",
		resource:  "news",
		back:      newsPath,
		question:  askDeleteItem,
		failed:    msgDeleteItem,
		succeeded: msgItemDeleted,
	}, id, func(ctx context.Context) error {
		return h.deps.API.News.Delete(ctx, id)
	})
}
