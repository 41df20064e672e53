// blogs.go — страницы блогов: список с фильтром по подразделению
// и поиском, форма, публикация и удаление.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/domain/slug"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const (
	blogsPath           = "/admin/blogs"
	defaultBlogDivision = "Solar"
)

// BlogsHandler — обработчик страниц блогов.
type BlogsHandler struct {
	base
	*formHandler[model.Blog]
}

// NewBlogsHandler создаёт BlogsHandler.
func NewBlogsHandler(deps *Deps) *BlogsHandler {
	api := deps.API
	return &BlogsHandler{
		base: newBase(deps, "ui.blogs"),
		formHandler: newFormHandler(deps, formDef[model.Blog]{
			resource:  "blogs",
			active:    "blogs",
			titleNew:  "blogs.new",
			titleEdit: "blogs.edit",
			back:      blogsPath,
			options: func(context.Context) map[string][]string {
				return map[string][]string{"division": model.BlogDivisions}
			},
			load: func(ctx context.Context, _, id string) (model.Blog, string, error) {
				if id == "" {
					return model.Blog{
						Date:      time.Now().Format(time.DateOnly),
						Division:  defaultBlogDivision,
						Published: true,
					}, "", nil
				}
				b, err := api.Blogs.Get(ctx, id)
				if err != nil {
					return model.Blog{}, "", err
				}
				return *b, id, nil
			},
			save: func(ctx context.Context, id string, b model.Blog) error {
				if strings.TrimSpace(b.Slug) == "" {
					b.Slug = slug.Make(b.Topic)
				}
				if id == "" {
					return api.Blogs.Create(ctx, b)
				}
				return api.Blogs.Update(ctx, id, b)
			},
			loadFailed: msgLoadData,
			saveFailed: msgSaveBlog,
			saved:      func(bool) string { return msgBlogSaved },
			page:       func(d pages.FormData[model.Blog]) templ.Component { return pages.BlogForm(d) },
		}),
	}
}

// HandleList обрабатывает GET /admin/blogs.
func (h *BlogsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	view, ok := pagedView(h.base, w, r, "blogs",
		[]string{model.FilterDivision, model.FilterKeyword},
		func() *listing.Controller[model.Blog] {
			return listing.NewController(listing.PathScoped{
				Base:          cmsapi.PathBlogs,
				Segment:       "division",
				ScopeFilter:   model.FilterDivision,
				KeywordFilter: model.FilterKeyword,
			}, pageFetcher(h.deps.API.Blogs), h.deps.PageSize)
		})
	if !ok {
		return
	}

	data := pages.ListData[model.Blog]{
		Layout:  h.base.layout(w, r, "blogs.heading", "blogs"),
		Pager:   pages.NewPager(blogsPath, view),
		Filters: view.Query.Filters,
		Options: map[string][]string{"division": model.BlogDivisions},
		Error:   viewError(r, view),
	}
	if view.Result != nil {
		data.Items = view.Result.Content
	}
	h.base.render(w, r, "blogs", pages.Blogs(data))
}

// HandleTogglePublish обрабатывает POST /admin/blogs/{id}/toggle-publish.
func (h *BlogsHandler) HandleTogglePublish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:     cmsapi.ActionTogglePublish,
		resource: "blogs",
		back:     blogsPath,
		failed:   msgTogglePublish,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Blogs.Toggle(ctx, id, cmsapi.ActionTogglePublish)
	})
}

// HandleDelete обрабатывает POST /admin/blogs/{id}/delete.
func (h *BlogsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:      "delete",
		resource:  "blogs",
		back:      blogsPath,
		question:  askDeleteBlog,
		failed:    msgDeleteBlog,
		succeeded: msgBlogDeleted,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Blogs.Delete(ctx, id)
	})
}
