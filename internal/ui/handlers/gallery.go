// gallery.go — страницы галереи: список, перемещение элементов,
// форма и удаление.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/ui/flash"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const galleryPath = "/admin/gallery"

// GalleryHandler — обработчик страниц галереи.
type GalleryHandler struct {
	base
	*formHandler[model.GalleryItem]
}

// NewGalleryHandler создаёт GalleryHandler.
func NewGalleryHandler(deps *Deps) *GalleryHandler {
	api := deps.API
	return &GalleryHandler{
		base: newBase(deps, "ui.gallery"),
		formHandler: newFormHandler(deps, formDef[model.GalleryItem]{
			resource:  "gallery",
			active:    "gallery",
			titleNew:  "gallery.new",
			titleEdit: "gallery.edit",
			back:      galleryPath,
			load: func(ctx context.Context, ownerKey, id string) (model.GalleryItem, string, error) {
				if id == "" {
					return model.GalleryItem{}, "", nil
				}
				item, err := findItem[model.GalleryItem](ctx, deps.Lists, ownerKey, "gallery", api.Gallery.List, func(g model.GalleryItem) bool {
					return strconv.FormatInt(g.ID, 10) == id
				})
				if err != nil {
					return model.GalleryItem{}, "", err
				}
				return item, id, nil
			},
			save: func(ctx context.Context, id string, item model.GalleryItem) error {
				if id == "" {
					return api.Gallery.Create(ctx, item)
				}
				return api.Gallery.Update(ctx, id, item)
			},
			loadFailed: msgLoadData,
			saveFailed: msgSaveItem,
			saved:      func(bool) string { return msgItemSaved },
			page:       func(d pages.FormData[model.GalleryItem]) templ.Component { return pages.GalleryForm(d) },
		}),
	}
}

func (h *GalleryHandler) collection(r *http.Request) *listing.Collection[model.GalleryItem] {
	return listing.Obtain(h.deps.Lists, owner(r), "gallery", func() *listing.Collection[model.GalleryItem] {
		return listing.NewCollection[model.GalleryItem](h.deps.API.Gallery.List)
	})
}

// HandleList обрабатывает GET /admin/gallery.
func (h *GalleryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	coll, items, ok := collectionItems[model.GalleryItem](h.base, w, r, "gallery", h.deps.API.Gallery.List)
	if !ok {
		return
	}
	data := pages.ListData[model.GalleryItem]{
		Layout: h.base.layout(w, r, "gallery.heading", "gallery"),
		Items:  items,
		Total:  len(items),
		Error:  loadError(r, coll.Err(), msgLoadData),
	}
	h.base.render(w, r, "gallery", pages.Gallery(data))
}

// HandleMove обрабатывает POST /admin/gallery/{id}/move?dir=up|down.
// Новый порядок применяется сразу и сохраняется на сервере; при ошибке
// список перезапрашивается.
func (h *GalleryHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	dir, dirOK := listing.ParseDirection(r.URL.Query().Get("dir"))
	if err != nil || !dirOK {
		done(w, r, galleryPath, flash.KindError, msgBadRequest)
		return
	}

	coll := h.collection(r)
	if !coll.Loaded() {
		_, err := coll.Reload(r.Context())
		if h.base.expired(w, r, err) {
			return
		}
	}

	key := func(g model.GalleryItem) int64 { return g.ID }
	err = coll.Reorder(r.Context(), key, id, dir, h.deps.API.Gallery.Reorder)
	if h.base.expired(w, r, err) {
		return
	}
	if err != nil {
		msg := cmsapi.MessageOr(err, msgReorder)
		h.base.logger.Warn("Ошибка изменения порядка галереи",
			slog.String("id", rawID),
			slog.String("error", err.Error()),
		)
		h.base.record(r, "reorder", "gallery", rawID, err, msg)
		done(w, r, galleryPath, flash.KindError, msg)
		return
	}
	h.base.record(r, "reorder", "gallery", rawID, nil, string(dir))
	http.Redirect(w, r, galleryPath, http.StatusSeeOther)
}

// HandleDelete обрабатывает POST /admin/gallery/{id}/delete.
func (h *GalleryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:      "delete",
		resource:  "gallery",
		back:      galleryPath,
		question:  askDeleteItem,
		failed:    msgDeleteItem,
		succeeded: msgItemDeleted,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Gallery.Delete(ctx, id)
	})
}
