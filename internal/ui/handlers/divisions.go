// divisions.go — страницы подразделений: список, форма с вложенными
// направлениями и контактами, переключение статуса и удаление.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/domain/slug"
	"github.com/bigkaa/cms-admin/internal/forms"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const divisionsPath = "/admin/divisions"

// divisionsAllPath — плоский список подразделений в CMS API.
const divisionsAllPath = cmsapi.PathDivisions + "/all"

// divisionProtos — прототипы элементов вложенных списков подразделения.
var divisionProtos = map[string]forms.Prototype{
	"subDivisions":                      func() any { return model.NewSubDivision() },
	"subDivisions[].keyFeatures":        func() any { return "" },
	"subDivisions[].globalPartners":     func() any { return model.Partner{} },
	"subDivisions[].brands":             func() any { return model.Partner{} },
	"subDivisions[].sections":           func() any { return model.Section{} },
	"subDivisions[].responsiblePersons": func() any { return model.ResponsiblePerson{} },
	"contactUs.contacts":                func() any { return model.ContactPerson{} },
}

// DivisionsHandler — обработчик страниц подразделений.
type DivisionsHandler struct {
	base
	*formHandler[model.Division]
}

// NewDivisionsHandler создаёт DivisionsHandler.
func NewDivisionsHandler(deps *Deps) *DivisionsHandler {
	h := &DivisionsHandler{base: newBase(deps, "ui.divisions")}
	api := deps.API
	h.formHandler = newFormHandler(deps, formDef[model.Division]{
		resource:  "divisions",
		active:    "divisions",
		titleNew:  "divisions.add",
		titleEdit: "divisions.edit",
		back:      divisionsPath,
		protos:    divisionProtos,
		options: func(context.Context) map[string][]string {
			return map[string][]string{"status": {model.DivisionActive, model.DivisionInactive}}
		},
		load: func(ctx context.Context, ownerKey, id string) (model.Division, string, error) {
			if id == "" {
				return model.NewDivision(), "", nil
			}
			d, err := findItem[model.Division](ctx, deps.Lists, ownerKey, "divisions", h.fetchAll, func(d model.Division) bool {
				return d.DivisionsID == id
			})
			if err != nil {
				return model.Division{}, "", err
			}
			d.EnsureLists()
			return d, id, nil
		},
		save: func(ctx context.Context, id string, d model.Division) error {
			d.EnsureLists()
			d.Slug = slug.Clean(d.Slug)
			if d.Slug == "" {
				d.Slug = slug.Make(d.DivisionsName)
			}
			if id == "" {
				d.DivisionsID = strings.ToUpper(strings.TrimSpace(d.DivisionsID))
				return api.Divisions.Create(ctx, d)
			}
			d.DivisionsID = id
			return api.Divisions.Update(ctx, id, d)
		},
		loadFailed: msgLoadData,
		saveFailed: msgSaveDivision,
		saved:      func(bool) string { return msgDivisionSaved },
		page:       func(d pages.FormData[model.Division]) templ.Component { return pages.DivisionForm(d) },
	})
	return h
}

// fetchAll загружает плоский список подразделений.
func (h *DivisionsHandler) fetchAll(ctx context.Context) ([]model.Division, error) {
	return h.deps.API.Divisions.ListAt(ctx, divisionsAllPath)
}

// HandleList обрабатывает GET /admin/divisions.
func (h *DivisionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	coll, items, ok := collectionItems[model.Division](h.base, w, r, "divisions", h.fetchAll)
	if !ok {
		return
	}
	data := pages.ListData[model.Division]{
		Layout: h.base.layout(w, r, "divisions.heading", "divisions"),
		Items:  items,
		Total:  len(items),
		Error:  loadError(r, coll.Err(), msgLoadData),
	}
	h.base.render(w, r, "divisions", pages.Divisions(data))
}

// HandleToggleStatus обрабатывает POST /admin/divisions/{id}/toggle-status.
func (h *DivisionsHandler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:     cmsapi.ActionToggleStatus,
		resource: "divisions",
		back:     divisionsPath,
		failed:   msgToggleStatus,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Divisions.Toggle(ctx, id, cmsapi.ActionToggleStatus)
	})
}

// HandleDelete обрабатывает POST /admin/divisions/{id}/delete.
func (h *DivisionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:      "delete",
		resource:  "divisions",
		back:      divisionsPath,
		question:  askDeleteDivision,
		failed:    msgDeleteDivision,
		succeeded: msgDivisionDeleted,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Divisions.Delete(ctx, id)
	})
}
