// admins.go — страницы администраторов и профиля текущего
// администратора: список, форма с проверкой пароля, переключение
// лицензии и удаление.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/forms"
	"github.com/bigkaa/cms-admin/internal/ui/flash"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const (
	adminsPath  = "/admin/admins"
	profilePath = "/admin/profile"
)

// AdminsHandler — обработчик страниц администраторов.
type AdminsHandler struct {
	base
	*formHandler[model.AdminForm]
}

// NewAdminsHandler создаёт AdminsHandler.
func NewAdminsHandler(deps *Deps) *AdminsHandler {
	h := &AdminsHandler{base: newBase(deps, "ui.admins")}
	api := deps.API
	h.formHandler = newFormHandler(deps, formDef[model.AdminForm]{
		resource:  "admins",
		active:    "admins",
		titleNew:  "admins.new",
		titleEdit: "admins.edit",
		back:      adminsPath,
		load: func(ctx context.Context, ownerKey, id string) (model.AdminForm, string, error) {
			if id == "" {
				return model.AdminForm{License: true}, "", nil
			}
			a, err := h.find(ctx, ownerKey, id)
			if err != nil {
				return model.AdminForm{}, "", err
			}
			return model.AdminForm{Username: a.Username, Email: a.Email, License: a.License}, id, nil
		},
		validate: forms.ValidateAdmin,
		save: func(ctx context.Context, id string, f model.AdminForm) error {
			if id == "" {
				return api.Admins.Create(ctx, f.Payload())
			}
			return api.Admins.Update(ctx, id, f.Payload())
		},
		loadFailed: msgLoadData,
		saveFailed: msgSaveAdmin,
		saved:      nameSaved(msgAdminCreated, msgAdminUpdated),
		page:       func(d pages.FormData[model.AdminForm]) templ.Component { return pages.AdminForm(d) },
	})
	return h
}

// find ищет администратора в списке сессии.
func (h *AdminsHandler) find(ctx context.Context, ownerKey, id string) (model.Admin, error) {
	return findItem[model.Admin](ctx, h.deps.Lists, ownerKey, "admins", h.deps.API.Admins.List, func(a model.Admin) bool {
		return strconv.FormatInt(a.ID, 10) == id
	})
}

// HandleList обрабатывает GET /admin/admins.
func (h *AdminsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	coll, items, ok := collectionItems[model.Admin](h.base, w, r, "admins", h.deps.API.Admins.List)
	if !ok {
		return
	}
	data := pages.ListData[model.Admin]{
		Layout: h.base.layout(w, r, "admins.heading", "admins"),
		Items:  items,
		Total:  len(items),
		Error:  loadError(r, coll.Err(), msgLoadData),
	}
	h.base.render(w, r, "admins", pages.Admins(data))
}

// HandleToggleLicense обрабатывает POST /admin/admins/{id}/toggle-license.
// Лицензия меняется полным обновлением {username, email, license}.
func (h *AdminsHandler) HandleToggleLicense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.find(r.Context(), owner(r), id)
	if h.base.expired(w, r, err) {
		return
	}
	if err != nil {
		h.base.logger.Warn("Администратор не найден",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		done(w, r, adminsPath, flash.KindError, msgUpdateLicense)
		return
	}

	succeeded := msgLicenseEnabled
	if a.License {
		succeeded = msgLicenseDisabled
	}
	payload := model.AdminPayload{Username: a.Username, Email: a.Email, License: !a.License}
	h.base.mutate(w, r, action{
		name:      "toggle-license",
		resource:  "admins",
		back:      adminsPath,
		failed:    msgUpdateLicense,
		succeeded: succeeded,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Admins.Update(ctx, id, payload)
	})
}

// HandleDelete обрабатывает POST /admin/admins/{id}/delete.
func (h *AdminsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.base.mutate(w, r, action{
		name:      "delete",
		resource:  "admins",
		back:      adminsPath,
		question:  askDeleteAdmin,
		failed:    msgDeleteAdmin,
		succeeded: msgAdminDeleted,
	}, id, func(ctx context.Context) error {
		return h.deps.API.Admins.Delete(ctx, id)
	})
}

// ProfileHandler — форма профиля текущего администратора.
// Пароль меняется, только если он введён.
type ProfileHandler struct {
	*formHandler[model.AdminForm]
}

// NewProfileHandler создаёт ProfileHandler.
func NewProfileHandler(deps *Deps) *ProfileHandler {
	api := deps.API
	def := formDef[model.AdminForm]{
		resource:  "profile",
		active:    "profile",
		titleNew:  "profile.heading",
		titleEdit: "profile.heading",
		back:      profilePath,
		load: func(ctx context.Context, _, _ string) (model.AdminForm, string, error) {
			p, err := api.Profile.Get(ctx)
			if err != nil {
				return model.AdminForm{}, "", err
			}
			return model.AdminForm{Username: p.Username, Email: p.Email, License: p.License}, "profile", nil
		},
		validate: func(f model.AdminForm, _ bool) error {
			return forms.ValidateProfile(f)
		},
		save: func(ctx context.Context, _ string, f model.AdminForm) error {
			return api.Profile.Put(ctx, f.Payload())
		},
		loadFailed: msgLoadProfile,
		saveFailed: msgUpdateProfile,
		saved:      func(bool) string { return msgProfileUpdated },
		page:       func(d pages.FormData[model.AdminForm]) templ.Component { return pages.ProfileForm(d) },
	}
	return &ProfileHandler{formHandler: newFormHandler(deps, def)}
}
