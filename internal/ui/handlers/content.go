// content.go — формы singleton-разделов сайта: «О компании»,
// контакты и главная страница. Раздел, которого ещё нет в CMS API
// (404), открывается пустой формой.
package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/forms"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const (
	aboutPath   = "/admin/about"
	contactPath = "/admin/contact"
	homePath    = "/admin/home"
)

// singletonID — идентификатор черновика singleton-раздела.
func singletonID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// dataSaved — сообщение об успешном сохранении раздела.
func dataSaved(bool) string { return msgDataSaved }

// AboutHandler — форма раздела «О компании».
type AboutHandler struct {
	*formHandler[model.AboutForm]
}

// NewAboutHandler создаёт AboutHandler.
func NewAboutHandler(deps *Deps) *AboutHandler {
	api := deps.API
	def := formDef[model.AboutForm]{
		resource:  "about",
		active:    "about",
		titleNew:  "about.heading",
		titleEdit: "about.heading",
		back:      aboutPath,
		protos: map[string]forms.Prototype{
			"managementTeam": func() any { return model.TeamMember{} },
			"milestones":     func() any { return model.NewMilestone() },
		},
		load: func(ctx context.Context, _, _ string) (model.AboutForm, string, error) {
			a, err := api.About.Get(ctx)
			if errors.Is(err, cmsapi.ErrNotFound) {
				return model.AboutFormFrom(model.AboutUs{}), singletonID(0), nil
			}
			if err != nil {
				return model.AboutForm{}, "", err
			}
			return model.AboutFormFrom(*a), singletonID(a.ID), nil
		},
		save: func(ctx context.Context, id string, f model.AboutForm) error {
			numID, _ := strconv.ParseInt(id, 10, 64)
			payload, err := f.ToAboutUs(numID)
			if err != nil {
				return err
			}
			return api.About.Put(ctx, payload)
		},
		loadFailed: msgLoadData,
		saveFailed: msgSaveData,
		saved:      dataSaved,
		page:       func(d pages.FormData[model.AboutForm]) templ.Component { return pages.AboutForm(d) },
	}
	return &AboutHandler{formHandler: newFormHandler(deps, def)}
}

// ContactHandler — форма контактов компании.
type ContactHandler struct {
	*formHandler[model.Contact]
}

// NewContactHandler создаёт ContactHandler.
func NewContactHandler(deps *Deps) *ContactHandler {
	api := deps.API
	def := formDef[model.Contact]{
		resource:  "contact",
		active:    "contact",
		titleNew:  "contact.heading",
		titleEdit: "contact.heading",
		back:      contactPath,
		load: func(ctx context.Context, _, _ string) (model.Contact, string, error) {
			c, err := api.Contact.Get(ctx)
			if errors.Is(err, cmsapi.ErrNotFound) {
				return model.Contact{}, singletonID(0), nil
			}
			if err != nil {
				return model.Contact{}, "", err
			}
			return *c, singletonID(c.ID), nil
		},
		save: func(ctx context.Context, _ string, c model.Contact) error {
			return api.Contact.Put(ctx, c)
		},
		loadFailed: msgLoadData,
		saveFailed: msgSaveData,
		saved:      dataSaved,
		page:       func(d pages.FormData[model.Contact]) templ.Component { return pages.ContactForm(d) },
	}
	return &ContactHandler{formHandler: newFormHandler(deps, def)}
}

// HomeHandler — форма главной страницы сайта.
type HomeHandler struct {
	*formHandler[model.HomeContent]
}

// NewHomeHandler создаёт HomeHandler.
func NewHomeHandler(deps *Deps) *HomeHandler {
	api := deps.API
	partner := func() any { return model.Partner{} }
	def := formDef[model.HomeContent]{
		resource:  "home",
		active:    "home",
		titleNew:  "home.heading",
		titleEdit: "home.heading",
		back:      homePath,
		protos: map[string]forms.Prototype{
			"ourBrands":       partner,
			"ourCustomers":    partner,
			"ourPlatforms":    partner,
			"recommendations": func() any { return model.NewRecommendation() },
		},
		load: func(ctx context.Context, _, _ string) (model.HomeContent, string, error) {
			h, err := api.Home.Get(ctx)
			if errors.Is(err, cmsapi.ErrNotFound) {
				h, err = &model.HomeContent{}, nil
			}
			if err != nil {
				return model.HomeContent{}, "", err
			}
			h.EnsureLists()
			return *h, singletonID(h.ID), nil
		},
		save: func(ctx context.Context, _ string, h model.HomeContent) error {
			h.EnsureLists()
			return api.Home.Put(ctx, h)
		},
		loadFailed: msgLoadData,
		saveFailed: msgSaveData,
		saved:      dataSaved,
		page:       func(d pages.FormData[model.HomeContent]) templ.Component { return pages.HomeForm(d) },
	}
	return &HomeHandler{formHandler: newFormHandler(deps, def)}
}
