// ui.go — маршруты страниц панели /admin/*.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	uihandlers "github.com/bigkaa/cms-admin/internal/ui/handlers"
	"github.com/bigkaa/cms-admin/internal/ui/i18n"
	"github.com/bigkaa/cms-admin/internal/ui/static"
)

// UIComponents — обработчики страниц панели.
type UIComponents struct {
	Deps *uihandlers.Deps

	Auth       *uihandlers.AuthHandler
	Dashboard  *uihandlers.DashboardHandler
	Blogs      *uihandlers.BlogsHandler
	News       *uihandlers.NewsHandler
	Products   *uihandlers.ProductsHandler
	Brands     *uihandlers.BrandsHandler
	Categories *uihandlers.CategoriesHandler
	Gallery    *uihandlers.GalleryHandler
	Divisions  *uihandlers.DivisionsHandler
	Admins     *uihandlers.AdminsHandler
	Profile    *uihandlers.ProfileHandler
	About      *uihandlers.AboutHandler
	Contact    *uihandlers.ContactHandler
	Home       *uihandlers.HomeHandler
	Files      *uihandlers.FilesHandler
}

// NewUIComponents создаёт обработчики всех страниц с общими зависимостями.
func NewUIComponents(deps *uihandlers.Deps) *UIComponents {
	return &UIComponents{
		Deps:       deps,
		Auth:       uihandlers.NewAuthHandler(deps),
		Dashboard:  uihandlers.NewDashboardHandler(deps),
		Blogs:      uihandlers.NewBlogsHandler(deps),
		News:       uihandlers.NewNewsHandler(deps),
		Products:   uihandlers.NewProductsHandler(deps),
		Brands:     uihandlers.NewBrandsHandler(deps),
		Categories: uihandlers.NewCategoriesHandler(deps),
		Gallery:    uihandlers.NewGalleryHandler(deps),
		Divisions:  uihandlers.NewDivisionsHandler(deps),
		Admins:     uihandlers.NewAdminsHandler(deps),
		Profile:    uihandlers.NewProfileHandler(deps),
		About:      uihandlers.NewAboutHandler(deps),
		Contact:    uihandlers.NewContactHandler(deps),
		Home:       uihandlers.NewHomeHandler(deps),
		Files:      uihandlers.NewFilesHandler(deps),
	}
}

// formRoutes — обработчики черновика формы ресурса.
type formRoutes interface {
	HandleNew(w http.ResponseWriter, r *http.Request)
	HandleEdit(w http.ResponseWriter, r *http.Request)
	HandleShow(w http.ResponseWriter, r *http.Request)
	HandleSave(w http.ResponseWriter, r *http.Request)
	HandleItems(w http.ResponseWriter, r *http.Request)
	HandleUpload(w http.ResponseWriter, r *http.Request)
}

// mountUI регистрирует статику и страницы панели.
func mountUI(router chi.Router, ui *UIComponents) {
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

	router.Route("/admin", func(r chi.Router) {
		r.Use(i18n.Middleware())

		// Без сессии: вход, выход, язык
		r.Get("/login", ui.Auth.HandleLoginPage)
		r.Post("/login", ui.Auth.HandleLogin)
		r.Post("/logout", ui.Auth.HandleLogout)
		r.Post("/language", uihandlers.HandleSetLanguage)

		r.Group(func(r chi.Router) {
			r.Use(ui.Deps.Guard.Middleware())

			r.Get("/", ui.Dashboard.HandleDashboard)

			r.Get("/blogs", ui.Blogs.HandleList)
			r.Post("/blogs/{id}/toggle-publish", ui.Blogs.HandleTogglePublish)
			r.Post("/blogs/{id}/delete", ui.Blogs.HandleDelete)
			mountForm(r, "blogs", ui.Blogs, false)

			r.Get("/news", ui.News.HandleList)
			r.Post("/news/{id}/toggle-publish", ui.News.HandleTogglePublish)
			r.Post("/news/{id}/toggle-featured", ui.News.HandleToggleFeatured)
			r.Post("/news/{id}/delete", ui.News.HandleDelete)
			mountForm(r, "news", ui.News, false)

			r.Get("/products", ui.Products.HandleList)
			r.Post("/products/{id}/delete", ui.Products.HandleDelete)
			mountForm(r, "products", ui.Products, false)

			r.Get("/brands", ui.Brands.HandleList)
			r.Post("/brands/{id}/delete", ui.Brands.HandleDelete)
			mountForm(r, "brands", ui.Brands, false)

			r.Get("/categories", ui.Categories.HandleList)
			r.Post("/categories/{id}/delete", ui.Categories.HandleDelete)
			mountForm(r, "categories", ui.Categories, false)

			r.Get("/gallery", ui.Gallery.HandleList)
			r.Post("/gallery/{id}/move", ui.Gallery.HandleMove)
			r.Post("/gallery/{id}/delete", ui.Gallery.HandleDelete)
			mountForm(r, "gallery", ui.Gallery, false)

			r.Get("/divisions", ui.Divisions.HandleList)
			r.Post("/divisions/{id}/toggle-status", ui.Divisions.HandleToggleStatus)
			r.Post("/divisions/{id}/delete", ui.Divisions.HandleDelete)
			mountForm(r, "divisions", ui.Divisions, false)

			r.Get("/admins", ui.Admins.HandleList)
			r.Post("/admins/{id}/toggle-license", ui.Admins.HandleToggleLicense)
			r.Post("/admins/{id}/delete", ui.Admins.HandleDelete)
			mountForm(r, "admins", ui.Admins, false)

			mountForm(r, "profile", ui.Profile, true)
			mountForm(r, "about", ui.About, true)
			mountForm(r, "contact", ui.Contact, true)
			mountForm(r, "home", ui.Home, true)

			r.Get("/files", ui.Files.HandleList)
			r.Post("/files/cleanup", ui.Files.HandleCleanup)
		})
	})
}

// mountForm регистрирует маршруты черновика ресурса res.
// Форма singleton-раздела открывается по GET /admin/{res}.
func mountForm(r chi.Router, res string, f formRoutes, singleton bool) {
	base := "/" + res
	if singleton {
		r.Get(base, f.HandleNew)
	} else {
		r.Get(base+"/new", f.HandleNew)
		r.Get(base+"/{id}/edit", f.HandleEdit)
	}

	draft := base + "/draft/{draft}"
	r.Get(draft, f.HandleShow)
	r.Post(draft, f.HandleSave)
	r.Post(draft+"/items", f.HandleItems)
	r.Post(draft+"/upload", f.HandleUpload)
}
