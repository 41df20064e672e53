package pages

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/ui/flash"
)

func testLayout(title, active string) Layout {
	return Layout{
		Lang:         "en",
		Title:        title,
		Active:       active,
		User:         "admin",
		Flash:        &flash.Message{Kind: flash.KindSuccess, Text: "Blog saved"},
		FlashDismiss: 3 * time.Second,
		APIBase:      "http://api.test",
	}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("ошибка рендеринга: %v", err)
	}
	return buf.String()
}

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestPages_Render(t *testing.T) {
	expires := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	active := false
	pager := &Pager{
		Path:          "/admin/blogs",
		Params:        url.Values{"size": {"10"}},
		PageNumber:    0,
		PageSize:      10,
		TotalPages:    3,
		TotalElements: 25,
		Start:         1,
		End:           10,
		CanNext:       true,
		Window:        []int{0, 1, 2},
	}

	tests := []struct {
		name string
		page templ.Component
		want []string
	}{
		{
			"вход",
			Login(LoginData{Layout: Layout{Lang: "en", Title: "login.heading"}, Username: "bob", Error: "Bad credentials", Expired: true}),
			[]string{`value="bob"`, "Bad credentials"},
		},
		{
			"dashboard",
			Dashboard(DashboardData{
				Layout:         testLayout("dashboard.heading", "dashboard"),
				Email:          "admin@example.com",
				Sections:       Navigation[1:],
				JournalEnabled: true,
				Activity: []model.Activity{{
					OccurredAt: expires, Username: "admin", Action: "delete",
					Resource: "blogs", ResourceID: "7", Outcome: model.OutcomeSuccess,
				}},
				Health:       []HealthItem{{Name: "cms-api", Healthy: true}},
				TokenExpires: &expires,
			}),
			[]string{"admin@example.com", "cms-api", "/admin/blogs", `data-autodismiss="3000"`},
		},
		{
			"подтверждение",
			Confirm(ConfirmData{Layout: testLayout("action.confirm", ""), Message: "Delete it?", Action: "/admin/blogs/7/delete", Cancel: "/admin/blogs"}),
			[]string{"Delete it?", `action="/admin/blogs/7/delete"`, `name="confirmed"`},
		},
		{
			"ошибка загрузки",
			Error(ErrorData{Layout: testLayout("blogs.edit", "blogs"), Error: &LoadError{Message: "Failed to load data", RetryURL: "/admin/blogs/7/edit"}, Back: "/admin/blogs"}),
			[]string{"Failed to load data", "/admin/blogs/7/edit"},
		},
		{
			"блоги",
			Blogs(ListData[model.Blog]{
				Layout:  testLayout("blogs.heading", "blogs"),
				Items:   []model.Blog{{BlogID: 7, Topic: "Solar panels", Division: "Solar", Published: true, ViewCount: 12}},
				Total:   1,
				Pager:   pager,
				Filters: map[string]string{"division": "Solar"},
				Options: map[string][]string{"division": model.BlogDivisions},
			}),
			[]string{"Solar panels", "/admin/blogs/7/delete", "page=1", "selected"},
		},
		{
			"новости",
			News(ListData[model.News]{
				Layout: testLayout("news.heading", "news"),
				Items:  []model.News{{ID: 3, Title: "Launch", ThumbnailURL: "/uploads/t.png", IsPublished: true, IsFeatured: true}},
				Total:  1,
			}),
			[]string{"Launch", "http://api.test/uploads/t.png", "/admin/news/3/toggle-featured"},
		},
		{
			"товары",
			Products(ListData[model.Product]{
				Layout:  testLayout("products.heading", "products"),
				Items:   []model.Product{{ID: 5, Name: "Inverter", Brand: "Acme", Category: "Power", Price: 199.5}},
				Total:   1,
				Options: map[string][]string{"brand": {"Acme"}, "category": {"Power"}, "size": {"5", "10"}},
				Filters: map[string]string{"size": "10"},
			}),
			[]string{"Inverter", "199.50", "/admin/products/5/edit"},
		},
		{
			"бренды",
			Brands(ListData[model.Brand]{
				Layout: testLayout("brands.heading", "brands"),
				Items:  []model.Brand{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex", Active: &active}},
				Total:  2,
			}),
			[]string{"Acme", "Globex", "status.inactive"},
		},
		{
			"категории без элементов",
			Categories(ListData[model.Category]{Layout: testLayout("categories.heading", "categories")}),
			[]string{"categories.empty"},
		},
		{
			"галерея",
			Gallery(ListData[model.GalleryItem]{
				Layout: testLayout("gallery.heading", "gallery"),
				Items:  []model.GalleryItem{{ID: 1, Title: "First"}, {ID: 2, Title: "Second"}},
				Total:  2,
			}),
			[]string{"First", "/admin/gallery/2/move?dir=up", "disabled"},
		},
		{
			"подразделения",
			Divisions(ListData[model.Division]{
				Layout: testLayout("divisions.heading", "divisions"),
				Items:  []model.Division{{DivisionsID: "SOLAR", DivisionsName: "Solar", Status: model.DivisionActive, SubDivisions: []model.SubDivision{model.NewSubDivision()}}},
				Total:  1,
			}),
			[]string{"/admin/divisions/SOLAR/toggle-status", "action.deactivate"},
		},
		{
			"администраторы",
			Admins(ListData[model.Admin]{
				Layout: testLayout("admins.heading", "admins"),
				Items:  []model.Admin{{ID: 1, Username: "admin", License: true}, {ID: 2, Username: "editor"}},
				Total:  2,
			}),
			[]string{"admins.you", "/admin/admins/2/toggle-license", "action.grant_license"},
		},
		{
			"неиспользуемые файлы",
			Files(FilesData{
				Layout:      testLayout("files.heading", "files"),
				Files:       &model.UnusedFiles{Count: 1, Files: []string{"/uploads/old.png"}},
				ConfirmText: "Delete 1 unused files?",
			}),
			[]string{"http://api.test/uploads/old.png", "Delete 1 unused files?", "/admin/files/cleanup"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, tt.page)
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("в разметке нет %q", want)
				}
			}
		})
	}
}

func TestForms_Render(t *testing.T) {
	form := func(title, active, res string) (Layout, string, string) {
		return testLayout(title, active), "/admin/" + res + "/draft/d1", "/admin/" + res
	}

	division := model.NewDivision()
	division.SubDivisions = []model.SubDivision{model.NewSubDivision()}
	division.SubDivisions[0].KeyFeatures = []string{"Fast"}
	division.SubDivisions[0].Brands = []model.Partner{{Name: "Acme"}}

	home := model.HomeContent{}
	home.EnsureLists()
	home.Recommendations = []model.Recommendation{model.NewRecommendation()}

	l, base, cancel := form("blogs.add", "blogs", "blogs")
	blog := BlogForm(FormData[model.Blog]{Layout: l, Base: base, Cancel: cancel, Value: model.Blog{Topic: "Hello", Division: "Solar", ImageURL: "/uploads/a.png"}, Options: map[string][]string{"division": model.BlogDivisions}, UploadError: "Failed to upload image"})

	l, base, cancel = form("news.add", "news", "news")
	news := NewsForm(FormData[model.News]{Layout: l, Base: base, Cancel: cancel, Value: model.News{Title: "Launch", Category: "EVENTS"}, Options: map[string][]string{"category": model.NewsCategories}})

	l, base, cancel = form("products.add", "products", "products")
	product := ProductForm(FormData[model.ProductForm]{Layout: l, Base: base, Cancel: cancel, Editing: true, Value: model.ProductForm{Name: "Inverter", Price: "abc"}, Error: "Price must be a number", Uploading: true})

	l, base, cancel = form("brands.new", "brands", "brands")
	name := NameForm(FormData[model.NameForm]{Layout: l, Base: base, Cancel: cancel, Value: model.NameForm{Name: "Acme"}})

	l, base, cancel = form("gallery.add", "gallery", "gallery")
	gallery := GalleryForm(FormData[model.GalleryItem]{Layout: l, Base: base, Cancel: cancel, Value: model.GalleryItem{Title: "Photo", DisplayOrder: 2}})

	l, base, cancel = form("divisions.add", "divisions", "divisions")
	div := DivisionForm(FormData[model.Division]{Layout: l, Base: base, Cancel: cancel, Value: division, Options: map[string][]string{"status": {model.DivisionActive, model.DivisionInactive}}})

	l, base, cancel = form("admins.new", "admins", "admins")
	admin := AdminForm(FormData[model.AdminForm]{Layout: l, Base: base, Cancel: cancel, Value: model.AdminForm{Username: "editor", License: true}})

	l, base, cancel = form("profile.heading", "profile", "profile")
	profile := ProfileForm(FormData[model.AdminForm]{Layout: l, Base: base, Cancel: cancel, Editing: true, Value: model.AdminForm{Username: "admin"}})

	l, base, cancel = form("about.heading", "about", "about")
	about := AboutForm(FormData[model.AboutForm]{Layout: l, Base: base, Cancel: cancel, Value: model.AboutForm{
		CompanyName:    "Acme",
		ManagementTeam: []model.TeamMember{{Name: "Jane"}},
		Milestones:     []model.Milestone{{Year: 2020, Description: "Founded"}},
	}})

	l, base, cancel = form("contact.heading", "contact", "contact")
	contact := ContactForm(FormData[model.Contact]{Layout: l, Base: base, Cancel: cancel, Value: model.Contact{Email: "info@example.com"}})

	l, base, cancel = form("home.heading", "home", "home")
	homeForm := HomeForm(FormData[model.HomeContent]{Layout: l, Base: base, Cancel: cancel, Value: home})

	tests := []struct {
		name string
		page templ.Component
		want []string
	}{
		{"блог", blog, []string{`value="Hello"`, "_file.imageUrl", "/admin/blogs/draft/d1/upload", "Failed to upload image", "http://api.test/uploads/a.png"}},
		{"новость", news, []string{`value="Launch"`, "EVENTS", "_file.thumbnailUrl"}},
		{"товар", product, []string{"Price must be a number", "_file.imageUrl5", "data-submit disabled"}},
		{"справочник", name, []string{`value="Acme"`}},
		{"галерея", gallery, []string{`value="Photo"`, `value="2"`}},
		{"подразделение", div, []string{
			"subDivisions[0].keyFeatures[0]",
			"subDivisions[0].brands[0].name",
			"op=add&amp;path=contactUs.contacts",
			"op=remove&amp;path=subDivisions&amp;index=0",
			"contactUs.location.latitude",
		}},
		{"администратор", admin, []string{`value="editor"`, `name="confirmPassword"`, "required"}},
		{"профиль", profile, []string{`value="admin"`, "profile.change_password"}},
		{"о компании", about, []string{"managementTeam[0].name", "milestones[0].year", `value="2020"`}},
		{"контакты", contact, []string{"info@example.com", "facebookUrl"}},
		{"главная", homeForm, []string{"recommendations[0].rating", `<option value="5" selected>`, "path=ourBrands"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, tt.page)
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("в разметке нет %q", want)
				}
			}
		})
	}
}

func TestFuncs(t *testing.T) {
	path := funcs["path"].(func(...any) string)
	tests := []struct {
		name  string
		parts []any
		want  string
	}{
		{"поле верхнего уровня", []any{"name"}, "name"},
		{"элемент списка", []any{"ourBrands", 2, "name"}, "ourBrands[2].name"},
		{"вложенный список", []any{"subDivisions", 0, "keyFeatures", 1}, "subDivisions[0].keyFeatures[1]"},
		{"составной префикс", []any{"contactUs.contacts", 0, "email"}, "contactUs.contacts[0].email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := path(tt.parts...); got != tt.want {
				t.Errorf("path = %q, ожидается %q", got, tt.want)
			}
		})
	}

	truncate := funcs["truncate"].(func(int, string) string)
	if got := truncate(3, "привет"); got != "при…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate(10, "short"); got != "short" {
		t.Errorf("truncate = %q", got)
	}

	dict := funcs["dict"].(func(...any) (map[string]any, error))
	if _, err := dict("a"); err == nil {
		t.Error("dict с нечётным числом аргументов должен вернуть ошибку")
	}
	if _, err := dict(1, "a"); err == nil {
		t.Error("dict с нестроковым ключом должен вернуть ошибку")
	}
}

func TestNewPager(t *testing.T) {
	if p := NewPager[model.Blog]("/admin/blogs", listing.View[model.Blog]{}); p != nil {
		t.Fatalf("без данных ожидается nil, получено %+v", p)
	}

	view := listing.View[model.Blog]{
		Query: model.ListQuery{PageNumber: 1, PageSize: 10, Filters: map[string]string{"division": "Solar", "keyword": ""}},
		Result: &model.PageResult[model.Blog]{
			Content:       make([]model.Blog, 10),
			PageNumber:    1,
			PageSize:      10,
			TotalElements: 25,
			TotalPages:    3,
		},
	}
	p := NewPager("/admin/blogs", view)
	if p.Start != 11 || p.End != 20 {
		t.Errorf("диапазон = %d–%d, ожидается 11–20", p.Start, p.End)
	}
	if !p.CanPrev || !p.CanNext {
		t.Errorf("CanPrev=%v CanNext=%v, ожидаются оба true", p.CanPrev, p.CanNext)
	}
	if p.LastPage() != 2 {
		t.Errorf("LastPage = %d", p.LastPage())
	}

	href, err := url.Parse(p.Href(2))
	if err != nil {
		t.Fatal(err)
	}
	q := href.Query()
	if href.Path != "/admin/blogs" || q.Get("page") != "2" || q.Get("size") != "10" || q.Get("division") != "Solar" {
		t.Errorf("Href = %q", p.Href(2))
	}
	if q.Has("keyword") {
		t.Error("пустой фильтр не должен попадать в ссылку")
	}
}
