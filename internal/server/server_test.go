package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bigkaa/cms-admin/internal/api/handlers"
	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/domain/slug"
	"github.com/bigkaa/cms-admin/internal/forms"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/service"
	"github.com/bigkaa/cms-admin/internal/session"
	"github.com/bigkaa/cms-admin/internal/ui/auth"
	uihandlers "github.com/bigkaa/cms-admin/internal/ui/handlers"
	uimiddleware "github.com/bigkaa/cms-admin/internal/ui/middleware"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeCMS — CMS API в памяти: вход, блоги, каталог, галерея,
// администраторы, контакты, загрузка и неиспользуемые файлы.
type fakeCMS struct {
	*httptest.Server

	revoked      atomic.Bool
	cleaned      atomic.Int32
	brandLoads   atomic.Int32
	galleryLoads atomic.Int32
	reorderFails atomic.Bool

	mu             sync.Mutex
	deleted        []string
	created        []model.Blog
	gallery        []model.GalleryItem
	reorders       [][]int64
	productQueries []url.Values
	adminUpdates   map[string]model.AdminPayload
	contacts       []model.Contact
}

func newFakeCMS(t *testing.T) *fakeCMS {
	t.Helper()
	f := &fakeCMS{
		gallery: []model.GalleryItem{
			{ID: 1, Title: "Roof"},
			{ID: 2, Title: "Farm"},
			{ID: 3, Title: "Plant"},
		},
		adminUpdates: make(map[string]model.AdminPayload),
	}
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+cmsapi.PathLogin, func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin" || req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		writeJSON(w, http.StatusOK, model.LoginResponse{Token: "tok-1", Username: "admin", Email: "admin@example.com"})
	})
	mux.HandleFunc("GET "+cmsapi.PathBlogs, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"content": []model.Blog{
				{BlogID: 7, Topic: "Solar roofs", Division: "Solar", Date: "2026-01-02", Published: true},
			},
			"pageNumber":    0,
			"pageSize":      10,
			"totalElements": 1,
			"totalPages":    1,
		})
	}))
	mux.HandleFunc("POST "+cmsapi.PathBlogs, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		var b model.Blog
		_ = json.NewDecoder(r.Body).Decode(&b)
		f.mu.Lock()
		f.created = append(f.created, b)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, b)
	}))
	mux.HandleFunc("DELETE "+cmsapi.PathBlogs+"/{id}", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.deleted = append(f.deleted, r.PathValue("id"))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("POST "+cmsapi.PathUpload, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "no file"})
			return
		}
		writeJSON(w, http.StatusOK, model.UploadResponse{URL: "/uploads/cover.png"})
	}))
	f.catalogRoutes(mux)
	f.galleryRoutes(mux)
	f.adminRoutes(mux)
	mux.HandleFunc("GET "+cmsapi.PathUnusedFiles, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.UnusedFiles{Count: 2, Files: []string{"/uploads/a.png", "/uploads/b.png"}})
	}))
	mux.HandleFunc("DELETE "+cmsapi.PathUnusedFiles, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		f.cleaned.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted 2 files"})
	}))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// catalogRoutes — бренды, категории и постраничные товары (23 шт.).
func (f *fakeCMS) catalogRoutes(mux *http.ServeMux) {
	active, inactive := true, false
	mux.HandleFunc("GET "+cmsapi.PathBrands, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		f.brandLoads.Add(1)
		writeJSON(w, http.StatusOK, []model.Brand{
			{ID: 1, Name: "Acme", Active: &active},
			{ID: 2, Name: "Bolt", Active: &inactive},
		})
	}))
	mux.HandleFunc("GET "+cmsapi.PathCategories, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Category{{ID: 1, Name: "Panels"}})
	}))
	mux.HandleFunc("GET "+cmsapi.PathProducts, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.mu.Lock()
		f.productQueries = append(f.productQueries, q)
		f.mu.Unlock()

		const total = 23
		page, _ := strconv.Atoi(q.Get("page"))
		size, _ := strconv.Atoi(q.Get("size"))
		if size < 1 {
			size = 10
		}
		writeJSON(w, http.StatusOK, model.PageResult[model.Product]{
			Content:       []model.Product{{ID: int64(page + 1), Name: fmt.Sprintf("Panel page %d", page+1)}},
			PageNumber:    page,
			PageSize:      size,
			TotalElements: total,
			TotalPages:    (total + size - 1) / size,
		})
	}))
}

// galleryRoutes — галерея с сохранением порядка; reorderFails
// заставляет сохранение порядка отвечать 500.
func (f *fakeCMS) galleryRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+cmsapi.PathGallery, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		f.galleryLoads.Add(1)
		f.mu.Lock()
		items := append([]model.GalleryItem(nil), f.gallery...)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, items)
	}))
	mux.HandleFunc("POST "+cmsapi.PathGallery+"/reorder", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		if f.reorderFails.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var req model.ReorderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.reorders = append(f.reorders, req.ItemIDs)
		byID := make(map[int64]model.GalleryItem, len(f.gallery))
		for _, g := range f.gallery {
			byID[g.ID] = g
		}
		f.gallery = f.gallery[:0]
		for _, id := range req.ItemIDs {
			f.gallery = append(f.gallery, byID[id])
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

// adminRoutes — администраторы и контакты. Контакты ещё не созданы:
// GET отвечает 404.
func (f *fakeCMS) adminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+cmsapi.PathAdmins, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Admin{
			{ID: 3, Username: "ivan", Email: "ivan@example.com", License: false},
			{ID: 4, Username: "olga", Email: "olga@example.com", License: true},
		})
	}))
	mux.HandleFunc("POST "+cmsapi.PathAdmins, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		var p model.AdminPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.mu.Lock()
		f.adminUpdates["new"] = p
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	mux.HandleFunc("PUT "+cmsapi.PathAdmins+"/{id}", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		var p model.AdminPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.mu.Lock()
		f.adminUpdates[r.PathValue("id")] = p
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("GET "+cmsapi.PathContact, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Contact not found"})
	}))
	mux.HandleFunc("PUT "+cmsapi.PathContact, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		var c model.Contact
		_ = json.NewDecoder(r.Body).Decode(&c)
		f.mu.Lock()
		f.contacts = append(f.contacts, c)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, c)
	}))
}

// snapshot копирует записанные fakeCMS запросы под блокировкой.
func snapshot[T any](f *fakeCMS, src *[]T) []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T(nil), (*src)...)
}

// adminUpdate возвращает последнее обновление администратора id.
func (f *fakeCMS) adminUpdate(id string) (model.AdminPayload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.adminUpdates[id]
	return p, ok
}

// authorized пропускает только действующий токен.
func (f *fakeCMS) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f.revoked.Load() || r.Header.Get("Authorization") != "Bearer tok-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		next(w, r)
	}
}

// deletedIDs возвращает идентификаторы удалённых блогов.
func (f *fakeCMS) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// browser — клиент с cookie, не следующий за redirect.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

// newTestPanel поднимает панель поверх fakeCMS.
func newTestPanel(t *testing.T) (*fakeCMS, *browser) {
	t.Helper()
	logger := testLogger()
	cms := newFakeCMS(t)

	client, err := cmsapi.New(cmsapi.Options{BaseURL: cms.URL, Timeout: 5 * time.Second}, logger)
	if err != nil {
		t.Fatalf("cmsapi.New: %v", err)
	}
	cookies, err := auth.NewSessionManager("test-secret", false)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	sessions := session.NewManager(client, logger)

	deps := &uihandlers.Deps{
		API:            cmsapi.NewAPI(client),
		Sessions:       sessions,
		Cookies:        cookies,
		Guard:          uimiddleware.NewUIAuth(cookies, sessions, logger),
		Lists:          listing.NewRegistry(16, time.Hour),
		Drafts:         forms.NewStore(16, time.Hour),
		Journal:        service.NoopJournal{},
		PageSize:       10,
		FlashDismiss:   3 * time.Second,
		UploadMaxBytes: 1 << 20,
		Logger:         logger,
	}
	router := NewRouter(logger, handlers.NewHealthHandler(), NewUIComponents(deps))
	panel := httptest.NewServer(router)
	t.Cleanup(panel.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return cms, &browser{
		t:    t,
		base: panel.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// do выполняет запрос и возвращает ответ с прочитанным телом.
func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatal(err)
	}
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	if err != nil {
		b.t.Fatal(err)
	}
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		b.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// login входит под admin и проверяет переход на главную.
func (b *browser) login() {
	b.t.Helper()
	resp, _ := b.post("/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	expectRedirect(b.t, resp, http.StatusSeeOther, session.HomeRoute)
}

func expectRedirect(t *testing.T, resp *http.Response, status int, location string) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("статус = %d, ожидается %d", resp.StatusCode, status)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("Location = %q, ожидается %q", got, location)
	}
}

func expectContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("ответ не содержит %q", w)
		}
	}
}

func TestRouter_HealthAndStatic(t *testing.T) {
	_, b := newTestPanel(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"liveness", "/health/live", http.StatusOK, "ok"},
		{"readiness без проверок", "/health/ready", http.StatusOK, "ok"},
		{"метрики", "/metrics", http.StatusOK, "cms_http_requests_total"},
		{"статика", "/static/css/app.css", http.StatusOK, "--primary"},
		{"неизвестный маршрут", "/nope", http.StatusNotFound, `"error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := b.get(tt.path)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("статус = %d, ожидается %d", resp.StatusCode, tt.wantStatus)
			}
			expectContains(t, body, tt.wantBody)
		})
	}

	resp, _ := b.get("/")
	expectRedirect(t, resp, http.StatusFound, session.HomeRoute)
}

func TestRouter_AnonymousRedirectsToLogin(t *testing.T) {
	_, b := newTestPanel(t)

	resp, _ := b.get("/admin/blogs")
	expectRedirect(t, resp, http.StatusFound, session.LoginRoute)

	req, _ := http.NewRequest(http.MethodGet, b.base+"/admin/blogs", nil)
	req.Header.Set("X-Requested-With", "fetch")
	resp, body := b.do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("статус = %d, ожидается 401", resp.StatusCode)
	}
	if got := resp.Header.Get("HX-Redirect"); got != session.LoginRoute {
		t.Errorf("HX-Redirect = %q", got)
	}
	expectContains(t, body, `"error"`)
}

func TestLogin(t *testing.T) {
	t.Run("неверный пароль", func(t *testing.T) {
		_, b := newTestPanel(t)
		resp, body := b.post("/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("статус = %d, ожидается 200", resp.StatusCode)
		}
		expectContains(t, body, "Bad credentials", `value="admin"`)

		resp, _ = b.get("/admin/blogs")
		expectRedirect(t, resp, http.StatusFound, session.LoginRoute)
	})

	t.Run("вход и выход", func(t *testing.T) {
		_, b := newTestPanel(t)
		b.login()

		resp, _ := b.get("/admin/login")
		expectRedirect(t, resp, http.StatusFound, session.HomeRoute)

		resp, _ = b.post("/admin/logout", nil)
		expectRedirect(t, resp, http.StatusSeeOther, session.LoginRoute)

		_, body := b.get("/admin/login")
		expectContains(t, body, "You have been logged out")

		resp, _ = b.get("/admin/blogs")
		expectRedirect(t, resp, http.StatusFound, session.LoginRoute)
	})
}

func TestBlogs_ListAndDelete(t *testing.T) {
	cms, b := newTestPanel(t)
	b.login()

	resp, body := b.get("/admin/blogs")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", resp.StatusCode)
	}
	expectContains(t, body, "Solar roofs")

	// Без подтверждения показывается вопрос, запрос в API не уходит.
	resp, body = b.post("/admin/blogs/7/delete", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", resp.StatusCode)
	}
	expectContains(t, body, "Are you sure you want to delete this blog?", `name="confirmed"`)
	if got := cms.deletedIDs(); len(got) != 0 {
		t.Fatalf("удаление выполнено без подтверждения: %v", got)
	}

	resp, _ = b.post("/admin/blogs/7/delete", url.Values{"confirmed": {"true"}})
	expectRedirect(t, resp, http.StatusSeeOther, "/admin/blogs")
	deleted := cms.deletedIDs()
	if len(deleted) != 1 || deleted[0] != "7" {
		t.Errorf("удалены %v, ожидается [7]", deleted)
	}

	_, body = b.get("/admin/blogs")
	expectContains(t, body, "Blog deleted successfully")
}

func TestBlogs_ExpiredToken(t *testing.T) {
	cms, b := newTestPanel(t)
	b.login()
	cms.revoked.Store(true)

	resp, _ := b.get("/admin/blogs")
	expectRedirect(t, resp, http.StatusFound, uimiddleware.ExpiredRoute)

	// Cookie сессии очищены: следующий запрос анонимный.
	resp, _ = b.get("/admin/blogs")
	expectRedirect(t, resp, http.StatusFound, session.LoginRoute)
}

// openDraft открывает форму нового блога и возвращает адрес черновика.
func openDraft(t *testing.T, b *browser) string {
	t.Helper()
	resp, _ := b.get("/admin/blogs/new")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("статус = %d, ожидается 303", resp.StatusCode)
	}
	draft := resp.Header.Get("Location")
	if !strings.HasPrefix(draft, "/admin/blogs/draft/") {
		t.Fatalf("Location = %q, ожидается черновик блога", draft)
	}
	return draft
}

func TestBlogs_DraftSave(t *testing.T) {
	cms, b := newTestPanel(t)
	b.login()
	draft := openDraft(t, b)

	resp, body := b.get(draft)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", resp.StatusCode)
	}
	expectContains(t, body, `value="Solar" selected`)

	resp, _ = b.post(draft, url.Values{"topic": {"Wind farms"}})
	expectRedirect(t, resp, http.StatusSeeOther, "/admin/blogs")

	cms.mu.Lock()
	created := append([]model.Blog(nil), cms.created...)
	cms.mu.Unlock()
	if len(created) != 1 {
		t.Fatalf("создано %d блогов, ожидается 1", len(created))
	}
	got := created[0]
	if got.Topic != "Wind farms" || got.Division != "Solar" || !got.Published {
		t.Errorf("отправлен блог %+v", got)
	}
	if got.Slug != slug.Make("Wind farms") {
		t.Errorf("slug = %q, ожидается %q", got.Slug, slug.Make("Wind farms"))
	}

	// Сохранённый черновик удалён.
	resp, _ = b.get(draft)
	expectRedirect(t, resp, http.StatusSeeOther, "/admin/blogs")
}

func TestBlogs_DraftUnknown(t *testing.T) {
	_, b := newTestPanel(t)
	b.login()

	resp, _ := b.get("/admin/blogs/draft/missing")
	expectRedirect(t, resp, http.StatusSeeOther, "/admin/blogs")
	_, body := b.get("/admin/blogs")
	expectContains(t, body, "The form has expired, please start again")
}

func TestBlogs_DraftScriptedUpload(t *testing.T) {
	cms, b := newTestPanel(t)
	b.login()
	draft := openDraft(t, b)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("_file.imageUrl", "cover.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("png"))
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, b.base+draft+"/upload?field=imageUrl", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Requested-With", "fetch")
	resp, body := b.do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200: %s", resp.StatusCode, body)
	}
	var reply struct {
		Field string `json:"field"`
		URL   string `json:"url"`
		Asset string `json:"asset"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		t.Fatalf("ответ не JSON: %v", err)
	}
	if reply.Field != "imageUrl" || reply.URL != "/uploads/cover.png" || reply.Error != "" {
		t.Errorf("ответ = %+v", reply)
	}
	// Превью берёт файл с origin CMS API, поле формы хранит путь из ответа.
	if want := cms.URL + "/uploads/cover.png"; reply.Asset != want {
		t.Errorf("asset = %q, ожидается %q", reply.Asset, want)
	}

	_, body = b.get(draft)
	expectContains(t, body, "/uploads/cover.png")
}

func TestBlogs_DraftScriptedUploadWithoutFile(t *testing.T) {
	_, b := newTestPanel(t)
	b.login()
	draft := openDraft(t, b)

	req, _ := http.NewRequest(http.MethodPost, b.base+draft+"/upload?field=imageUrl", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "fetch")
	resp, body := b.do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидается 400", resp.StatusCode)
	}
	expectContains(t, body, "Choose a file to upload")
}

func TestFiles_Cleanup(t *testing.T) {
	cms, b := newTestPanel(t)
	b.login()

	resp, body := b.get("/admin/files")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", resp.StatusCode)
	}
	expectContains(t, body, "/uploads/a.png", "/uploads/b.png")

	resp, body = b.post("/admin/files/cleanup", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", resp.StatusCode)
	}
	expectContains(t, body, "Are you sure you want to delete 2 unused images?")
	if cms.cleaned.Load() != 0 {
		t.Fatal("файлы удалены без подтверждения")
	}

	resp, _ = b.post("/admin/files/cleanup", url.Values{"confirmed": {"true"}})
	expectRedirect(t, resp, http.StatusSeeOther, "/admin/files")
	if cms.cleaned.Load() != 1 {
		t.Errorf("удалений = %d, ожидается 1", cms.cleaned.Load())
	}
	_, body = b.get("/admin/files")
	expectContains(t, body, "Deleted 2 files")
}

func TestSetLanguage(t *testing.T) {
	_, b := newTestPanel(t)

	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"страница панели", b.base + "/admin/blogs?page=2", "/admin/blogs?page=2"},
		{"другой хост", "http://evil.test/admin/blogs", session.HomeRoute},
		{"вне панели", b.base + "/metrics", session.HomeRoute},
		{"без referer", "", session.HomeRoute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, b.base+"/admin/language",
				strings.NewReader(url.Values{"lang": {"ru"}}.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			resp, _ := b.do(req)
			expectRedirect(t, resp, http.StatusSeeOther, tt.want)
		})
	}
}
