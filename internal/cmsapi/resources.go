// resources.go — типизированные операции над ресурсами CMS API:
// коллекции (список, страница, CRUD, переключатели, порядок) и singleton-ресурсы.
package cmsapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// Пути CMS API.
const (
	PathLogin       = "/api/auth/login"
	PathUpload      = "/api/admin/upload"
	PathBlogs       = "/api/admin/blogs"
	PathNews        = "/api/admin/news"
	PathProducts    = "/api/admin/products"
	PathBrands      = "/api/admin/brands"
	PathCategories  = "/api/admin/categories"
	PathGallery     = "/api/admin/gallery"
	PathDivisions   = "/api/admin/divisions"
	PathAdmins      = "/api/admin/admins"
	PathProfile     = "/api/admin/profile"
	PathAbout       = "/api/admin/about"
	PathContact     = "/api/admin/contact"
	PathHome        = "/api/admin/home"
	PathUnusedFiles = "/api/admin/files/unused"
)

// Узкие действия над элементами коллекций.
const (
	ActionTogglePublish  = "toggle-publish"
	ActionToggleFeatured = "toggle-featured"
	ActionToggleStatus   = "toggle-status"
)

// Login выполняет вход. Запрос отправляется без токена.
func (c *Client) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	body, err := jsonReader(model.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	var resp model.LoginResponse
	if err := c.send(ctx, http.MethodPost, PathLogin, nil, body, "application/json", false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUnusedFiles возвращает файлы хранилища, на которые нет ссылок.
func (c *Client) ListUnusedFiles(ctx context.Context) (*model.UnusedFiles, error) {
	var resp model.UnusedFiles
	if err := c.Do(ctx, http.MethodGet, PathUnusedFiles, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Files == nil {
		resp.Files = []string{}
	}
	return &resp, nil
}

// DeleteUnusedFiles удаляет все неиспользуемые файлы и возвращает сообщение сервера.
func (c *Client) DeleteUnusedFiles(ctx context.Context) (string, error) {
	var resp model.MessageResponse
	if err := c.Do(ctx, http.MethodDelete, PathUnusedFiles, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// pageEnvelope — постраничный ответ в том виде, как его присылает API.
// Номер страницы приходит как pageNumber или number.
type pageEnvelope[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    *int  `json:"pageNumber"`
	Number        *int  `json:"number"`
	PageSize      *int  `json:"pageSize"`
	Size          *int  `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// toResult переводит ответ в PageResult с нормализованными флагами.
func (e pageEnvelope[T]) toResult() *model.PageResult[T] {
	res := &model.PageResult[T]{
		Content:       e.Content,
		TotalElements: e.TotalElements,
		TotalPages:    e.TotalPages,
	}
	switch {
	case e.PageNumber != nil:
		res.PageNumber = *e.PageNumber
	case e.Number != nil:
		res.PageNumber = *e.Number
	}
	switch {
	case e.PageSize != nil:
		res.PageSize = *e.PageSize
	case e.Size != nil:
		res.PageSize = *e.Size
	}
	res.Normalize()
	return res
}

// GetPage запрашивает страницу коллекции по произвольному пути.
func GetPage[T any](ctx context.Context, c *Client, path string, query url.Values) (*model.PageResult[T], error) {
	var env pageEnvelope[T]
	if err := c.Do(ctx, http.MethodGet, path, query, nil, &env); err != nil {
		return nil, err
	}
	return env.toResult(), nil
}

// Resource — коллекция CMS API с элементами типа T.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource создаёт обёртку коллекции по базовому пути.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// Path возвращает базовый путь коллекции.
func (r *Resource[T]) Path() string {
	return r.path
}

// List возвращает коллекцию целиком (ресурсы без пагинации).
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.ListAt(ctx, r.path)
}

// ListAt возвращает плоский список по подпути коллекции (например, /divisions/all).
func (r *Resource[T]) ListAt(ctx context.Context, path string) ([]T, error) {
	var items []T
	if err := r.client.Do(ctx, http.MethodGet, path, nil, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Page запрашивает страницу коллекции по пути и параметрам,
// построенным стратегией списка.
func (r *Resource[T]) Page(ctx context.Context, path string, query url.Values) (*model.PageResult[T], error) {
	return GetPage[T](ctx, r.client, path, query)
}

// Get возвращает элемент по идентификатору.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create создаёт элемент. payload может иметь тип, отличный от T.
func (r *Resource[T]) Create(ctx context.Context, payload any) error {
	return r.client.Do(ctx, http.MethodPost, r.path, nil, payload, nil)
}

// Update полностью обновляет элемент.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) error {
	return r.client.Do(ctx, http.MethodPut, r.itemPath(id), nil, payload, nil)
}

// Delete удаляет элемент.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

// Toggle выполняет узкое действие PATCH /{id}/{action}.
func (r *Resource[T]) Toggle(ctx context.Context, id, action string) error {
	return r.client.Do(ctx, http.MethodPatch, r.itemPath(id)+"/"+action, nil, nil, nil)
}

// Reorder сохраняет новый порядок элементов.
func (r *Resource[T]) Reorder(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	return r.client.Do(ctx, http.MethodPost, r.path+"/reorder", nil, model.ReorderRequest{ItemIDs: ids}, nil)
}

// itemPath возвращает путь элемента с экранированным идентификатором.
func (r *Resource[T]) itemPath(id string) string {
	return fmt.Sprintf("%s/%s", r.path, url.PathEscape(id))
}

// Singleton — ресурс CMS API из одного объекта (about, contact, home, profile).
type Singleton[T any] struct {
	client *Client
	path   string
}

// NewSingleton создаёт обёртку singleton-ресурса.
func NewSingleton[T any](c *Client, path string) *Singleton[T] {
	return &Singleton[T]{client: c, path: path}
}

// Get возвращает текущее значение.
func (s *Singleton[T]) Get(ctx context.Context) (*T, error) {
	var v T
	if err := s.client.Do(ctx, http.MethodGet, s.path, nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Put сохраняет значение.
func (s *Singleton[T]) Put(ctx context.Context, payload any) error {
	return s.client.Do(ctx, http.MethodPut, s.path, nil, payload, nil)
}

// API — набор типизированных ресурсов CMS.
type API struct {
	*Client

	Blogs      *Resource[model.Blog]
	News       *Resource[model.News]
	Products   *Resource[model.Product]
	Brands     *Resource[model.Brand]
	Categories *Resource[model.Category]
	Gallery    *Resource[model.GalleryItem]
	Divisions  *Resource[model.Division]
	Admins     *Resource[model.Admin]

	Profile *Singleton[model.Admin]
	About   *Singleton[model.AboutUs]
	Contact *Singleton[model.Contact]
	Home    *Singleton[model.HomeContent]
}

// NewAPI связывает ресурсы с клиентом.
func NewAPI(c *Client) *API {
	return &API{
		Client:     c,
		Blogs:      NewResource[model.Blog](c, PathBlogs),
		News:       NewResource[model.News](c, PathNews),
		Products:   NewResource[model.Product](c, PathProducts),
		Brands:     NewResource[model.Brand](c, PathBrands),
		Categories: NewResource[model.Category](c, PathCategories),
		Gallery:    NewResource[model.GalleryItem](c, PathGallery),
		Divisions:  NewResource[model.Division](c, PathDivisions),
		Admins:     NewResource[model.Admin](c, PathAdmins),
		Profile:    NewSingleton[model.Admin](c, PathProfile),
		About:      NewSingleton[model.AboutUs](c, PathAbout),
		Contact:    NewSingleton[model.Contact](c, PathContact),
		Home:       NewSingleton[model.HomeContent](c, PathHome),
	}
}
