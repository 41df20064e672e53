// data.go — данные страниц и конструкторы компонентов.
package pages

import (
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/listing"
)

// LoadError — баннер ошибки загрузки с повтором.
type LoadError struct {
	// Message — текст ошибки (ключ перевода либо сообщение сервера)
	Message string
	// RetryURL — адрес повторной загрузки
	RetryURL string
}

// Pager — данные пагинации серверного списка.
type Pager struct {
	Path          string
	Params        url.Values
	PageNumber    int
	PageSize      int
	TotalPages    int
	TotalElements int64
	Start         int64
	End           int64
	CanPrev       bool
	CanNext       bool
	Window        []int
}

// NewPager строит пагинацию по состоянию списка. nil — данных ещё нет.
func NewPager[T any](path string, v listing.View[T]) *Pager {
	if v.Result == nil {
		return nil
	}
	params := url.Values{}
	for k, val := range v.Query.Filters {
		if val != "" {
			params.Set(k, val)
		}
	}
	params.Set(listing.ParamSize, strconv.Itoa(v.Query.PageSize))

	res := v.Result
	return &Pager{
		Path:          path,
		Params:        params,
		PageNumber:    res.PageNumber,
		PageSize:      v.Query.PageSize,
		TotalPages:    res.TotalPages,
		TotalElements: res.TotalElements,
		Start:         res.StartItem(),
		End:           res.EndItem(),
		CanPrev:       v.CanPrev(),
		CanNext:       v.CanNext(),
		Window:        listing.PageWindow(res.PageNumber, res.TotalPages, listing.DefaultWindow),
	}
}

// Href возвращает ссылку на страницу page (с 0) с текущими фильтрами.
func (p *Pager) Href(page int) string {
	params := url.Values{}
	for k, v := range p.Params {
		params[k] = v
	}
	params.Set(listing.ParamPage, strconv.Itoa(page))
	return p.Path + "?" + params.Encode()
}

// LastPage — номер последней страницы (с 0).
func (p *Pager) LastPage() int {
	if p.TotalPages == 0 {
		return 0
	}
	return p.TotalPages - 1
}

// ListData — страница списка элементов T.
type ListData[T any] struct {
	Layout
	// Items — элементы текущей страницы (или отфильтрованный список)
	Items []T
	// Total — число элементов без локальных фильтров
	Total int
	// Pager — пагинация (nil для списков без пагинации)
	Pager *Pager
	// Filters — текущие значения фильтров
	Filters map[string]string
	// Options — варианты выпадающих списков фильтров
	Options map[string][]string
	// Error — ошибка загрузки
	Error *LoadError
}

// FormData — страница формы черновика значения F.
type FormData[F any] struct {
	Layout
	// Base — адрес черновика (/admin/{res}/draft/{id})
	Base string
	// Cancel — адрес возврата
	Cancel string
	// Editing — редактирование существующего элемента
	Editing bool
	// Value — значения формы
	Value F
	// Error — ошибка валидации или сохранения
	Error string
	// UploadError — ошибка последней загрузки
	UploadError string
	// Uploading — идёт загрузка изображения
	Uploading bool
	// Options — варианты выпадающих списков
	Options map[string][]string
}

// LoginData — страница входа.
type LoginData struct {
	Layout
	Username string
	Error    string
	Expired  bool
}

// HealthItem — состояние зависимости на dashboard.
type HealthItem struct {
	Name    string
	Healthy bool
}

// DashboardData — главная страница панели.
type DashboardData struct {
	Layout
	Email          string
	Sections       []NavItem
	JournalEnabled bool
	Activity       []model.Activity
	ActivityError  string
	Health         []HealthItem
	TokenExpires   *time.Time
	TokenExpired   bool
}

// ConfirmData — подтверждение необратимого действия.
type ConfirmData struct {
	Layout
	// Message — переведённый текст вопроса
	Message string
	// Action — адрес формы подтверждения
	Action string
	// Cancel — адрес отмены
	Cancel string
}

// ErrorData — страница, которую не удалось загрузить.
type ErrorData struct {
	Layout
	Error *LoadError
	Back  string
}

// FilesData — страница неиспользуемых файлов.
type FilesData struct {
	Layout
	Files *model.UnusedFiles
	Error *LoadError
	// ConfirmText — переведённый вопрос перед удалением всех файлов
	ConfirmText string
}

// Login возвращает страницу входа.
func Login(d LoginData) templ.Component { return component("login", d) }

// Dashboard возвращает главную страницу.
func Dashboard(d DashboardData) templ.Component { return component("dashboard", d) }

// Confirm возвращает страницу подтверждения.
func Confirm(d ConfirmData) templ.Component { return component("confirm", d) }

// Error возвращает страницу ошибки загрузки.
func Error(d ErrorData) templ.Component { return component("error", d) }

// Files возвращает страницу неиспользуемых файлов.
func Files(d FilesData) templ.Component { return component("files", d) }

// Blogs возвращает список блогов.
func Blogs(d ListData[model.Blog]) templ.Component { return component("blogs", d) }

// BlogForm возвращает форму блога.
func BlogForm(d FormData[model.Blog]) templ.Component { return component("blog_form", d) }

// News возвращает список новостей.
func News(d ListData[model.News]) templ.Component { return component("news", d) }

// NewsForm возвращает форму новости.
func NewsForm(d FormData[model.News]) templ.Component { return component("news_form", d) }

// Products возвращает список товаров.
func Products(d ListData[model.Product]) templ.Component { return component("products", d) }

// ProductForm возвращает форму товара.
func ProductForm(d FormData[model.ProductForm]) templ.Component {
	return component("product_form", d)
}

// Brands возвращает список брендов.
func Brands(d ListData[model.Brand]) templ.Component { return component("brands", d) }

// Categories возвращает список категорий.
func Categories(d ListData[model.Category]) templ.Component { return component("categories", d) }

// NameForm возвращает форму из одного поля name (бренд, категория).
func NameForm(d FormData[model.NameForm]) templ.Component { return component("name_form", d) }

// Gallery возвращает галерею.
func Gallery(d ListData[model.GalleryItem]) templ.Component { return component("gallery", d) }

// GalleryForm возвращает форму элемента галереи.
func GalleryForm(d FormData[model.GalleryItem]) templ.Component {
	return component("gallery_form", d)
}

// Divisions возвращает список подразделений.
func Divisions(d ListData[model.Division]) templ.Component { return component("divisions", d) }

// DivisionForm возвращает форму подразделения.
func DivisionForm(d FormData[model.Division]) templ.Component {
	return component("division_form", d)
}

// Admins возвращает список администраторов.
func Admins(d ListData[model.Admin]) templ.Component { return component("admins", d) }

// AdminForm возвращает форму администратора.
func AdminForm(d FormData[model.AdminForm]) templ.Component { return component("admin_form", d) }

// ProfileForm возвращает форму профиля.
func ProfileForm(d FormData[model.AdminForm]) templ.Component {
	return component("profile_form", d)
}

// AboutForm возвращает форму страницы «О компании».
func AboutForm(d FormData[model.AboutForm]) templ.Component { return component("about_form", d) }

// ContactForm возвращает форму контактов.
func ContactForm(d FormData[model.Contact]) templ.Component {
	return component("contact_form", d)
}

// HomeForm возвращает форму главной страницы сайта.
func HomeForm(d FormData[model.HomeContent]) templ.Component { return component("home_form", d) }
