// drafts.go — общие обработчики форм редактирования.
// Форма любого ресурса живёт в черновике: GET /admin/{res}/new или
// /admin/{res}/{id}/edit создаёт черновик и переходит на
// /admin/{res}/draft/{draft}, где форма показывается, пополняется
// элементами вложенных списков, получает загруженные изображения
// и сохраняется.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/forms"
	"github.com/bigkaa/cms-admin/internal/ui/flash"
	uimiddleware "github.com/bigkaa/cms-admin/internal/ui/middleware"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
	"github.com/bigkaa/cms-admin/internal/upload"
)

// Операции над вложенными списками черновика.
const (
	itemOpAdd    = "add"
	itemOpRemove = "remove"
)

// fileFieldPrefix — префикс имени поля выбора файла в форме.
const fileFieldPrefix = "_file."

// formDef описывает форму ресурса.
type formDef[F any] struct {
	// resource — имя ресурса в URL и журнале
	resource string
	// active — раздел навигации
	active string
	// titleNew, titleEdit — ключи заголовков
	titleNew  string
	titleEdit string
	// back — адрес возврата после сохранения и при отмене
	back string
	// protos — прототипы элементов вложенных списков
	protos map[string]forms.Prototype
	// options — варианты выпадающих списков (nil — нет)
	options func(ctx context.Context) map[string][]string
	// load возвращает начальное значение и идентификатор редактируемого
	// элемента; id == "" — создание, ownerKey — ключ сессии
	load func(ctx context.Context, ownerKey, id string) (F, string, error)
	// validate проверяет значение перед отправкой (nil — без проверки)
	validate func(f F, creating bool) error
	// save отправляет значение; id == "" — создание
	save func(ctx context.Context, id string, f F) error
	// loadFailed, saveFailed — сообщения, если сервер не прислал своё
	loadFailed string
	saveFailed string
	// saved возвращает сообщение об успехе
	saved func(creating bool) string
	// page — компонент страницы формы
	page func(pages.FormData[F]) templ.Component
}

// formHandler — обработчики формы ресурса.
type formHandler[F any] struct {
	base
	def formDef[F]
}

func newFormHandler[F any](deps *Deps, def formDef[F]) *formHandler[F] {
	return &formHandler[F]{
		base: newBase(deps, "ui.form."+def.resource),
		def:  def,
	}
}

// draftURL возвращает адрес черновика.
func (h *formHandler[F]) draftURL(id string) string {
	return "/admin/" + h.def.resource + "/draft/" + id
}

// HandleNew обрабатывает GET /admin/{res}/new и GET singleton-страницы.
func (h *formHandler[F]) HandleNew(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, "")
}

// HandleEdit обрабатывает GET /admin/{res}/{id}/edit.
func (h *formHandler[F]) HandleEdit(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, chi.URLParam(r, "id"))
}

// start загружает значение, создаёт черновик и переходит к нему.
func (h *formHandler[F]) start(w http.ResponseWriter, r *http.Request, id string) {
	value, editingID, err := h.def.load(r.Context(), owner(r), id)
	if h.expired(w, r, err) {
		return
	}
	if err != nil {
		h.logger.Warn("Ошибка загрузки данных формы",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		data := pages.ErrorData{
			Layout: h.layout(w, r, h.title(id != ""), h.def.active),
			Error:  loadError(r, err, h.def.loadFailed),
			Back:   h.def.back,
		}
		h.render(w, r, "error", pages.Error(data))
		return
	}

	binder := upload.NewBinder(h.deps.API, h.logger)
	d := forms.NewDraft(owner(r), h.def.resource, editingID, value, h.def.protos, binder)
	forms.Save(h.deps.Drafts, d)
	http.Redirect(w, r, h.draftURL(d.ID), http.StatusSeeOther)
}

// title возвращает ключ заголовка формы.
func (h *formHandler[F]) title(editing bool) string {
	if editing {
		return h.def.titleEdit
	}
	return h.def.titleNew
}

// lookup находит черновик текущей сессии. Если черновик истёк,
// пользователь возвращается к списку с баннером.
func (h *formHandler[F]) lookup(w http.ResponseWriter, r *http.Request) (*forms.Draft[F], bool) {
	d, err := forms.Lookup[F](h.deps.Drafts, owner(r), chi.URLParam(r, "draft"))
	if err == nil {
		return d, true
	}
	if uimiddleware.IsScripted(r) {
		writeJSON(w, http.StatusNotFound, uploadReply{Error: msgDraftExpired})
		return nil, false
	}
	done(w, r, h.def.back, flash.KindError, msgDraftExpired)
	return nil, false
}

// HandleShow обрабатывает GET /admin/{res}/draft/{draft}.
func (h *formHandler[F]) HandleShow(w http.ResponseWriter, r *http.Request) {
	d, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, d, "")
}

// renderForm показывает форму черновика с сообщением errText.
func (h *formHandler[F]) renderForm(w http.ResponseWriter, r *http.Request, d *forms.Draft[F], errText string) {
	data := pages.FormData[F]{
		Layout:    h.layout(w, r, h.title(d.Editing()), h.def.active),
		Base:      h.draftURL(d.ID),
		Cancel:    h.def.back,
		Editing:   d.Editing(),
		Value:     d.Value(),
		Error:     errText,
		Uploading: d.CheckSubmit() != nil,
	}
	if d.UploadError() != nil {
		data.UploadError = upload.FailedMessage
	}
	if h.def.options != nil {
		data.Options = h.def.options(r.Context())
	}
	h.render(w, r, h.def.resource+"_form", h.def.page(data))
}

// parseForm разбирает тело формы (urlencoded или multipart).
func (h *formHandler[F]) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.deps.UploadMaxBytes+1<<20)
	if err := r.ParseMultipartForm(h.deps.UploadMaxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// HandleSave обрабатывает POST /admin/{res}/draft/{draft}.
func (h *formHandler[F]) HandleSave(w http.ResponseWriter, r *http.Request) {
	d, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.parseForm(w, r); err != nil {
		h.renderForm(w, r, d, msgBadRequest)
		return
	}
	if err := d.Apply(r.PostForm); err != nil {
		h.logger.Debug("Некорректные значения формы", slog.String("error", err.Error()))
		h.renderForm(w, r, d, msgBadRequest)
		return
	}
	if err := d.CheckSubmit(); err != nil {
		h.renderForm(w, r, d, msgUploadInProgress)
		return
	}

	value := d.Value()
	creating := !d.Editing()
	if h.def.validate != nil {
		if err := h.def.validate(value, creating); err != nil {
			h.renderForm(w, r, d, err.Error())
			return
		}
	}

	err := h.def.save(r.Context(), d.EditingID, value)
	if h.expired(w, r, err) {
		return
	}
	actionName := "update"
	if creating {
		actionName = "create"
	}
	if err != nil {
		msg := cmsapi.MessageOr(err, h.def.saveFailed)
		h.logger.Warn("Ошибка сохранения",
			slog.String("resource", h.def.resource),
			slog.String("id", d.EditingID),
			slog.String("error", err.Error()),
		)
		h.record(r, actionName, h.def.resource, d.EditingID, err, msg)
		h.renderForm(w, r, d, msg)
		return
	}

	msg := h.def.saved(creating)
	h.record(r, actionName, h.def.resource, d.EditingID, nil, msg)
	h.deps.Drafts.Discard(d.ID)
	h.logger.Info("Данные сохранены",
		slog.String("resource", h.def.resource),
		slog.String("id", d.EditingID),
		slog.String("username", username(r)),
	)
	done(w, r, h.def.back, flash.KindSuccess, msg)
}

// HandleItems обрабатывает POST /admin/{res}/draft/{draft}/items:
// применяет введённые значения и добавляет или удаляет элемент списка.
func (h *formHandler[F]) HandleItems(w http.ResponseWriter, r *http.Request) {
	d, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.parseForm(w, r); err != nil {
		h.renderForm(w, r, d, msgBadRequest)
		return
	}
	if err := d.Apply(r.PostForm); err != nil {
		h.renderForm(w, r, d, msgBadRequest)
		return
	}

	q := r.URL.Query()
	path := q.Get("path")
	var err error
	switch q.Get("op") {
	case itemOpAdd:
		err = d.AddItem(path)
	case itemOpRemove:
		var index int
		index, err = strconv.Atoi(q.Get("index"))
		if err == nil {
			err = d.RemoveItem(path, index)
		}
	default:
		err = errors.New("неизвестная операция")
	}
	if err != nil {
		h.logger.Debug("Ошибка изменения списка черновика",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		h.renderForm(w, r, d, msgBadRequest)
		return
	}
	http.Redirect(w, r, h.draftURL(d.ID), http.StatusSeeOther)
}

// uploadReply — ответ загрузки скрипту страницы. url записывается
// в поле формы, asset — адрес файла на origin CMS API для превью.
type uploadReply struct {
	Field string `json:"field,omitempty"`
	URL   string `json:"url,omitempty"`
	Asset string `json:"asset,omitempty"`
	Error string `json:"error,omitempty"`
}

// HandleUpload обрабатывает POST /admin/{res}/draft/{draft}/upload?field=...
// Скрипту страницы отвечает JSON {field,url,asset} или {error},
// обычной форме — redirect на черновик.
func (h *formHandler[F]) HandleUpload(w http.ResponseWriter, r *http.Request) {
	d, ok := h.lookup(w, r)
	if !ok {
		return
	}
	scripted := uimiddleware.IsScripted(r)
	field := r.URL.Query().Get("field")

	fail := func(status int, msg string) {
		if scripted {
			writeJSON(w, status, uploadReply{Field: field, Error: msg})
			return
		}
		h.renderForm(w, r, d, msg)
	}

	if err := h.parseForm(w, r); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		fail(http.StatusBadRequest, msgBadRequest)
		return
	}
	if field == "" {
		field = r.PostFormValue("field")
	}
	if !scripted {
		if err := d.Apply(r.PostForm); err != nil {
			fail(http.StatusBadRequest, msgBadRequest)
			return
		}
	}

	file, header, err := r.FormFile(fileFieldPrefix + field)
	if err != nil {
		fail(http.StatusBadRequest, msgNoFile)
		return
	}
	defer file.Close()

	err = d.Upload(r.Context(), &upload.File{Name: header.Filename, Content: file}, field)
	if h.expired(w, r, err) {
		return
	}
	if err != nil {
		fail(http.StatusBadGateway, upload.FailedMessage)
		return
	}

	if scripted {
		url, _ := d.Field(field)
		writeJSON(w, http.StatusOK, uploadReply{Field: field, URL: url, Asset: h.deps.API.AssetURL(url)})
		return
	}
	http.Redirect(w, r, h.draftURL(d.ID), http.StatusSeeOther)
}

// writeJSON отправляет JSON-ответ.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
