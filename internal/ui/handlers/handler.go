// Пакет handlers — HTTP-обработчики панели CMS.
// handler.go — общие зависимости и вспомогательные методы страниц:
// каркас страницы, рендеринг, баннеры, принудительный выход по 401
// и запись в журнал действий.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/forms"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/service"
	"github.com/bigkaa/cms-admin/internal/session"
	"github.com/bigkaa/cms-admin/internal/ui/auth"
	"github.com/bigkaa/cms-admin/internal/ui/flash"
	"github.com/bigkaa/cms-admin/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/cms-admin/internal/ui/middleware"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

// HealthSource — источник состояния зависимостей для dashboard.
type HealthSource interface {
	Health() map[string]bool
}

// Deps — зависимости обработчиков панели.
type Deps struct {
	// API — ресурсы CMS API
	API *cmsapi.API
	// Sessions — менеджер сессий (вход и выход)
	Sessions *session.Manager
	// Cookies — зашифрованные cookie сессии
	Cookies *auth.SessionManager
	// Guard — middleware сессии (принудительный выход)
	Guard *uimiddleware.UIAuth
	// Lists — состояние списков по сессиям
	Lists *listing.Registry
	// Drafts — черновики форм
	Drafts *forms.Store
	// Journal — журнал действий
	Journal service.Journal
	// Health — состояние зависимостей (nil — не отслеживается)
	Health HealthSource
	// PageSize — размер страницы списков по умолчанию
	PageSize int
	// FlashDismiss — время показа баннера об успехе
	FlashDismiss time.Duration
	// UploadMaxBytes — максимальный размер загружаемого файла
	UploadMaxBytes int64
	// Logger — базовый logger
	Logger *slog.Logger
}

// base — общие методы обработчиков страниц.
type base struct {
	deps   *Deps
	logger *slog.Logger
}

func newBase(deps *Deps, component string) base {
	return base{
		deps:   deps,
		logger: deps.Logger.With(slog.String("component", component)),
	}
}

// layout собирает каркас страницы и забирает баннер предыдущего запроса.
func (b base) layout(w http.ResponseWriter, r *http.Request, title, active string) pages.Layout {
	s, _ := uimiddleware.SessionFromContext(r.Context())
	return pages.Layout{
		Lang:         i18n.LangFromContext(r.Context()),
		Title:        title,
		Active:       active,
		User:         s.Username(),
		Flash:        flash.Pop(w, r),
		FlashDismiss: b.deps.FlashDismiss,
		APIBase:      b.deps.API.BaseURL(),
	}
}

// render отдаёт HTML-страницу.
func (b base) render(w http.ResponseWriter, r *http.Request, page string, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		b.logger.Error("Ошибка рендеринга страницы",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
	}
}

// owner возвращает ключ состояния текущей сессии.
func owner(r *http.Request) string {
	s, _ := uimiddleware.SessionFromContext(r.Context())
	return listing.OwnerKey(s.Token)
}

// username возвращает имя текущего администратора.
func username(r *http.Request) string {
	s, _ := uimiddleware.SessionFromContext(r.Context())
	return s.Username()
}

// expired обрабатывает отказ CMS API в авторизации: состояние сессии
// сбрасывается, пользователь уходит на страницу входа. Возвращает true,
// если ответ уже отправлен.
func (b base) expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, cmsapi.ErrUnauthorized) {
		return false
	}
	b.deps.Lists.Forget(owner(r))
	b.deps.Guard.Expire(w, r)
	return true
}

// record пишет действие в журнал. message — текст баннера.
func (b base) record(r *http.Request, action, resource, id string, err error, message string) {
	outcome := model.OutcomeSuccess
	if err != nil {
		outcome = model.OutcomeFailure
	}
	b.deps.Journal.Record(r.Context(), model.Activity{
		OccurredAt: time.Now().UTC(),
		Username:   username(r),
		Action:     action,
		Resource:   resource,
		ResourceID: id,
		Outcome:    outcome,
		Message:    message,
	})
}

// done завершает действие redirect-ом на target с баннером.
func done(w http.ResponseWriter, r *http.Request, target, kind, text string) {
	flash.Set(w, kind, text)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// confirmed сообщает, что пользователь подтвердил действие.
func confirmed(r *http.Request) bool {
	return r.PostFormValue("confirmed") == "true"
}

// confirm показывает страницу подтверждения вместо выполнения действия.
func (b base) confirm(w http.ResponseWriter, r *http.Request, active, question, cancel string) {
	b.confirmText(w, r, active, i18n.T(r.Context(), question), cancel)
}

// confirmText — confirm с уже переведённым текстом вопроса.
func (b base) confirmText(w http.ResponseWriter, r *http.Request, active, text, cancel string) {
	data := pages.ConfirmData{
		Layout:  b.layout(w, r, "confirm.heading", active),
		Message: text,
		Action:  r.URL.RequestURI(),
		Cancel:  cancel,
	}
	b.render(w, r, "confirm", pages.Confirm(data))
}

// mutate выполняет необратимое действие над элементом списка:
// запрашивает подтверждение, вызывает op, журналирует результат
// и возвращает на страницу списка с баннером.
func (b base) mutate(
	w http.ResponseWriter,
	r *http.Request,
	act action,
	id string,
	op func(ctx context.Context) error,
) {
	if act.question != "" && !confirmed(r) {
		b.confirm(w, r, act.resource, act.question, act.back)
		return
	}

	err := op(r.Context())
	if b.expired(w, r, err) {
		return
	}
	if err != nil {
		msg := cmsapi.MessageOr(err, act.failed)
		b.logger.Warn("Действие не выполнено",
			slog.String("action", act.name),
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		b.record(r, act.name, act.resource, id, err, msg)
		done(w, r, act.back, flash.KindError, msg)
		return
	}

	b.record(r, act.name, act.resource, id, nil, act.succeeded)
	if act.succeeded == "" {
		http.Redirect(w, r, act.back, http.StatusSeeOther)
		return
	}
	done(w, r, act.back, flash.KindSuccess, act.succeeded)
}

// action — описание действия над элементом списка.
type action struct {
	// name — имя действия в журнале (delete, toggle-publish)
	name string
	// resource — ресурс (blogs, news)
	resource string
	// back — адрес возврата
	back string
	// question — вопрос подтверждения (пусто — без подтверждения)
	question string
	// failed — сообщение об ошибке, если сервер не прислал своё
	failed string
	// succeeded — сообщение об успехе (пусто — без баннера)
	succeeded string
}

// loadError — баннер ошибки загрузки с повтором на адрес запроса.
func loadError(r *http.Request, err error, fallback string) *pages.LoadError {
	if err == nil {
		return nil
	}
	return &pages.LoadError{
		Message:  cmsapi.MessageOr(err, fallback),
		RetryURL: r.URL.RequestURI(),
	}
}
