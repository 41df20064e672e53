// files.go — неиспользуемые файлы хранилища CMS: просмотр списка
// и удаление всех файлов сразу.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/cms-admin/internal/ui/flash"
	"github.com/bigkaa/cms-admin/internal/ui/i18n"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

const filesPath = "/admin/files"

// FilesHandler — обработчик страницы неиспользуемых файлов.
type FilesHandler struct {
	base
}

// NewFilesHandler создаёт FilesHandler.
func NewFilesHandler(deps *Deps) *FilesHandler {
	return &FilesHandler{base: newBase(deps, "ui.files")}
}

// HandleList обрабатывает GET /admin/files.
func (h *FilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	files, err := h.deps.API.ListUnusedFiles(r.Context())
	if h.expired(w, r, err) {
		return
	}
	if err != nil {
		h.logger.Warn("Ошибка получения неиспользуемых файлов", slog.String("error", err.Error()))
	}

	data := pages.FilesData{
		Layout: h.layout(w, r, "files.heading", "files"),
		Files:  files,
		Error:  loadError(r, err, msgFetchUnused),
	}
	if files != nil {
		data.ConfirmText = i18n.Tf(r.Context(), askDeleteUnused, files.Count)
	}
	h.render(w, r, "files", pages.Files(data))
}

// HandleCleanup обрабатывает POST /admin/files/cleanup.
// Без подтверждения показывает вопрос с текущим числом файлов.
func (h *FilesHandler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		files, err := h.deps.API.ListUnusedFiles(r.Context())
		if h.expired(w, r, err) {
			return
		}
		if err != nil {
			h.logger.Warn("Ошибка получения неиспользуемых файлов", slog.String("error", err.Error()))
			done(w, r, filesPath, flash.KindError, msgFetchUnused)
			return
		}
		if files.Count == 0 {
			done(w, r, filesPath, flash.KindError, msgFilesNothingToDel)
			return
		}
		h.confirmText(w, r, "files", i18n.Tf(r.Context(), askDeleteUnused, files.Count), filesPath)
		return
	}

	message, err := h.deps.API.DeleteUnusedFiles(r.Context())
	if h.expired(w, r, err) {
		return
	}
	if err != nil {
		h.logger.Warn("Ошибка удаления неиспользуемых файлов", slog.String("error", err.Error()))
		h.record(r, "cleanup", "files", "", err, msgDeleteUnused)
		done(w, r, filesPath, flash.KindError, msgDeleteUnused)
		return
	}

	h.logger.Info("Неиспользуемые файлы удалены", slog.String("message", message))
	h.record(r, "cleanup", "files", "", nil, message)
	if message == "" {
		http.Redirect(w, r, filesPath, http.StatusSeeOther)
		return
	}
	done(w, r, filesPath, flash.KindSuccess, message)
}
