// Пакет upload — загрузка изображения с привязкой полученного URL
// к полю черновика формы. Пока загрузка поля идёт, оно помечено как
// загружаемое; при ошибке значение поля не меняется.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FailedMessage — сообщение об ошибке загрузки, показываемое пользователю.
const FailedMessage = "Failed to upload image"

// ErrUploadFailed — загрузка не удалась.
var ErrUploadFailed = errors.New(FailedMessage)

// Prometheus-метрики загрузок.
var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cms_uploads_total",
	Help: "Общее количество загрузок изображений.",
}, []string{"result"})

// Uploader отправляет файл в хранилище и возвращает его URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// File — выбранный пользователем файл.
type File struct {
	Name    string
	Content io.Reader
}

// Binder — загрузчик для одного черновика формы.
type Binder struct {
	uploader Uploader
	logger   *slog.Logger

	mu        sync.Mutex
	uploading map[string]bool
	err       error
}

// NewBinder создаёт загрузчик.
func NewBinder(uploader Uploader, logger *slog.Logger) *Binder {
	return &Binder{
		uploader:  uploader,
		logger:    logger.With(slog.String("component", "upload")),
		uploading: make(map[string]bool),
	}
}

// Upload загружает file и передаёт полученный URL в bind.
// Пустой выбор (file == nil) ничего не делает. При ошибке загрузки
// возвращается ErrUploadFailed, bind не вызывается. Флаг загрузки поля
// key снимается при любом исходе.
func (b *Binder) Upload(ctx context.Context, file *File, key string, bind func(url string) error) error {
	if file == nil || file.Content == nil {
		return nil
	}

	b.mu.Lock()
	b.uploading[key] = true
	b.err = nil
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.uploading, key)
		b.mu.Unlock()
	}()

	url, err := b.uploader.Upload(ctx, file.Name, file.Content)
	if err != nil {
		uploadsTotal.WithLabelValues("error").Inc()
		b.logger.Warn("Ошибка загрузки изображения",
			slog.String("field", key),
			slog.String("filename", file.Name),
			slog.String("error", err.Error()),
		)
		b.setErr(ErrUploadFailed)
		return ErrUploadFailed
	}

	if err := bind(url); err != nil {
		uploadsTotal.WithLabelValues("error").Inc()
		b.setErr(err)
		return err
	}

	uploadsTotal.WithLabelValues("success").Inc()
	b.logger.Debug("Изображение загружено",
		slog.String("field", key),
		slog.String("url", url),
	)
	return nil
}

func (b *Binder) setErr(err error) {
	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

// Uploading сообщает, идёт ли загрузка для поля key.
func (b *Binder) Uploading(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploading[key]
}

// AnyUploading сообщает, идёт ли хотя бы одна загрузка.
func (b *Binder) AnyUploading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.uploading) > 0
}

// Error возвращает ошибку последней загрузки (nil — успешно или не было).
func (b *Binder) Error() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// ClearError сбрасывает ошибку загрузки.
func (b *Binder) ClearError() {
	b.setErr(nil)
}
