package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// uploaderFunc адаптирует функцию к Uploader.
type uploaderFunc func(ctx context.Context, filename string, content io.Reader) (string, error)

func (f uploaderFunc) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	return f(ctx, filename, content)
}

func TestUpload_Success(t *testing.T) {
	var b *Binder
	b = NewBinder(uploaderFunc(func(_ context.Context, name string, r io.Reader) (string, error) {
		if !b.Uploading("chairman") {
			t.Error("во время загрузки поле должно быть помечено")
		}
		data, _ := io.ReadAll(r)
		if name != "photo.png" || string(data) != "PNG" {
			t.Errorf("получен файл %q: %q", name, data)
		}
		return "/uploads/photo.png", nil
	}), testLogger())

	var bound string
	err := b.Upload(context.Background(), &File{Name: "photo.png", Content: strings.NewReader("PNG")}, "chairman",
		func(url string) error {
			bound = url
			return nil
		})
	if err != nil {
		t.Fatalf("Upload() вернул ошибку: %v", err)
	}
	if bound != "/uploads/photo.png" {
		t.Errorf("привязан URL %q", bound)
	}
	if b.Uploading("chairman") || b.AnyUploading() {
		t.Error("после загрузки флаг должен быть снят")
	}
	if b.Error() != nil {
		t.Errorf("Error() = %v", b.Error())
	}
}

func TestUpload_Failure(t *testing.T) {
	b := NewBinder(uploaderFunc(func(context.Context, string, io.Reader) (string, error) {
		return "", errors.New("storage unavailable")
	}), testLogger())

	field := "old.png"
	err := b.Upload(context.Background(), &File{Name: "new.png", Content: strings.NewReader("x")}, "brand-0",
		func(url string) error {
			field = url
			return nil
		})
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("Upload() = %v, ожидается ErrUploadFailed", err)
	}
	if field != "old.png" {
		t.Errorf("при ошибке поле изменено на %q", field)
	}
	if b.Uploading("brand-0") {
		t.Error("после ошибки флаг должен быть снят")
	}
	if b.Error() == nil || b.Error().Error() != FailedMessage {
		t.Errorf("Error() = %v, ожидается %q", b.Error(), FailedMessage)
	}

	b.ClearError()
	if b.Error() != nil {
		t.Error("ClearError() не сбросил ошибку")
	}
}

func TestUpload_NoFile(t *testing.T) {
	called := false
	b := NewBinder(uploaderFunc(func(context.Context, string, io.Reader) (string, error) {
		called = true
		return "", nil
	}), testLogger())

	if err := b.Upload(context.Background(), nil, "chairman", func(string) error { return nil }); err != nil {
		t.Fatalf("Upload(nil) вернул ошибку: %v", err)
	}
	if called {
		t.Error("без файла загрузка не должна выполняться")
	}
}
