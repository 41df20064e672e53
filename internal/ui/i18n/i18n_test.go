package i18n

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBundle_Translate(t *testing.T) {
	b := NewBundle(testLogger())
	if err := b.LoadMessages(LangEnglish, []byte(`{"nav.blogs":"Blogs","Blog saved":"Blog saved"}`)); err != nil {
		t.Fatalf("LoadMessages(en): %v", err)
	}
	if err := b.LoadMessages(LangRussian, []byte(`{"nav.blogs":"Блоги","Saved %d files":"Сохранено файлов: %d"}`)); err != nil {
		t.Fatalf("LoadMessages(ru): %v", err)
	}

	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{"русский каталог", LangRussian, "nav.blogs", "Блоги"},
		{"запасной английский", LangRussian, "Blog saved", "Blog saved"},
		{"сообщение API без перевода", LangRussian, "Slug already exists", "Slug already exists"},
		{"неизвестный язык", "de", "nav.blogs", "Blogs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Translate(tt.lang, tt.key); got != tt.want {
				t.Errorf("Translate(%q, %q) = %q, ожидалось %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}

	if got := b.Translatef(LangRussian, "Saved %d files", 3); got != "Сохранено файлов: 3" {
		t.Errorf("Translatef() = %q", got)
	}
}

func TestBundle_LoadMessagesInvalid(t *testing.T) {
	if err := NewBundle(nil).LoadMessages(LangEnglish, []byte(`["nav.blogs"]`)); err == nil {
		t.Fatal("ожидалась ошибка для каталога не в виде объекта")
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"nav.news":"News"}`)},
		"locales/ru.json": {Data: []byte(`{"nav.news":"Новости"}`)},
	}
	b := NewBundle(nil)
	if err := LoadFromFS(b, fsys, testLogger()); err != nil {
		t.Fatalf("LoadFromFS(): %v", err)
	}
	if got := b.Translate(LangRussian, "nav.news"); got != "Новости" {
		t.Errorf("Translate() = %q", got)
	}

	delete(fsys, "locales/ru.json")
	if err := LoadFromFS(NewBundle(nil), fsys, testLogger()); err == nil {
		t.Fatal("ожидалась ошибка при отсутствии каталога ru")
	}
}

func TestLoadFromEmbedFS(t *testing.T) {
	b := NewBundle(nil)
	if err := LoadFromEmbedFS(b, testLogger()); err != nil {
		t.Fatalf("LoadFromEmbedFS(): %v", err)
	}
	if got := b.Translate(LangRussian, "nav.blogs"); got != "Блоги" {
		t.Errorf("nav.blogs = %q", got)
	}
	if got := b.Translate(LangRussian, "Failed to reorder items"); got == "Failed to reorder items" {
		t.Error("сообщение об ошибке порядка не переведено")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ru", LangRussian},
		{"en", LangEnglish},
		{"", DefaultLang},
		{"fr", DefaultLang},
		{"RU", DefaultLang},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, ожидалось %q", tt.in, got, tt.want)
		}
	}
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{"без подсказок", "", "", DefaultLang},
		{"cookie", "ru", "en-US", LangRussian},
		{"неподдерживаемая cookie", "de", "ru-RU,ru;q=0.9", LangRussian},
		{"Accept-Language", "", "ru-RU,ru;q=0.9,en;q=0.8", LangRussian},
		{"чужой Accept-Language", "", "ja-JP", DefaultLang},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = LangFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("язык = %q, ожидался %q", got, tt.want)
			}
		})
	}
}

func TestTf_WithoutBundle(t *testing.T) {
	if globalBundle != nil {
		t.Skip("процессный Bundle уже создан")
	}
	if got := Tf(context.Background(), "Deleted %d files", 2); got != "Deleted 2 files" {
		t.Errorf("Tf() = %q", got)
	}
	if got := T(WithLang(context.Background(), LangRussian), "nav.blogs"); got != "nav.blogs" {
		t.Errorf("T() = %q", got)
	}
}
