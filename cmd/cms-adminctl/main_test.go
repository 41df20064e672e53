package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bigkaa/cms-admin/internal/session"
)

// fakeAPI — CMS API с одним администратором admin/secret.
type fakeAPI struct {
	server  *httptest.Server
	deleted atomic.Int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"token":    "tok-1",
			"username": req.Username,
			"email":    req.Username + "@example.com",
		})
	})
	mux.HandleFunc("/api/admin/files/unused", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{
				"count": 2,
				"files": []string{"/uploads/a.png", "/uploads/b.png"},
			})
		case http.MethodDelete:
			f.deleted.Add(1)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted 2 files"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// setupEnv изолирует каталог настроек и направляет CLI на fake API.
func setupEnv(t *testing.T, apiURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CMS_API_URL", apiURL)
	t.Setenv("CMS_API_TIMEOUT", "")
	t.Setenv("CMS_API_CA_CERT_PATH", "")
	t.Setenv("CMS_SESSION_FILE", "")
	return filepath.Join(dir, "cms-admin", "session.json")
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestLogin_SavesSessionFile(t *testing.T) {
	api := newFakeAPI(t)
	sessionFile := setupEnv(t, api.server.URL)

	code, stdout, stderr := runCLI(t, "secret\n", "login", "admin")
	if code != exitOK {
		t.Fatalf("код = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "Logged in as admin") {
		t.Errorf("stdout = %q", stdout)
	}

	info, err := os.Stat(sessionFile)
	if err != nil {
		t.Fatalf("файл сессии не создан: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("права файла = %o, ожидалось 600", perm)
	}

	s := session.Restore(session.NewFileStore(sessionFile))
	if s.Token != "tok-1" || s.Username() != "admin" {
		t.Errorf("сессия = %+v", s)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	api := newFakeAPI(t)
	sessionFile := setupEnv(t, api.server.URL)

	code, _, stderr := runCLI(t, "wrong\n", "login", "admin")
	if code != exitError {
		t.Fatalf("код = %d, ожидалось %d", code, exitError)
	}
	if !strings.Contains(stderr, "Bad credentials") {
		t.Errorf("stderr = %q, ожидалось сообщение сервера", stderr)
	}
	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Errorf("файл сессии не должен создаваться: %v", err)
	}
}

func TestLogin_PasswordFile(t *testing.T) {
	api := newFakeAPI(t)
	setupEnv(t, api.server.URL)

	pwFile := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(pwFile, []byte("secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "", "login", "editor", "--password-file", pwFile)
	if code != exitOK {
		t.Fatalf("код = %d, stderr = %q", code, stderr)
	}
}

func TestWhoami(t *testing.T) {
	api := newFakeAPI(t)
	setupEnv(t, api.server.URL)

	code, _, stderr := runCLI(t, "", "whoami")
	if code != exitError || !strings.Contains(stderr, "Not logged in") {
		t.Fatalf("без сессии: код = %d, stderr = %q", code, stderr)
	}

	if code, _, stderr := runCLI(t, "secret\n", "login", "admin"); code != exitOK {
		t.Fatalf("login: код = %d, stderr = %q", code, stderr)
	}
	code, stdout, _ := runCLI(t, "", "whoami")
	if code != exitOK {
		t.Fatalf("код = %d", code)
	}
	for _, want := range []string{"Username: admin", "admin@example.com"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout = %q, ожидалось %q", stdout, want)
		}
	}
}

func TestLogout(t *testing.T) {
	api := newFakeAPI(t)
	sessionFile := setupEnv(t, api.server.URL)

	if code, _, stderr := runCLI(t, "secret\n", "login", "admin"); code != exitOK {
		t.Fatalf("login: код = %d, stderr = %q", code, stderr)
	}

	code, stdout, _ := runCLI(t, "", "logout")
	if code != exitOK || !strings.Contains(stdout, "Logged out admin") {
		t.Fatalf("код = %d, stdout = %q", code, stdout)
	}
	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Errorf("файл сессии должен быть удалён: %v", err)
	}

	// Повторный выход не ошибка
	if code, _, _ := runCLI(t, "", "logout"); code != exitOK {
		t.Errorf("повторный logout: код = %d", code)
	}
}

func TestFilesUnused(t *testing.T) {
	api := newFakeAPI(t)
	setupEnv(t, api.server.URL)

	if code, _, stderr := runCLI(t, "secret\n", "login", "admin"); code != exitOK {
		t.Fatalf("login: код = %d, stderr = %q", code, stderr)
	}

	code, stdout, stderr := runCLI(t, "", "files", "unused")
	if code != exitOK {
		t.Fatalf("код = %d, stderr = %q", code, stderr)
	}
	for _, want := range []string{"Unused files: 2", "/uploads/a.png", "/uploads/b.png"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout = %q, ожидалось %q", stdout, want)
		}
	}
}

func TestFilesUnused_ExpiredToken(t *testing.T) {
	api := newFakeAPI(t)
	sessionFile := setupEnv(t, api.server.URL)

	store := session.NewFileStore(sessionFile)
	if err := store.Set(session.KeyToken, "stale"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(session.KeyUser, `{"username":"admin","email":"admin@example.com"}`); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "", "files", "unused")
	if code != exitError {
		t.Fatalf("код = %d, ожидалось %d", code, exitError)
	}
	if !strings.Contains(stderr, "Session expired") {
		t.Errorf("stderr = %q", stderr)
	}
	if s := session.Restore(store); s.IsAuthenticated() {
		t.Error("сессия должна быть удалена после 401")
	}
}

func TestFilesCleanup(t *testing.T) {
	tests := []struct {
		name        string
		stdin       string
		args        []string
		wantDeleted int32
		wantOut     string
	}{
		{"отказ в подтверждении", "n\n", nil, 0, "Cancelled"},
		{"пустой ответ — отказ", "\n", nil, 0, "Cancelled"},
		{"подтверждение", "y\n", nil, 1, "Deleted 2 files"},
		{"флаг --yes", "", []string{"--yes"}, 1, "Deleted 2 files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t)
			setupEnv(t, api.server.URL)
			if code, _, stderr := runCLI(t, "secret\n", "login", "admin"); code != exitOK {
				t.Fatalf("login: код = %d, stderr = %q", code, stderr)
			}

			args := append([]string{"files", "cleanup"}, tt.args...)
			code, stdout, stderr := runCLI(t, tt.stdin, args...)
			if code != exitOK {
				t.Fatalf("код = %d, stderr = %q", code, stderr)
			}
			if got := api.deleted.Load(); got != tt.wantDeleted {
				t.Errorf("удалений = %d, ожидалось %d", got, tt.wantDeleted)
			}
			if !strings.Contains(stdout, tt.wantOut) {
				t.Errorf("stdout = %q, ожидалось %q", stdout, tt.wantOut)
			}
		})
	}
}

func TestUsage(t *testing.T) {
	api := newFakeAPI(t)
	setupEnv(t, api.server.URL)

	tests := []struct {
		name string
		args []string
	}{
		{"без команды", nil},
		{"неизвестная команда", []string{"publish"}},
		{"files без подкоманды", []string{"files"}},
		{"неизвестная подкоманда", []string{"files", "purge"}},
		{"login без имени", []string{"login"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tt.args...)
			if code != exitUsage {
				t.Errorf("код = %d, ожидалось %d", code, exitUsage)
			}
			if !strings.Contains(stderr, "Usage: cms-adminctl") {
				t.Errorf("stderr = %q, ожидалась справка", stderr)
			}
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := setupEnv(t, "")
	cfgDir := filepath.Dir(dir)
	if err := os.MkdirAll(cfgDir, 0o700); err != nil {
		t.Fatal(err)
	}
	yamlData := "api_url: http://from-file:8080/\ntimeout: 5s\nusername: editor\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yamlData), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		env         string
		args        []string
		wantURL     string
		wantTimeout time.Duration
	}{
		{"только файл", "", nil, "http://from-file:8080", 5 * time.Second},
		{"окружение поверх файла", "http://from-env:8080", nil, "http://from-env:8080", 5 * time.Second},
		{"флаги поверх окружения", "http://from-env:8080", []string{"--api-url", "http://from-flag:8080", "--timeout", "2s"}, "http://from-flag:8080", 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CMS_API_URL", tt.env)
			fv := &flagValues{}
			fs := newFlagSet(fv)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg, err := loadConfig(fs, fv)
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if cfg.APIURL != tt.wantURL {
				t.Errorf("APIURL = %q, ожидалось %q", cfg.APIURL, tt.wantURL)
			}
			if cfg.Timeout != tt.wantTimeout {
				t.Errorf("Timeout = %s, ожидалось %s", cfg.Timeout, tt.wantTimeout)
			}
			if cfg.Username != "editor" {
				t.Errorf("Username = %q", cfg.Username)
			}
			if cfg.SessionFile != dir {
				t.Errorf("SessionFile = %q, ожидалось %q", cfg.SessionFile, dir)
			}
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	setupEnv(t, "http://localhost:8080")
	fv := &flagValues{}
	fs := newFlagSet(fv)
	if err := fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(fs, fv); err == nil {
		t.Error("ожидалась ошибка для отсутствующего файла --config")
	}
}
