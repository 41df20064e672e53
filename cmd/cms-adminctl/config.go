package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ctlConfig — параметры CLI. Источники по возрастанию приоритета:
// значения по умолчанию, YAML-файл, переменные окружения CMS_*, флаги.
type ctlConfig struct {
	APIURL      string        `yaml:"api_url"`
	Timeout     time.Duration `yaml:"timeout"`
	CACertPath  string        `yaml:"ca_cert_path"`
	SessionFile string        `yaml:"session_file"`
	Username    string        `yaml:"username"`
}

// flagValues — флаги командной строки.
type flagValues struct {
	configPath   string
	apiURL       string
	timeout      time.Duration
	caCertPath   string
	sessionFile  string
	passwordFile string
	yes          bool
	verbose      bool
}

// newFlagSet регистрирует флаги CLI.
func newFlagSet(fv *flagValues) *pflag.FlagSet {
	fs := pflag.NewFlagSet("cms-adminctl", pflag.ContinueOnError)
	fs.StringVar(&fv.configPath, "config", "", "path to YAML config (default $XDG_CONFIG_HOME/cms-admin/config.yaml)")
	fs.StringVar(&fv.apiURL, "api-url", "", "CMS API origin, e.g. http://localhost:8080")
	fs.DurationVar(&fv.timeout, "timeout", 0, "CMS API request timeout")
	fs.StringVar(&fv.caCertPath, "ca-cert", "", "CA certificate for the CMS API TLS connection")
	fs.StringVar(&fv.sessionFile, "session-file", "", "session file (default $XDG_CONFIG_HOME/cms-admin/session.json)")
	fs.StringVar(&fv.passwordFile, "password-file", "", "read the login password from a file instead of the prompt")
	fs.BoolVarP(&fv.yes, "yes", "y", false, "do not ask for confirmation")
	fs.BoolVarP(&fv.verbose, "verbose", "v", false, "debug logging to stderr")
	return fs
}

// configDir возвращает каталог настроек панели.
func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "cms-admin")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cms-admin")
}

// loadConfig собирает конфигурацию из всех источников.
// Отсутствующий файл по умолчанию не ошибка; явно указанный — ошибка.
func loadConfig(fs *pflag.FlagSet, fv *flagValues) (ctlConfig, error) {
	cfg := ctlConfig{
		APIURL:  "http://localhost:8080",
		Timeout: 30 * time.Second,
	}

	path := fv.configPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(configDir(), "config.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return ctlConfig{}, fmt.Errorf("разбор %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return ctlConfig{}, fmt.Errorf("чтение конфигурации: %w", err)
	}

	if v := os.Getenv("CMS_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("CMS_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ctlConfig{}, fmt.Errorf("CMS_API_TIMEOUT: некорректная длительность: %q", v)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("CMS_API_CA_CERT_PATH"); v != "" {
		cfg.CACertPath = v
	}
	if v := os.Getenv("CMS_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}

	if fs.Changed("api-url") {
		cfg.APIURL = fv.apiURL
	}
	if fs.Changed("timeout") {
		cfg.Timeout = fv.timeout
	}
	if fs.Changed("ca-cert") {
		cfg.CACertPath = fv.caCertPath
	}
	if fs.Changed("session-file") {
		cfg.SessionFile = fv.sessionFile
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		return ctlConfig{}, errors.New("не задан адрес CMS API (--api-url или CMS_API_URL)")
	}
	if cfg.Timeout <= 0 {
		return ctlConfig{}, fmt.Errorf("таймаут должен быть положительным: %s", cfg.Timeout)
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(configDir(), "session.json")
	}
	return cfg, nil
}
