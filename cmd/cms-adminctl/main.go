// cms-adminctl — консольный клиент панели CMS для операторов.
// Использует тот же менеджер сессий, что и веб-панель; сессия хранится
// в файле $XDG_CONFIG_HOME/cms-admin/session.json с правами 0600.
//
// Команды: login, logout, whoami, files unused, files cleanup.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/session"
)

// Коды завершения.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usageText = `Usage: cms-adminctl <command> [flags]

Commands:
  login [username]   sign in and save the session
  logout             forget the saved session
  whoami             show the signed-in administrator
  files unused       list storage files no content refers to
  files cleanup      delete all unused files

Flags:
`

// errUsage — неверные аргументы командной строки.
var errUsage = errors.New("usage")

// errNoSession — команда требует входа.
var errNoSession = errors.New("not logged in")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app — окружение выполнения команды.
type app struct {
	cfg      ctlConfig
	flags    *flagValues
	store    *session.FileStore
	sessions *session.Manager
	logger   *slog.Logger
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

// run разбирает аргументы, выполняет команду и возвращает код завершения.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fv := &flagValues{}
	fs := newFlagSet(fv)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(fs, fv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	level := slog.LevelWarn
	if fv.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("component", "cli"))

	client, err := cmsapi.New(cmsapi.Options{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.Timeout,
		CACertPath: cfg.CACertPath,
	}, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	a := &app{
		cfg:      cfg,
		flags:    fv,
		store:    session.NewFileStore(cfg.SessionFile),
		sessions: session.NewManager(client, logger),
		logger:   logger,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}

	err = a.dispatch(ctx, fs.Args())
	var authErr *session.AuthError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &authErr):
		// Отказ во входе (в том числе 401) не затрагивает сохранённую сессию.
		fmt.Fprintf(stderr, "Error: %s\n", authErr.Message)
		return exitError
	case errors.Is(err, errUsage):
		fs.Usage()
		return exitUsage
	case errors.Is(err, errNoSession):
		fmt.Fprintln(stderr, `Not logged in. Run "cms-adminctl login" first.`)
		return exitError
	case errors.Is(err, cmsapi.ErrUnauthorized):
		a.sessions.Logout(a.store)
		fmt.Fprintln(stderr, `Session expired. Run "cms-adminctl login" again.`)
		return exitError
	default:
		fmt.Fprintf(stderr, "Error: %s\n", cmsapi.MessageOr(err, err.Error()))
		return exitError
	}
}

// dispatch выбирает команду по позиционным аргументам.
func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "login":
		if len(args) > 2 {
			return errUsage
		}
		username := a.cfg.Username
		if len(args) == 2 {
			username = args[1]
		}
		return a.login(ctx, username)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "files":
		if len(args) != 2 {
			return errUsage
		}
		switch args[1] {
		case "unused":
			return a.filesUnused(ctx)
		case "cleanup":
			return a.filesCleanup(ctx)
		}
	}
	return errUsage
}

// authorized возвращает клиент с токеном сохранённой сессии.
func (a *app) authorized() (*cmsapi.Client, session.Session, error) {
	s := a.sessions.Restore(a.store)
	if !s.IsAuthenticated() {
		return nil, s, errNoSession
	}
	client, err := cmsapi.New(cmsapi.Options{
		BaseURL:       a.cfg.APIURL,
		Timeout:       a.cfg.Timeout,
		CACertPath:    a.cfg.CACertPath,
		TokenProvider: cmsapi.StaticTokenProvider(s.Token),
	}, a.logger)
	if err != nil {
		return nil, s, err
	}
	return client, s, nil
}
