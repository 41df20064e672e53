package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/bigkaa/cms-admin/internal/session"
)

// login запрашивает пароль и сохраняет сессию в файл.
func (a *app) login(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", errUsage)
	}

	password, err := a.readPassword()
	if err != nil {
		return err
	}

	s, err := a.sessions.Login(ctx, a.store, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Logged in as %s\n", s.Username())
	fmt.Fprintf(a.stdout, "Session saved to %s\n", a.store.Path())
	return nil
}

// readPassword читает пароль из --password-file, с терминала без эха
// либо первой строкой стандартного ввода.
func (a *app) readPassword() (string, error) {
	if a.flags.passwordFile != "" {
		data, err := os.ReadFile(a.flags.passwordFile)
		if err != nil {
			return "", fmt.Errorf("чтение файла пароля: %w", err)
		}
		password := strings.TrimRight(string(data), "\r\n")
		if password == "" {
			return "", fmt.Errorf("файл пароля %s пуст", a.flags.passwordFile)
		}
		return password, nil
	}

	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.stderr, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		if err != nil {
			return "", fmt.Errorf("чтение пароля: %w", err)
		}
		return string(raw), nil
	}

	line, err := readLine(a.stdin)
	if err != nil {
		return "", fmt.Errorf("чтение пароля: %w", err)
	}
	if line == "" {
		return "", errors.New("пароль не задан")
	}
	return line, nil
}

// readLine читает одну строку без завершающего перевода строки.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// logout удаляет файл сессии. Повторный выход не ошибка.
func (a *app) logout() error {
	s := a.sessions.Restore(a.store)
	a.sessions.Logout(a.store)
	if s.IsAuthenticated() {
		fmt.Fprintf(a.stdout, "Logged out %s\n", s.Username())
		return nil
	}
	fmt.Fprintln(a.stdout, "Not logged in")
	return nil
}

// whoami печатает пользователя сохранённой сессии и срок действия токена.
func (a *app) whoami() error {
	s := a.sessions.Restore(a.store)
	if !s.IsAuthenticated() {
		return errNoSession
	}

	fmt.Fprintf(a.stdout, "Username: %s\n", s.Username())
	if s.User != nil && s.User.Email != "" {
		fmt.Fprintf(a.stdout, "Email:    %s\n", s.User.Email)
	}
	if info, ok := session.InspectToken(s.Token); ok && info.ExpiresAt != nil {
		state := ""
		if info.Expired(time.Now()) {
			state = " (expired)"
		}
		fmt.Fprintf(a.stdout, "Expires:  %s%s\n", info.ExpiresAt.Local().Format(time.RFC3339), state)
	}
	fmt.Fprintf(a.stdout, "Session:  %s\n", a.store.Path())
	return nil
}

// filesUnused печатает файлы хранилища, на которые нет ссылок.
func (a *app) filesUnused(ctx context.Context) error {
	client, _, err := a.authorized()
	if err != nil {
		return err
	}
	files, err := client.ListUnusedFiles(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Unused files: %d\n", files.Count)
	for _, f := range files.Files {
		fmt.Fprintf(a.stdout, "  %s\n", f)
	}
	return nil
}

// filesCleanup удаляет все неиспользуемые файлы после подтверждения.
func (a *app) filesCleanup(ctx context.Context) error {
	client, s, err := a.authorized()
	if err != nil {
		return err
	}
	files, err := client.ListUnusedFiles(ctx)
	if err != nil {
		return err
	}
	if files.Count == 0 {
		fmt.Fprintln(a.stdout, "No unused files to delete")
		return nil
	}

	if !a.flags.yes {
		fmt.Fprintf(a.stderr, "Delete %d unused files? [y/N]: ", files.Count)
		answer, err := readLine(a.stdin)
		if err != nil {
			return fmt.Errorf("чтение подтверждения: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			fmt.Fprintln(a.stdout, "Cancelled")
			return nil
		}
	}

	message, err := client.DeleteUnusedFiles(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Неиспользуемые файлы удалены",
		slog.String("username", s.Username()),
		slog.Int("count", files.Count),
	)
	if message == "" {
		message = fmt.Sprintf("Deleted %d unused files", files.Count)
	}
	fmt.Fprintln(a.stdout, message)
	return nil
}
