package i18n

import (
	"fmt"
	"io/fs"
	"log/slog"
)

// LoadFromEmbedFS загружает в bundle встроенные каталоги всех Languages.
func LoadFromEmbedFS(bundle *Bundle, logger *slog.Logger) error {
	return LoadFromFS(bundle, LocaleFS, logger)
}

// LoadFromFS загружает каталоги locales/<lang>.json из fsys.
// Отсутствие каталога любого из Languages — ошибка старта.
func LoadFromFS(bundle *Bundle, fsys fs.FS, logger *slog.Logger) error {
	for _, lang := range Languages {
		path := "locales/" + lang + ".json"
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("i18n: чтение %s: %w", path, err)
		}
		if err := bundle.LoadMessages(lang, data); err != nil {
			return err
		}
	}

	logger.Info("Переводы панели загружены", slog.Any("languages", Languages))
	return nil
}
