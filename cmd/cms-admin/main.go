// Точка входа CMS Admin — панель администратора сайта поверх CMS API.
// Загружает конфигурацию, проверяет шаблоны и переводы, создаёт клиент
// CMS API, при настроенном PostgreSQL применяет миграции журнала действий,
// запускает topologymetrics и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/cms-admin/internal/api/handlers"
	"github.com/bigkaa/cms-admin/internal/cmsapi"
	"github.com/bigkaa/cms-admin/internal/config"
	"github.com/bigkaa/cms-admin/internal/database"
	"github.com/bigkaa/cms-admin/internal/forms"
	"github.com/bigkaa/cms-admin/internal/listing"
	"github.com/bigkaa/cms-admin/internal/repository"
	"github.com/bigkaa/cms-admin/internal/server"
	"github.com/bigkaa/cms-admin/internal/service"
	"github.com/bigkaa/cms-admin/internal/session"
	"github.com/bigkaa/cms-admin/internal/ui/auth"
	uihandlers "github.com/bigkaa/cms-admin/internal/ui/handlers"
	"github.com/bigkaa/cms-admin/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/cms-admin/internal/ui/middleware"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

// retentionInterval — период очистки журнала действий.
const retentionInterval = time.Hour

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("CMS Admin запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("api_url", cfg.APIURL),
	)

	if os.Getenv("CMS_DEPHEALTH_GROUP") == "" {
		logger.Warn("CMS_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Переводы и шаблоны страниц: ошибка разбора — ошибка старта
	bundle := i18n.Init(logger)
	if err := i18n.LoadFromEmbedFS(bundle, logger); err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := pages.Validate(); err != nil {
		logger.Error("Ошибка разбора шаблонов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Проверка ответов CMS API по OpenAPI-контракту (опционально)
	var contract *cmsapi.Contract
	if cfg.APIContract != config.ContractOff {
		contract, err = cmsapi.LoadContract(cfg.APIURL, cfg.APIContract == config.ContractEnforce, logger)
		if err != nil {
			logger.Error("Ошибка загрузки контракта CMS API", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Проверка контракта CMS API включена", slog.String("mode", cfg.APIContract))
	}

	// 5. Клиент CMS API: токен берётся из контекста запроса
	client, err := cmsapi.New(cmsapi.Options{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.APITimeout,
		CACertPath: cfg.APICACertPath,
		Contract:   contract,
	}, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента CMS API", slog.String("error", err.Error()))
		os.Exit(1)
	}
	api := cmsapi.NewAPI(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6. Журнал действий (PostgreSQL, опционально)
	var (
		journal service.Journal = service.NoopJournal{}
		pgDB    *sql.DB
		checks  = []handlers.Check{
			{Checker: cmsapi.NewReadinessChecker(client, cfg.APIHealthPath), Critical: true},
		}
	)
	if cfg.JournalEnabled() {
		logger.Info("Применение миграций журнала действий...")
		if err := database.Migrate(cfg, logger); err != nil {
			logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
			os.Exit(1)
		}

		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		// Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode)
		pgDB = stdlib.OpenDBFromPool(pool)
		defer pgDB.Close()

		activity := service.NewActivityJournal(repository.NewActivityRepository(pool), logger)
		go activity.RunRetention(ctx, cfg.JournalRetention, retentionInterval)
		journal = activity

		checks = append(checks, handlers.Check{Checker: database.NewReadinessChecker(pool)})
		logger.Info("Журнал действий включён",
			slog.String("retention", cfg.JournalRetention.String()),
		)
	} else {
		logger.Info("Журнал действий отключён (CMS_DB_HOST не задан)")
	}

	// 7. topologymetrics — мониторинг зависимостей (CMS API + PostgreSQL)
	var health uihandlers.HealthSource
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"cms-admin",
		cfg.DephealthGroup,
		service.DephealthTargets{
			APIURL:        cfg.APIURL,
			APIHealthPath: cfg.APIHealthPath,
			DB:            pgDB,
			PGConnURL:     cfg.DatabaseURL(),
		},
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
	} else {
		health = dephealthSvc
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 8. Сессии: зашифрованные cookie + менеджер входа через CMS API
	cookies, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SecureCookie)
	if err != nil {
		logger.Error("Ошибка создания Session Manager", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sessions := session.NewManager(client, logger)

	// 9. Страницы панели
	deps := &uihandlers.Deps{
		API:            api,
		Sessions:       sessions,
		Cookies:        cookies,
		Guard:          uimiddleware.NewUIAuth(cookies, sessions, logger),
		Lists:          listing.NewRegistry(cfg.StateCacheSize, cfg.StateTTL),
		Drafts:         forms.NewStore(cfg.StateCacheSize, cfg.StateTTL),
		Journal:        journal,
		Health:         health,
		PageSize:       cfg.DefaultPageSize,
		FlashDismiss:   cfg.FlashDismiss,
		UploadMaxBytes: cfg.UploadMaxBytes,
		Logger:         logger,
	}
	ui := server.NewUIComponents(deps)
	logger.Info("Панель инициализирована",
		slog.Bool("secure_cookie", cfg.SecureCookie),
		slog.Int("page_size", cfg.DefaultPageSize),
	)

	// 10. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, handlers.NewHealthHandler(checks...), ui)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 11. Graceful shutdown фоновых задач
	logger.Info("Останавливаем фоновые задачи...")
	cancel()
	if dephealthSvc != nil && health != nil {
		dephealthSvc.Stop()
	}

	logger.Info("CMS Admin остановлен")
}
