package repository

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/cms-admin/internal/config"
	"github.com/bigkaa/cms-admin/internal/database"
	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// setupTestDB запускает PostgreSQL контейнер и применяет миграции.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("cms_test"),
		postgres.WithUsername("cms"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	t.Setenv("CMS_SESSION_SECRET", "test-secret")
	t.Setenv("CMS_DB_HOST", host)
	t.Setenv("CMS_DB_PORT", port.Port())
	t.Setenv("CMS_DB_NAME", "cms_test")
	t.Setenv("CMS_DB_USER", "cms")
	t.Setenv("CMS_DB_PASSWORD", "test-password")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return pool
}

func TestActivityRepository(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(pool)

	entries := []*model.Activity{
		{Username: "admin", Action: "create", Resource: "blogs", Outcome: model.OutcomeSuccess},
		{Username: "editor", Action: "delete", Resource: "news", ResourceID: "7", Outcome: model.OutcomeFailure, Message: "Not found"},
		{Username: "admin", Action: "toggle-publish", Resource: "blogs", ResourceID: "3", Outcome: model.OutcomeSuccess},
	}
	for _, e := range entries {
		if err := repo.Insert(ctx, e); err != nil {
			t.Fatalf("Insert() ошибка: %v", err)
		}
		if e.ID == 0 || e.OccurredAt.IsZero() {
			t.Errorf("Insert() не заполнил ID/OccurredAt: %+v", e)
		}
	}

	all, err := repo.ListRecent(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListRecent() ошибка: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListRecent() вернул %d записей, ожидается 3", len(all))
	}
	if all[0].Action != "toggle-publish" {
		t.Errorf("первой должна быть последняя запись, получено %q", all[0].Action)
	}

	mine, err := repo.ListRecent(ctx, "admin", 10)
	if err != nil {
		t.Fatalf("ListRecent(admin) ошибка: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("ListRecent(admin) вернул %d записей, ожидается 2", len(mine))
	}

	limited, _ := repo.ListRecent(ctx, "", 1)
	if len(limited) != 1 {
		t.Errorf("limit не применён: %d записей", len(limited))
	}

	deleted, err := repo.DeleteBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore() ошибка: %v", err)
	}
	if deleted != 3 {
		t.Errorf("DeleteBefore() удалил %d записей, ожидается 3", deleted)
	}
}
