package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// ActivityRepository — интерфейс для таблицы admin_activity.
type ActivityRepository interface {
	// Insert добавляет запись; заполняет ID и OccurredAt.
	Insert(ctx context.Context, a *model.Activity) error
	// ListRecent возвращает последние записи, новые первыми.
	// Пустой username — записи всех пользователей.
	ListRecent(ctx context.Context, username string, limit int) ([]model.Activity, error)
	// DeleteBefore удаляет записи старше before и возвращает их количество.
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// activityRepo — реализация ActivityRepository.
type activityRepo struct {
	db DBTX
}

// NewActivityRepository создаёт репозиторий журнала действий.
func NewActivityRepository(db DBTX) ActivityRepository {
	return &activityRepo{db: db}
}

// Insert добавляет запись журнала.
func (r *activityRepo) Insert(ctx context.Context, a *model.Activity) error {
	query := `
		INSERT INTO admin_activity (username, action, resource, resource_id, outcome, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, occurred_at`

	err := r.db.QueryRow(ctx, query,
		a.Username, a.Action, a.Resource, a.ResourceID, a.Outcome, a.Message,
	).Scan(&a.ID, &a.OccurredAt)
	if err != nil {
		return fmt.Errorf("ошибка записи admin_activity (%s %s): %w", a.Action, a.Resource, err)
	}
	return nil
}

// ListRecent возвращает последние записи журнала.
func (r *activityRepo) ListRecent(ctx context.Context, username string, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, occurred_at, username, action, resource, resource_id, outcome, message
		FROM admin_activity
		WHERE ($1 = '' OR username = $1)
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения admin_activity: %w", err)
	}
	defer rows.Close()

	items := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(
			&a.ID, &a.OccurredAt, &a.Username, &a.Action,
			&a.Resource, &a.ResourceID, &a.Outcome, &a.Message,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования admin_activity: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// DeleteBefore удаляет устаревшие записи журнала.
func (r *activityRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_activity WHERE occurred_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки admin_activity: %w", err)
	}
	return tag.RowsAffected(), nil
}
