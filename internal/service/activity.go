// activity.go — журнал действий администраторов.
// Запись в журнал никогда не прерывает операцию пользователя: ошибки
// PostgreSQL только логируются. Без базы данных используется NoopJournal.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/cms-admin/internal/domain/model"
	"github.com/bigkaa/cms-admin/internal/repository"
)

// Prometheus-метрики журнала.
var activityRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cms_activity_records_total",
	Help: "Общее количество записей журнала действий.",
}, []string{"outcome", "result"})

// Journal — журнал действий.
type Journal interface {
	// Record сохраняет запись; ошибки не возвращаются.
	Record(ctx context.Context, a model.Activity)
	// Recent возвращает последние записи (новые первыми).
	Recent(ctx context.Context, username string, limit int) ([]model.Activity, error)
	// Enabled сообщает, ведётся ли журнал.
	Enabled() bool
}

// ActivityJournal — журнал в PostgreSQL.
type ActivityJournal struct {
	repo   repository.ActivityRepository
	logger *slog.Logger
}

// NewActivityJournal создаёт журнал поверх репозитория.
func NewActivityJournal(repo repository.ActivityRepository, logger *slog.Logger) *ActivityJournal {
	return &ActivityJournal{
		repo:   repo,
		logger: logger.With(slog.String("component", "activity_journal")),
	}
}

// Record сохраняет запись журнала.
func (j *ActivityJournal) Record(ctx context.Context, a model.Activity) {
	// Запись не должна отменяться вместе с запросом пользователя.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	if err := j.repo.Insert(ctx, &a); err != nil {
		activityRecordsTotal.WithLabelValues(a.Outcome, "error").Inc()
		j.logger.Warn("Не удалось записать действие в журнал",
			slog.String("username", a.Username),
			slog.String("action", a.Action),
			slog.String("resource", a.Resource),
			slog.String("error", err.Error()),
		)
		return
	}
	activityRecordsTotal.WithLabelValues(a.Outcome, "ok").Inc()
}

// Recent возвращает последние записи журнала.
func (j *ActivityJournal) Recent(ctx context.Context, username string, limit int) ([]model.Activity, error) {
	return j.repo.ListRecent(ctx, username, limit)
}

// Enabled реализует Journal.
func (j *ActivityJournal) Enabled() bool {
	return true
}

// RunRetention периодически удаляет записи старше retention.
// Блокируется до отмены ctx.
func (j *ActivityJournal) RunRetention(ctx context.Context, retention, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		deleted, err := j.repo.DeleteBefore(ctx, time.Now().Add(-retention))
		switch {
		case err != nil && ctx.Err() == nil:
			j.logger.Warn("Ошибка очистки журнала", slog.String("error", err.Error()))
		case deleted > 0:
			j.logger.Info("Журнал очищен", slog.Int64("deleted", deleted))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// NoopJournal — журнал-заглушка при отключённой базе данных.
type NoopJournal struct{}

// Record ничего не делает.
func (NoopJournal) Record(context.Context, model.Activity) {}

// Recent возвращает пустой список.
func (NoopJournal) Recent(context.Context, string, int) ([]model.Activity, error) {
	return nil, nil
}

// Enabled реализует Journal.
func (NoopJournal) Enabled() bool {
	return false
}
