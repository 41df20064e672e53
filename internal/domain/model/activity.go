package model

import "time"

// Результаты действий в журнале.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Activity — запись журнала действий администраторов.
// Хранится в таблице admin_activity.
type Activity struct {
	// ID — идентификатор записи
	ID int64
	// OccurredAt — время действия
	OccurredAt time.Time
	// Username — кто выполнил действие
	Username string
	// Action — тип действия (create, update, delete, toggle-publish, ...)
	Action string
	// Resource — ресурс CMS (blogs, news, ...)
	Resource string
	// ResourceID — идентификатор объекта (может быть пустым)
	ResourceID string
	// Outcome — success или failure
	Outcome string
	// Message — текст ошибки или пояснение
	Message string
}
