// dashboard.go — главная страница панели: разделы, сведения о сессии,
// состояние зависимостей и последние действия администратора.
package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/bigkaa/cms-admin/internal/session"
	uimiddleware "github.com/bigkaa/cms-admin/internal/ui/middleware"
	"github.com/bigkaa/cms-admin/internal/ui/pages"
)

// recentActivityLimit — число действий в журнале на dashboard.
const recentActivityLimit = 10

// DashboardHandler — обработчик страницы Dashboard.
type DashboardHandler struct {
	base
}

// NewDashboardHandler создаёт новый DashboardHandler.
func NewDashboardHandler(deps *Deps) *DashboardHandler {
	return &DashboardHandler{base: newBase(deps, "ui.dashboard")}
}

// HandleDashboard обрабатывает GET /admin/ — отображает страницу Dashboard.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	s, _ := uimiddleware.SessionFromContext(r.Context())

	data := pages.DashboardData{
		Layout:         h.layout(w, r, "dashboard.heading", "dashboard"),
		Sections:       pages.Navigation[1:],
		JournalEnabled: h.deps.Journal.Enabled(),
		Health:         h.health(),
	}
	if s.User != nil {
		data.Email = s.User.Email
	}

	if info, ok := session.InspectToken(s.Token); ok && info.ExpiresAt != nil {
		data.TokenExpires = info.ExpiresAt
		data.TokenExpired = info.Expired(time.Now())
	}

	if data.JournalEnabled {
		activity, err := h.deps.Journal.Recent(r.Context(), s.Username(), recentActivityLimit)
		if err != nil {
			h.logger.Warn("Ошибка чтения журнала действий", slog.String("error", err.Error()))
			data.ActivityError = msgLoadData
		}
		data.Activity = activity
	}

	h.render(w, r, "dashboard", pages.Dashboard(data))
}

// health возвращает состояние зависимостей, отсортированное по имени.
func (h *DashboardHandler) health() []pages.HealthItem {
	if h.deps.Health == nil {
		return nil
	}
	status := h.deps.Health.Health()
	items := make([]pages.HealthItem, 0, len(status))
	for name, healthy := range status {
		items = append(items, pages.HealthItem{Name: name, Healthy: healthy})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
