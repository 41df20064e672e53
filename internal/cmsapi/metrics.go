// metrics.go — Prometheus метрики исходящих запросов к CMS API.
// Регистрирует метрики: cms_api_requests_total, cms_api_request_duration_seconds.
package cmsapi

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// apiRequestsTotal — количество запросов к CMS API.
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_api_requests_total",
			Help: "Общее количество запросов к CMS API",
		},
		[]string{"method", "resource", "status"},
	)

	// apiRequestDuration — длительность запросов к CMS API.
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cms_api_request_duration_seconds",
			Help:    "Длительность запросов к CMS API в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "resource"},
	)

	// apiContractViolations — ответы, не прошедшие проверку контракта.
	apiContractViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_api_contract_violations_total",
			Help: "Количество ответов CMS API, не соответствующих OpenAPI-контракту",
		},
		[]string{"resource"},
	)
)

// resourceLabel сводит путь запроса к имени ресурса,
// чтобы идентификаторы не попадали в лейблы.
// /api/admin/blogs/12/toggle-publish → blogs, /api/auth/login → auth
func resourceLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/admin/"):
		rest := strings.TrimPrefix(path, "/api/admin/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		if rest == "" {
			return "other"
		}
		return rest
	case strings.HasPrefix(path, "/api/auth/"):
		return "auth"
	default:
		return "other"
	}
}
