package cmsapi

import (
	"context"
	"fmt"
	"time"
)

// readinessTimeout — таймаут проверки доступности CMS API.
const readinessTimeout = 3 * time.Second

// ReadinessChecker — проверка доступности CMS API для /health/ready.
type ReadinessChecker struct {
	client     *Client
	healthPath string
}

// NewReadinessChecker создаёт проверку по health endpoint CMS API.
func NewReadinessChecker(client *Client, healthPath string) *ReadinessChecker {
	return &ReadinessChecker{client: client, healthPath: healthPath}
}

// Name возвращает имя проверки.
func (c *ReadinessChecker) Name() string {
	return "cms-api"
}

// CheckReady запрашивает health endpoint CMS API.
// Возвращает статус ("ok", "fail") и сообщение.
func (c *ReadinessChecker) CheckReady(ctx context.Context) (status string, message string) {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := c.client.Ping(ctx, c.healthPath); err != nil {
		return "fail", fmt.Sprintf("CMS API недоступен: %v", err)
	}
	return "ok", "CMS API отвечает"
}
