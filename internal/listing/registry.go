// registry.go — хранение состояния списков между запросами.
// Состояние привязано к сессии (владельцу) и имени ресурса и живёт
// в LRU-кэше с TTL, поэтому брошенные сессии вытесняются сами.
package listing

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики реестра состояний.
var (
	stateHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cms_state_cache_hits_total",
		Help: "Общее количество попаданий в кэш состояний списков.",
	})
	stateMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cms_state_cache_misses_total",
		Help: "Общее количество промахов кэша состояний списков.",
	})
)

// Registry — LRU-кэш состояний списков.
type Registry struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, any]
}

// NewRegistry создаёт реестр на size записей с временем жизни ttl.
func NewRegistry(size int, ttl time.Duration) *Registry {
	return &Registry{cache: expirable.NewLRU[string, any](size, nil, ttl)}
}

// OwnerKey превращает токен сессии в ключ владельца состояния,
// чтобы токен не хранился в ключах кэша.
func OwnerKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

// Obtain возвращает состояние name владельца owner, создавая его через
// create при отсутствии (или при несовпадении типа).
func Obtain[V any](r *Registry, owner, name string, create func() V) V {
	key := owner + "|" + name

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache.Get(key); ok {
		if typed, ok := v.(V); ok {
			stateHitsTotal.Inc()
			return typed
		}
	}
	stateMissesTotal.Inc()
	v := create()
	r.cache.Add(key, v)
	return v
}

// Forget удаляет все состояния владельца (при выходе из сессии).
func (r *Registry) Forget(owner string) {
	prefix := owner + "|"
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			r.cache.Remove(key)
		}
	}
}

// Len возвращает число хранимых состояний.
func (r *Registry) Len() int {
	return r.cache.Len()
}
