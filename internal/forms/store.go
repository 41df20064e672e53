package forms

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store — хранилище черновиков в LRU-кэше с TTL.
type Store struct {
	cache *expirable.LRU[string, any]
}

// NewStore создаёт хранилище на size черновиков с временем жизни ttl.
func NewStore(size int, ttl time.Duration) *Store {
	return &Store{cache: expirable.NewLRU[string, any](size, nil, ttl)}
}

// Save сохраняет черновик (повторное сохранение продлевает TTL).
func Save[F any](s *Store, d *Draft[F]) {
	s.cache.Add(d.ID, d)
}

// Lookup возвращает черновик id, принадлежащий owner.
func Lookup[F any](s *Store, owner, id string) (*Draft[F], error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	d, ok := v.(*Draft[F])
	if !ok || d.Owner != owner {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// Discard удаляет черновик.
func (s *Store) Discard(id string) {
	s.cache.Remove(id)
}

// Len возвращает число хранимых черновиков.
func (s *Store) Len() int {
	return s.cache.Len()
}
