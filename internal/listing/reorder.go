package listing

import (
	"context"
	"slices"
)

// Direction — направление перемещения элемента.
type Direction string

// Направления перемещения.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection разбирает направление из строки.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Up:
		return Up, true
	case Down:
		return Down, true
	}
	return "", false
}

// Move возвращает копию items, в которой элемент с ключом target
// поменян местами с соседом в направлении dir. Возвращает false,
// если элемента нет или он уже на границе списка.
func Move[T any, K comparable](items []T, key func(T) K, target K, dir Direction) ([]T, bool) {
	idx := slices.IndexFunc(items, func(item T) bool { return key(item) == target })
	if idx < 0 {
		return items, false
	}
	other := idx - 1
	if dir == Down {
		other = idx + 1
	}
	if other < 0 || other >= len(items) {
		return items, false
	}
	out := slices.Clone(items)
	out[idx], out[other] = out[other], out[idx]
	return out, true
}

// ReorderSaver сохраняет порядок идентификаторов на сервере.
type ReorderSaver func(ctx context.Context, ids []int64) error

// Reorder перемещает элемент id на одну позицию. Новый порядок
// применяется сразу, затем сохраняется через save. При ошибке сохранения
// восстанавливается прежний порядок и список перезапрашивается с сервера.
// Перемещение за границу списка ничего не делает.
func (c *Collection[T]) Reorder(ctx context.Context, key func(T) int64, id int64, dir Direction, save ReorderSaver) error {
	c.mu.Lock()
	prev := c.items
	moved, ok := Move(prev, key, id, dir)
	if !ok {
		c.mu.Unlock()
		return nil
	}
	c.items = moved
	c.issued++
	c.mu.Unlock()

	ids := make([]int64, len(moved))
	for i, item := range moved {
		ids[i] = key(item)
	}

	if err := save(ctx, ids); err != nil {
		c.mu.Lock()
		c.items = prev
		c.mu.Unlock()
		_, _ = c.Reload(ctx)
		return err
	}
	return nil
}
