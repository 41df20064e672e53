// Пакет forms — черновики форм редактирования.
//
// Черновик хранит значения формы между запросами: добавление элементов
// вложенных списков, загрузку изображений и повторный показ формы после
// ошибки сервера без потери введённых данных. Черновики живут в Store
// и привязаны к сессии владельца.
package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bigkaa/cms-admin/internal/upload"
)

var (
	// ErrDraftNotFound — черновик не найден, истёк или принадлежит другой сессии.
	ErrDraftNotFound = errors.New("черновик формы не найден")
	// ErrUploadInProgress — сохранение запрещено, пока идёт загрузка изображения.
	ErrUploadInProgress = errors.New("дождитесь окончания загрузки изображения")
)

// Prototype создаёт пустой элемент вложенного списка.
type Prototype func() any

// Draft — черновик формы значения типа F.
type Draft[F any] struct {
	// ID — идентификатор черновика в URL
	ID string
	// Owner — ключ сессии владельца
	Owner string
	// Resource — имя ресурса (blogs, about, ...)
	Resource string
	// EditingID — идентификатор редактируемого элемента (пусто — создание)
	EditingID string

	mu     sync.Mutex
	value  F
	protos map[string]Prototype
	binder *upload.Binder
}

// NewDraft создаёт черновик с начальным значением value.
// protos задаёт прототипы элементов списков по форме пути
// ("managementTeam", "subDivisions[].sections").
func NewDraft[F any](owner, resource, editingID string, value F, protos map[string]Prototype, binder *upload.Binder) *Draft[F] {
	return &Draft[F]{
		ID:        uuid.NewString(),
		Owner:     owner,
		Resource:  resource,
		EditingID: editingID,
		value:     value,
		protos:    protos,
		binder:    binder,
	}
}

// Editing сообщает, редактируется ли существующий элемент.
func (d *Draft[F]) Editing() bool {
	return d.EditingID != ""
}

// Value возвращает текущее значение.
func (d *Draft[F]) Value() F {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Update изменяет значение функцией fn.
func (d *Draft[F]) Update(fn func(*F)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.value)
}

// SetField задаёт одно поле по пути.
func (d *Draft[F]) SetField(path, raw string) error {
	return d.Apply(url.Values{path: {raw}})
}

// Apply переносит значения формы в черновик. Ключи, начинающиеся с "_",
// служебные и пропускаются. Для повторяющихся ключей берётся последнее
// значение (скрытое поле "false" перед чекбоксом). Значение меняется
// только если все поля применились без ошибок.
func (d *Draft[F]) Apply(values url.Values) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		if !strings.HasPrefix(k, "_") {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	d.mu.Lock()
	defer d.mu.Unlock()

	tree, err := toTree(d.value)
	if err != nil {
		return fmt.Errorf("черновик %s: %w", d.Resource, err)
	}
	for _, k := range keys {
		vs := values[k]
		if len(vs) == 0 {
			continue
		}
		if err := setValue(tree, k, vs[len(vs)-1]); err != nil {
			return err
		}
	}
	return d.commit(tree)
}

// commit записывает дерево в значение черновика.
func (d *Draft[F]) commit(tree any) error {
	var next F
	if err := fromTree(tree, &next); err != nil {
		return fmt.Errorf("черновик %s: %w", d.Resource, err)
	}
	d.value = next
	return nil
}

// AddItem добавляет пустой элемент в список по пути.
func (d *Draft[F]) AddItem(path string) error {
	proto, ok := d.protos[shapeOf(path)]
	if !ok {
		return fmt.Errorf("список %s не поддерживает добавление", path)
	}
	item, err := toTree(proto())
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	tree, err := toTree(d.value)
	if err != nil {
		return err
	}
	if tree, err = appendItem(tree, path, item); err != nil {
		return err
	}
	return d.commit(tree)
}

// RemoveItem удаляет элемент index из списка по пути.
func (d *Draft[F]) RemoveItem(path string, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	tree, err := toTree(d.value)
	if err != nil {
		return err
	}
	if tree, err = removeItem(tree, path, index); err != nil {
		return err
	}
	return d.commit(tree)
}

// Upload загружает файл и записывает URL в поле path.
// Флаг загрузки ведётся по пути поля.
func (d *Draft[F]) Upload(ctx context.Context, file *upload.File, path string) error {
	if d.binder == nil {
		return fmt.Errorf("черновик %s не поддерживает загрузку", d.Resource)
	}
	return d.binder.Upload(ctx, file, path, func(u string) error {
		return d.SetField(path, u)
	})
}

// Uploading сообщает, идёт ли загрузка поля path.
func (d *Draft[F]) Uploading(path string) bool {
	return d.binder != nil && d.binder.Uploading(path)
}

// UploadError возвращает ошибку последней загрузки.
func (d *Draft[F]) UploadError() error {
	if d.binder == nil {
		return nil
	}
	return d.binder.Error()
}

// CheckSubmit проверяет, что черновик можно отправлять.
func (d *Draft[F]) CheckSubmit() error {
	if d.binder != nil && d.binder.AnyUploading() {
		return ErrUploadInProgress
	}
	return nil
}

// Field возвращает строковое значение поля path.
func (d *Draft[F]) Field(path string) (string, bool) {
	steps, err := parsePath(path)
	if err != nil {
		return "", false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	tree, err := toTree(d.value)
	if err != nil {
		return "", false
	}
	node, err := lookup(tree, steps)
	if err != nil {
		return "", false
	}
	s, ok := node.(string)
	return s, ok
}
