// path.go — адресация полей черновика по пути вида
// "managementTeam[0].imageUrl". Черновик представляется JSON-деревом
// (map[string]any / []any), значения формы приводятся к типу
// существующего значения поля.
package forms

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// step — один шаг пути: ключ объекта либо индекс массива.
type step struct {
	key     string
	index   int
	isIndex bool
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// parsePath разбирает путь поля.
func parsePath(path string) ([]step, error) {
	if path == "" {
		return nil, fmt.Errorf("пустой путь поля")
	}
	var steps []step
	for _, part := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(part, "[")
		if name == "" {
			return nil, fmt.Errorf("некорректный путь поля %q", path)
		}
		steps = append(steps, step{key: name})
		if rest == "" {
			continue
		}
		rest = "[" + rest
		matches := indexPattern.FindAllStringSubmatch(rest, -1)
		if len(matches) == 0 || strings.Join(indexPattern.FindAllString(rest, -1), "") != rest {
			return nil, fmt.Errorf("некорректный индекс в пути %q", path)
		}
		for _, m := range matches {
			i, _ := strconv.Atoi(m[1])
			steps = append(steps, step{index: i, isIndex: true})
		}
	}
	return steps, nil
}

// shapeOf убирает индексы из пути: "subDivisions[1].sections" → "subDivisions[].sections".
func shapeOf(path string) string {
	return indexPattern.ReplaceAllString(path, "[]")
}

// toTree превращает значение в JSON-дерево.
func toTree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// fromTree записывает JSON-дерево в dst.
func fromTree(tree any, dst any) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// lookup возвращает узел по шагам.
func lookup(root any, steps []step) (any, error) {
	node := root
	for _, s := range steps {
		next, err := child(node, s)
		if err != nil {
			return nil, err
		}
		node = next
	}
	return node, nil
}

func child(node any, s step) (any, error) {
	if s.isIndex {
		arr, ok := node.([]any)
		if !ok {
			return nil, fmt.Errorf("поле не является списком")
		}
		if s.index < 0 || s.index >= len(arr) {
			return nil, fmt.Errorf("индекс %d вне списка из %d элементов", s.index, len(arr))
		}
		return arr[s.index], nil
	}
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("поле %q не принадлежит объекту", s.key)
	}
	v, ok := obj[s.key]
	if !ok {
		return nil, fmt.Errorf("неизвестное поле %q", s.key)
	}
	return v, nil
}

// setValue записывает значение raw по пути, приводя его к типу
// текущего значения поля.
func setValue(root any, path, raw string) error {
	steps, err := parsePath(path)
	if err != nil {
		return err
	}
	parent, err := lookup(root, steps[:len(steps)-1])
	if err != nil {
		return fmt.Errorf("поле %s: %w", path, err)
	}

	last := steps[len(steps)-1]
	current, err := child(parent, last)
	if err != nil {
		return fmt.Errorf("поле %s: %w", path, err)
	}
	value, err := coerce(current, raw)
	if err != nil {
		return fmt.Errorf("поле %s: %w", path, err)
	}

	if last.isIndex {
		parent.([]any)[last.index] = value
	} else {
		parent.(map[string]any)[last.key] = value
	}
	return nil
}

// coerce приводит строку формы к типу существующего значения.
func coerce(current any, raw string) (any, error) {
	switch current.(type) {
	case bool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "on", "1", "yes":
			return true, nil
		case "false", "off", "0", "no", "":
			return false, nil
		}
		return nil, fmt.Errorf("ожидается логическое значение, получено %q", raw)
	case float64:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return float64(0), nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("ожидается число, получено %q", raw)
		}
		return f, nil
	case map[string]any, []any:
		return nil, fmt.Errorf("составное поле нельзя задать строкой")
	}
	return raw, nil
}

// appendItem добавляет элемент в список по пути.
func appendItem(root any, path string, item any) (any, error) {
	return modifyList(root, path, func(arr []any) ([]any, error) {
		return append(arr, item), nil
	})
}

// removeItem удаляет элемент index из списка по пути.
func removeItem(root any, path string, index int) (any, error) {
	return modifyList(root, path, func(arr []any) ([]any, error) {
		if index < 0 || index >= len(arr) {
			return nil, fmt.Errorf("индекс %d вне списка из %d элементов", index, len(arr))
		}
		return append(arr[:index:index], arr[index+1:]...), nil
	})
}

// modifyList заменяет список по пути результатом fn. Отсутствующий
// (null) список считается пустым.
func modifyList(root any, path string, fn func([]any) ([]any, error)) (any, error) {
	steps, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	parent, err := lookup(root, steps[:len(steps)-1])
	if err != nil {
		return nil, fmt.Errorf("список %s: %w", path, err)
	}
	last := steps[len(steps)-1]

	var current any
	if last.isIndex {
		current, err = child(parent, last)
	} else if obj, ok := parent.(map[string]any); ok {
		current = obj[last.key]
	} else {
		err = fmt.Errorf("поле %q не принадлежит объекту", last.key)
	}
	if err != nil {
		return nil, fmt.Errorf("список %s: %w", path, err)
	}

	var arr []any
	switch v := current.(type) {
	case nil:
	case []any:
		arr = v
	default:
		return nil, fmt.Errorf("поле %s не является списком", path)
	}

	arr, err = fn(arr)
	if err != nil {
		return nil, fmt.Errorf("список %s: %w", path, err)
	}
	if last.isIndex {
		parent.([]any)[last.index] = arr
	} else {
		parent.(map[string]any)[last.key] = arr
	}
	return root, nil
}
