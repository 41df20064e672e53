package listing

// DefaultWindow — количество номеров страниц в навигации.
const DefaultWindow = 5

// PageWindow возвращает номера страниц (с 0) для навигации: не более
// size номеров вокруг текущей страницы, окно сдвигается у границ.
func PageWindow(current, totalPages, size int) []int {
	if totalPages <= 0 || size <= 0 {
		return nil
	}
	if size > totalPages {
		size = totalPages
	}
	start := current - size/2
	start = max(start, 0)
	start = min(start, totalPages-size)
	pages := make([]int, size)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
