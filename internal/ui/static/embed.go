// Пакет static — встроенные статические ресурсы панели CMS:
// стили и скрипт страниц. Файлы встраиваются в бинарник через
// //go:embed и раздаются по /static/.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

// content — встроенная файловая система с поддиректориями css/ и js/.
//
//go:embed css/*.css js/*.js
var content embed.FS

// FileSystem возвращает http.FileSystem для обработки запросов к /static/*.
// Файлы доступны по путям вида /static/css/app.css, /static/js/app.js.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// FS возвращает fs.FS для прямого доступа к встроенным файлам.
func FS() fs.FS {
	return content
}
