// Package views holds the server-rendered pages, embedded into the binary.
package views

import (
	"embed"
	"net/http"

	html "github.com/gofiber/template/html/v2"

	"storeadmin/internal/export"
)

//go:embed *.html
var files embed.FS

func Engine() *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("money", export.Money)
	return engine
}
