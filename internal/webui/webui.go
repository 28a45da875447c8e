package webui

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/feLLpe04/Project3/internal/app"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// WebUI serves the server-rendered dashboard page and the debug pages.
type WebUI struct {
	*app.Application
}

func New(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.dashboardHandler)
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.ServeFiles("/static/*filepath", http.FS(static))
}
