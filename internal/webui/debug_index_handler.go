package webui

import (
	"bytes"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"github.com/feLLpe04/Project3/internal/aggregate"
	"github.com/feLLpe04/Project3/internal/utils"
)

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	dataStruct := debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "debug_index.html", dataStruct); err != nil {
		webUI.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if !webUI.Ready() {
		webUI.writeDebugData(w, r, "Dataset not loaded", map[string]string{
			"source": webUI.Config.DatasetSource,
			"error":  errorText(webUI.LoadErr),
		})
		return
	}

	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "records":
		data = webUI.Dataset.Records
		title = "Mortality - Records"
	case "dimensions":
		data = webUI.Dataset.Dimensions
		title = "Mortality - Dimensions"
	case "selection":
		selection, fieldErrors := utils.ParseSelectionParams(r.URL.Query(), webUI.Dataset.Dimensions)
		if len(fieldErrors) > 0 {
			data = fieldErrors
			title = "Mortality - Invalid selection"
			break
		}
		data = struct {
			Selection interface{}
			Records   interface{}
			Summary   aggregate.Summary
		}{
			Selection: selection,
			Records:   aggregate.Filter(webUI.Dataset.Records, selection),
			Summary:   aggregate.Summarize(webUI.Dataset.Records, selection),
		}
		title = "Mortality - Selection " + selection.Year + " / " + selection.Cause
	default:
		data = map[string]string{
			"error": "Please use one of the following: records, dimensions, selection.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, r, title, data)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
