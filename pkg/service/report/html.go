package report

import (
	_ "embed"
	"html/template"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model"
)

//go:embed templates/report.html.tmpl
var reportHTMLTmpl string

var reportHTML = template.Must(template.New("report").Funcs(template.FuncMap{
	"logoURL": logoURL,
}).Parse(reportHTMLTmpl))

// logoURL passes data URIs of images through html/template URL filtering.
// Anything else is dropped.
func logoURL(logo string) template.URL {
	if strings.HasPrefix(logo, "data:image/") || strings.HasPrefix(logo, "https://") {
		// #nosec G203 - restricted to image data URIs and https URLs
		return template.URL(logo)
	}
	return ""
}

// RenderHTML writes a self-contained right-to-left HTML page
func RenderHTML(w io.Writer, rpt model.Report) error {
	if err := reportHTML.Execute(w, rpt); err != nil {
		return goerr.Wrap(err, "failed to render report HTML")
	}
	return nil
}
