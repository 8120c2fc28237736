package report

import (
	"github.com/charmbracelet/glamour"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model"
)

const defaultTerminalWidth = 100

// RenderTerminal renders the markdown form of the report for a terminal of
// the given width. Styles follow the terminal background.
func RenderTerminal(rpt model.Report, width int) (string, error) {
	if width <= 0 {
		width = defaultTerminalWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create terminal renderer")
	}

	out, err := r.Render(RenderMarkdown(rpt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to render report for terminal")
	}
	return out, nil
}
