package report

import (
	"strings"

	"github.com/secmon-lab/casebook/pkg/domain/model"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// RenderMarkdown renders the report as GitHub-flavored markdown. The logo
// is omitted; use RenderHTML for a printable report with the logo.
func RenderMarkdown(rpt model.Report) string {
	var sb strings.Builder

	if rpt.Header != nil && rpt.Header.OrganizationName != "" {
		sb.WriteString("**" + inline(rpt.Header.OrganizationName) + "**\n\n---\n\n")
	}

	sb.WriteString("# " + inline(rpt.Title) + "\n\n")
	sb.WriteString("_" + inline(rpt.ChildName) + "_\n")

	for _, blk := range rpt.Blocks {
		sb.WriteString("\n## " + inline(blk.Title) + "\n\n")
		if blk.Table != nil {
			writeTable(&sb, blk.Table)
			continue
		}
		writeFields(&sb, blk.Fields)
	}

	if rpt.Footer != nil {
		sb.WriteString("\n---\n\n")
		if rpt.Footer.Address != "" {
			sb.WriteString(inline(rpt.Footer.Address) + "\n\n")
		}
		if rpt.Footer.ContactInfo != "" {
			sb.WriteString(inline(rpt.Footer.ContactInfo) + "\n")
		}
	}

	return sb.String()
}

func writeFields(sb *strings.Builder, fields []model.ReportField) {
	inList := false
	for _, f := range fields {
		if !f.Long {
			sb.WriteString("- **" + inline(f.Label) + ":** " + inline(f.Value) + "\n")
			inList = true
			continue
		}

		if inList {
			sb.WriteString("\n")
			inList = false
		}
		sb.WriteString("**" + inline(f.Label) + "**\n\n")
		if f.Items != nil {
			for _, item := range f.Items {
				sb.WriteString("- " + inline(item) + "\n")
			}
			sb.WriteString("\n")
			continue
		}
		// Hard line breaks keep the author's line structure
		sb.WriteString(strings.ReplaceAll(strings.TrimRight(f.Value, "\n"), "\n", "  \n") + "\n\n")
	}
	if inList {
		sb.WriteString("\n")
	}
}

func writeTable(sb *strings.Builder, table *model.ReportTable) {
	sb.WriteString("|")
	for _, c := range table.Columns {
		sb.WriteString(" " + cellEscaper.Replace(c) + " |")
	}
	sb.WriteString("\n|")
	for range table.Columns {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range table.Rows {
		sb.WriteString("|")
		for _, v := range row {
			sb.WriteString(" " + cellEscaper.Replace(v) + " |")
		}
		sb.WriteString("\n")
	}
}

// inline flattens a value onto a single line
func inline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
