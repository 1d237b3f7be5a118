// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/rosterboard/internal/markup"
)

// =============================================================================
// HTML EXPORT
// =============================================================================

// ExportHTML renders the document as a standalone HTML page. The list and
// selector markup are the same fragments the controllers produced.
func (d *Document) ExportHTML(generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("    <title>Activities</title>\n")
	sb.WriteString("    <meta name=\"generator\" content=\"rosterboard\">\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", generatedAt.Format(time.RFC3339)))
	sb.WriteString(exportCSS)
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")

	sb.WriteString("    <section id=\"activities-container\">\n")
	sb.WriteString("        <h3>Available Activities</h3>\n")
	sb.WriteString("        <div id=\"activities-list\">")
	switch {
	case d.List.Loading:
		sb.WriteString("<p>Loading activities...</p>")
	default:
		sb.WriteString(d.List.HTML)
	}
	sb.WriteString("</div>\n")
	sb.WriteString("    </section>\n")

	sb.WriteString("    <section id=\"signup-container\">\n")
	sb.WriteString("        <h3>Sign Up for an Activity</h3>\n")
	sb.WriteString("        <form id=\"signup-form\">\n")
	sb.WriteString(fmt.Sprintf("            <input type=\"email\" id=\"email\" required value=\"%s\">\n", markup.Escape(d.Form.Email)))
	sb.WriteString("            <select id=\"activity\" required>")
	sb.WriteString(d.Selector.HTML())
	sb.WriteString("</select>\n")
	sb.WriteString("        </form>\n")

	class := "hidden"
	if d.Message.Visible {
		class = markup.Escape(d.Message.Kind)
	}
	sb.WriteString(fmt.Sprintf("        <div id=\"message\" class=\"%s\">%s</div>\n", class, markup.Escape(d.Message.Text)))
	sb.WriteString("    </section>\n")

	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return sb.String()
}

const exportCSS = `    <style>
        body { font-family: Arial, sans-serif; max-width: 1200px; margin: 0 auto; padding: 20px; }
        .activity-card { border: 1px solid #ddd; border-radius: 5px; padding: 15px; margin-bottom: 15px; }
        .participants ul { list-style: none; padding-left: 0; }
        .delete-participant { border: none; background: none; color: #c62828; cursor: pointer; }
        .info { color: #666; font-style: italic; }
        .success { background-color: #e8f5e9; color: #2e7d32; padding: 10px; }
        .error { background-color: #ffebee; color: #c62828; padding: 10px; }
        .hidden { display: none; }
    </style>
`
