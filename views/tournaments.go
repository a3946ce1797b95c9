package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Dosada05/tabbit/models"
)

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tabbit</title>
</head>
<body>
<h1>Tournaments</h1>
`

const pageFoot = `</body>
</html>
`

// TournamentsPage lists tournaments in a table, one row per tournament.
func TournamentsPage(tournaments []models.Tournament) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if err := tournamentsTable(tournaments).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

func tournamentsTable(tournaments []models.Tournament) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(tournaments) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No tournaments yet.</p>`+"\n")
			return err
		}

		out := `<table id="tournaments">` + "\n" +
			`<thead><tr><th>ID</th><th>Name</th><th>Abbreviation</th></tr></thead>` + "\n<tbody>\n"
		for _, t := range tournaments {
			abbreviation := ""
			if t.Abbreviation != nil {
				abbreviation = *t.Abbreviation
			}
			out += `<tr data-id="` + strconv.Itoa(t.ID) + `">` +
				`<td class="id">` + strconv.Itoa(t.ID) + `</td>` +
				`<td class="name">` + templ.EscapeString(t.Name) + `</td>` +
				`<td class="abbreviation">` + templ.EscapeString(abbreviation) + `</td>` +
				"</tr>\n"
		}
		out += "</tbody>\n</table>\n"

		_, err := io.WriteString(w, out)
		return err
	})
}
