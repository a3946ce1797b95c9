package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tabbit/models"
)

func render(t *testing.T, tournaments []models.Tournament) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, TournamentsPage(tournaments).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestTournamentsPageRows(t *testing.T) {
	abbr := "EUDC"
	doc := render(t, []models.Tournament{
		{ID: 1, Name: "Euros", Abbreviation: &abbr},
		{ID: 2, Name: "Worlds"},
	})

	assert.Equal(t, "Tournaments", doc.Find("h1").Text())
	rows := doc.Find("#tournaments tbody tr")
	require.Equal(t, 2, rows.Length())

	first := rows.First()
	assert.Equal(t, "1", first.AttrOr("data-id", ""))
	assert.Equal(t, "Euros", first.Find(".name").Text())
	assert.Equal(t, "EUDC", first.Find(".abbreviation").Text())
	assert.Equal(t, "", rows.Eq(1).Find(".abbreviation").Text())
}

func TestTournamentsPageEscapesNames(t *testing.T) {
	doc := render(t, []models.Tournament{{ID: 3, Name: `<script>alert("x")</script>`}})

	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find(".name").Text())
}

func TestTournamentsPageEmpty(t *testing.T) {
	doc := render(t, nil)
	assert.Equal(t, 0, doc.Find("table").Length())
	assert.Equal(t, "No tournaments yet.", doc.Find("p.empty").Text())
}
