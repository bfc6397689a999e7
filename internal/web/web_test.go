package web

import (
	"bytes"
	"io"
	"testing"

	"organizer-portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewRenderer("EUR")
	require.NoError(t, err)

	for _, page := range []string{
		"dashboard.html", "event.html", "orders.html", "documents.html", "invitations.html",
		"invite.html", "payouts.html", "scanner.html", "team.html", "notifications.html",
		"widget.html", "error.html",
	} {
		assert.Contains(t, r.pages, page)
	}
	assert.NotContains(t, r.pages, "layout.html")
}

func TestRender(t *testing.T) {
	r, err := NewRenderer("EUR")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "error.html", Page{
		Title:     "Not found",
		Organizer: models.Organizer{Name: "Northlight Live"},
		Unread:    3,
		Data:      map[string]any{"Status": 404, "Message": "No such <event>"},
	})
	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "<title>Not found · Northlight Live</title>")
	assert.Contains(t, html, `data-unread="3"`)
	assert.Contains(t, html, "No such &lt;event&gt;")

	assert.Error(t, r.Render(io.Discard, "missing.html", Page{}))
}

func TestRender_PublicPageHasNoNav(t *testing.T) {
	r, err := NewRenderer("EUR")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "error.html", Page{Public: true, Data: map[string]any{"Status": 404, "Message": "gone"}}))
	assert.NotContains(t, buf.String(), `class="topbar"`)
}

func TestAssets(t *testing.T) {
	assert.Contains(t, string(EmbedScript()), "data-tix-widget")

	f, err := Static().Open("portal.css")
	require.NoError(t, err)
	defer f.Close()
}
