package components

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

func parse(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	html, err := Render(context.Background(), c)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestButton(t *testing.T) {
	t.Run("it renders a button element", func(t *testing.T) {
		doc := parse(t, Button(ButtonProps{ID: "my-button"}, Label("Save")))

		btn := doc.Find("button#my-button")
		require.Equal(t, 1, btn.Length())
		typ, _ := btn.Attr("type")
		assert.Equal(t, "button", typ)
		assert.Equal(t, "Save", btn.Text())
	})

	t.Run("it renders an anchor element when href is provided", func(t *testing.T) {
		doc := parse(t, Button(ButtonProps{Href: "/upload"}, Label("Upload")))

		href, ok := doc.Find("a").Attr("href")
		assert.True(t, ok)
		assert.Equal(t, "/upload", href)
	})

	t.Run("later classes win over variant defaults", func(t *testing.T) {
		doc := parse(t, Button(ButtonProps{Variant: VariantDestructive, Size: SizeLg, Class: "h-12"}))

		class, _ := doc.Find("button").Attr("class")
		assert.Contains(t, class, "bg-red-600")
		assert.Contains(t, class, "h-12")
		assert.NotContains(t, class, "h-11")
	})

	t.Run("unsafe hrefs are neutralised", func(t *testing.T) {
		doc := parse(t, Button(ButtonProps{Href: "javascript:alert(1)"}))

		href, _ := doc.Find("a").Attr("href")
		assert.NotContains(t, href, "javascript")
	})
}

func TestBanner(t *testing.T) {
	doc := parse(t, Banners([]models.Flash{
		{Kind: models.FlashError, Message: "Failed to load user data."},
		{Kind: models.FlashSuccess, Message: "<b>done</b>"},
	}))

	alerts := doc.Find(`[role="alert"]`)
	require.Equal(t, 1, alerts.Length())
	assert.Equal(t, "Failed to load user data.", alerts.Text())
	assert.Equal(t, "<b>done</b>", doc.Find(`[data-flash="success"]`).Text())
	assert.Zero(t, doc.Find("b").Length())
}

func TestLayoutPage(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		doc := parse(t, LayoutPage(models.LayoutTempl{
			Title:     "Gallery",
			User:      &models.NavUser{Name: "Asha", PhotoURL: "http://api/uploads/a.png"},
			Nav:       models.MainNav,
			ActiveNav: "Gallery",
			Content:   Label("hello"),
		}))

		assert.Equal(t, "Gallery", doc.Find("title").Text())
		assert.Equal(t, "Asha", doc.Find("#nav-user span").Text())
		action, _ := doc.Find(`form[action="/logout"]`).Attr("method")
		assert.Equal(t, "post", action)
		current, _ := doc.Find(`a[aria-current="page"]`).Attr("href")
		assert.Equal(t, "/dashboard", current)
		assert.Contains(t, doc.Find("main").Text(), "hello")
	})

	t.Run("signed out", func(t *testing.T) {
		doc := parse(t, LayoutPage(models.LayoutTempl{Title: "Login", Nav: models.OfflineNav}))

		assert.Zero(t, doc.Find("#nav-user").Length())
		assert.Equal(t, 1, doc.Find(`a[href="/register"]`).Length())
	})
}

func TestPhotoCard(t *testing.T) {
	doc := parse(t, PhotoCard(PhotoCardProps{
		ID:           "p1",
		ImageURL:     "http://api/uploads/p1.jpg",
		Category:     "nature",
		Description:  "lake",
		UploaderName: "Asha",
		Href:         "/photoDetails/p1",
	}))

	card := doc.Find(`article[data-photo-id="p1"]`)
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "nature", card.Find(`[data-field="category"]`).Text())
	assert.Equal(t, "lake", card.Find(`[data-field="description"]`).Text())
	href, _ := card.Find("a").Attr("href")
	assert.Equal(t, "/photoDetails/p1", href)
}

func TestInputNeverEchoesPasswords(t *testing.T) {
	doc := parse(t, Input(InputProps{Name: "password", Type: "password", Value: "secret"}))

	_, has := doc.Find("input").Attr("value")
	assert.False(t, has)
}

func TestConfirm(t *testing.T) {
	doc := parse(t, Confirm("Delete this photo?", "/view/p1/delete", "/view"))

	confirm, _ := doc.Find(`input[name="confirm"]`).Attr("value")
	assert.Equal(t, "yes", confirm)
	action, _ := doc.Find("form").Attr("action")
	assert.Equal(t, "/view/p1/delete", action)
}
