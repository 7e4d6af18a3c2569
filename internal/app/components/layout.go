package components

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

const (
	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindSrc = "https://cdn.tailwindcss.com"
)

// LayoutPage wraps content in the document shell and navigation chrome.
func LayoutPage(data models.LayoutTempl) templ.Component {
	return Func(func(h *HTML) {
		h.Raw("<!DOCTYPE html>")
		h.El("html", Attrs("lang", "en"), func() {
			h.El("head", nil, func() {
				h.Void("meta", Attrs("charset", "utf-8")...)
				h.Void("meta", Attrs("name", "viewport", "content", "width=device-width, initial-scale=1")...)
				h.TextEl("title", nil, data.Title)
				h.El("script", Attrs("src", tailwindSrc), nil)
				h.El("script", Attrs("src", htmxSrc, "defer", "defer"), nil)
				h.Void("link", Attrs("rel", "stylesheet", "href", "/assets/css/app.css")...)
			})
			h.El("body", Attrs("class", "min-h-screen bg-gray-50 text-gray-900", "hx-boost", "true"), func() {
				h.Component(Navbar(data))
				h.El("main", Attrs("class", "mx-auto max-w-6xl px-4 py-8", "id", "content"), func() {
					h.Component(Banners(data.Flashes))
					h.Component(data.Content)
				})
				h.El("div", Attrs("id", "loading", "class", "htmx-indicator fixed top-0 inset-x-0 h-1 bg-indigo-500"), nil)
			})
		})
	})
}

// Navbar renders the site navigation. Signed-in users see their photo and a
// logout button.
func Navbar(data models.LayoutTempl) templ.Component {
	return Func(func(h *HTML) {
		h.El("header", Attrs("class", "border-b bg-white"), func() {
			h.El("nav", Attrs("class", "mx-auto flex max-w-6xl items-center justify-between px-4 py-3"), func() {
				h.TextEl("a", Attrs("href", "/", "class", "text-lg font-semibold"), "PhotoShare")
				h.El("ul", Attrs("class", "flex items-center gap-4"), func() {
					for _, item := range data.Nav.Items {
						h.El("li", nil, func() {
							attrs := Attrs("href", item.URL, "class", navClass(item.Name == data.ActiveNav))
							if item.Name == data.ActiveNav {
								attrs = append(attrs, Attr{Name: "aria-current", Value: "page"})
							}
							h.TextEl("a", attrs, item.Name)
						})
					}
				})
				if data.User != nil {
					h.El("div", Attrs("class", "flex items-center gap-3", "id", "nav-user"), func() {
						if data.User.PhotoURL != "" {
							h.Void("img", Attrs("src", data.User.PhotoURL, "alt", "Profile", "class", "h-8 w-8 rounded-full object-cover")...)
						}
						h.TextEl("span", Attrs("class", "text-sm"), data.User.Name)
						h.Component(LogoutForm())
					})
				}
			})
		})
	})
}

// LogoutForm posts to /logout.
func LogoutForm() templ.Component {
	return Func(func(h *HTML) {
		h.El("form", Attrs("method", "post", "action", "/logout"), func() {
			h.Component(Button(ButtonProps{Type: TypeSubmit, Variant: VariantOutline, Size: SizeSm}, Label("Logout")))
		})
	})
}

func navClass(active bool) string {
	if active {
		return twmerge.Merge("text-sm text-gray-600 hover:text-gray-900", "text-indigo-600 font-semibold")
	}
	return "text-sm text-gray-600 hover:text-gray-900"
}
