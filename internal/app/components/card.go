package components

import (
	"github.com/a-h/templ"
)

// PhotoCardProps is a photo prepared for display; fallbacks are already applied.
type PhotoCardProps struct {
	ID            string
	ImageURL      string
	Category      string
	Description   string
	UploaderName  string
	UploaderPhoto string
	Href          string
	// Actions renders below the description, e.g. edit and delete controls.
	Actions templ.Component
}

func PhotoCard(p PhotoCardProps) templ.Component {
	return Func(func(h *HTML) {
		h.El("article", Attrs("class", "overflow-hidden rounded-lg border bg-white shadow-sm", "data-photo-id", p.ID), func() {
			image := func() {
				h.Void("img", Attrs("src", p.ImageURL, "alt", p.Description, "loading", "lazy", "class", "h-56 w-full object-cover")...)
			}
			if p.Href != "" {
				h.El("a", Attrs("href", p.Href), image)
			} else {
				image()
			}
			h.El("div", Attrs("class", "space-y-2 p-4"), func() {
				h.TextEl("span", Attrs("class", "inline-block rounded bg-indigo-50 px-2 py-0.5 text-xs text-indigo-700", "data-field", "category"), p.Category)
				h.TextEl("p", Attrs("class", "text-sm text-gray-700", "data-field", "description"), p.Description)
				if p.UploaderName != "" || p.UploaderPhoto != "" {
					h.El("div", Attrs("class", "flex items-center gap-2", "data-field", "uploader"), func() {
						if p.UploaderPhoto != "" {
							h.Void("img", Attrs("src", p.UploaderPhoto, "alt", p.UploaderName, "class", "h-6 w-6 rounded-full object-cover")...)
						}
						h.TextEl("span", Attrs("class", "text-xs text-gray-500"), p.UploaderName)
					})
				}
				h.Component(p.Actions)
			})
		})
	})
}

// PhotoGrid lays cards out in a responsive grid.
func PhotoGrid(id string, cards []templ.Component) templ.Component {
	return Func(func(h *HTML) {
		h.El("div", Attrs("id", id, "class", "grid grid-cols-1 gap-6 sm:grid-cols-2 lg:grid-cols-3"), func() {
			for _, c := range cards {
				h.Component(c)
			}
		})
	})
}
