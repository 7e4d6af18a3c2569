package photos

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-photoshare/internal/app/components"
)

const (
	galleryResultsID = "gallery-results"
	photoGridID      = "photo-grid"
)

// GalleryView is the all-photos screen after filtering and pagination.
type GalleryView struct {
	Cards      []components.PhotoCardProps
	Filter     Filter
	Categories []string
	Page       Page
	Matched    int
	Loaded     bool
}

func GalleryPage(v GalleryView) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("section", components.Attrs("id", "gallery", "class", "space-y-6"), func() {
			h.TextEl("h1", components.Attrs("class", "text-center text-2xl font-bold"), "All Uploaded Photos")
			h.Component(filterForm(v))
			h.Component(GalleryResults(v))
		})
	})
}

func filterForm(v GalleryView) templ.Component {
	options := []components.Option{{Value: AllCategories, Label: "All categories"}}
	for _, c := range v.Categories {
		options = append(options, components.Option{Value: c, Label: c})
	}
	selected := AllCategories
	for _, c := range v.Categories {
		if strings.EqualFold(c, strings.TrimSpace(v.Filter.Category)) {
			selected = c
		}
	}

	return components.Func(func(h *components.HTML) {
		h.El("form", components.Attrs(
			"id", "gallery-filter",
			"method", "get",
			"action", "/photos",
			"role", "search",
			"hx-get", "/photos",
			"hx-target", "#"+galleryResultsID,
			"hx-trigger", "input changed delay:300ms from:#q, change from:#category, submit",
			"hx-push-url", "true",
			"hx-indicator", "#loading",
			"class", "grid gap-4 sm:grid-cols-3",
		), func() {
			h.El("div", components.Attrs("class", "sm:col-span-2"), func() {
				h.Component(components.Input(components.InputProps{
					Name: "q", Label: "Search", Type: "search", Value: v.Filter.Query,
					Placeholder: "Search descriptions and categories",
				}))
			})
			h.Component(components.Select(components.SelectProps{
				Name: "category", Label: "Category", Options: options, Selected: selected,
			}))
		})
	})
}

// GalleryResults is the part of the gallery swapped by the filter form.
func GalleryResults(v GalleryView) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("div", components.Attrs("id", galleryResultsID, "data-matched", strconv.Itoa(v.Matched)), func() {
			if !v.Loaded {
				return
			}
			if len(v.Cards) == 0 {
				msg := "No photos have been uploaded yet."
				if v.Filter.Active() {
					msg = "No photos match your search."
				}
				h.Component(components.EmptyState(msg))
				return
			}
			cards := make([]templ.Component, 0, len(v.Cards))
			for _, c := range v.Cards {
				cards = append(cards, components.PhotoCard(c))
			}
			h.Component(components.PhotoGrid(photoGridID, cards))
			h.Component(pager(v))
		})
	})
}

func pager(v GalleryView) templ.Component {
	return components.Func(func(h *components.HTML) {
		if v.Page.Total <= 1 {
			return
		}
		link := func(page int) string {
			q := url.Values{}
			if v.Filter.Query != "" {
				q.Set("q", v.Filter.Query)
			}
			if v.Filter.Category != "" {
				q.Set("category", v.Filter.Category)
			}
			q.Set("page", strconv.Itoa(page))
			return "/photos?" + q.Encode()
		}
		h.El("nav", components.Attrs("class", "flex items-center justify-between pt-4", "aria-label", "Pagination"), func() {
			if v.Page.HasPrev() {
				h.Component(components.Button(components.ButtonProps{
					Href: link(v.Page.Number - 1), Variant: components.VariantOutline, Size: components.SizeSm, ID: "page-prev",
				}, components.Label("Previous")))
			} else {
				h.Raw("<span></span>")
			}
			h.TextEl("span", components.Attrs("class", "text-sm text-gray-600", "id", "page-status"),
				fmt.Sprintf("Page %d of %d", v.Page.Number, v.Page.Total))
			if v.Page.HasNext() {
				h.Component(components.Button(components.ButtonProps{
					Href: link(v.Page.Number + 1), Variant: components.VariantOutline, Size: components.SizeSm, ID: "page-next",
				}, components.Label("Next")))
			} else {
				h.Raw("<span></span>")
			}
		})
	})
}

// MyPhoto is one of the current user's photos with its raw description.
type MyPhoto struct {
	Card        components.PhotoCardProps
	Description string
}

type MyPhotosView struct {
	Photos   []MyPhoto
	Editing  string
	Draft    string
	Deleting string
	Loaded   bool
}

func MyPhotosPage(v MyPhotosView) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("section", components.Attrs("id", "my-photos", "class", "space-y-6"), func() {
			h.El("div", components.Attrs("class", "flex items-center justify-between"), func() {
				h.TextEl("h1", components.Attrs("class", "text-2xl font-bold"), "Your Photos")
				h.Component(components.Button(components.ButtonProps{Href: "/upload", Size: components.SizeSm}, components.Label("Upload a photo")))
			})
			if !v.Loaded {
				return
			}
			if len(v.Photos) == 0 {
				h.Component(components.EmptyState("You have not uploaded any photos yet."))
				return
			}
			cards := make([]templ.Component, 0, len(v.Photos))
			for _, p := range v.Photos {
				card := p.Card
				card.Actions = myPhotoActions(v, p)
				cards = append(cards, components.PhotoCard(card))
			}
			h.Component(components.PhotoGrid(photoGridID, cards))
		})
	})
}

func myPhotoActions(v MyPhotosView, p MyPhoto) templ.Component {
	id := p.Card.ID
	base := "/view/" + url.PathEscape(id)
	switch id {
	case v.Editing:
		return components.Func(func(h *components.HTML) {
			h.El("form", components.Attrs(
				"class", "space-y-2",
				"data-editor", id,
				"method", "post",
				"action", base,
				"hx-post", base,
				"hx-target", "#content",
			), func() {
				h.Component(components.Textarea(components.TextareaProps{
					ID: "description-" + id, Name: "description", Label: "Description", Value: v.Draft,
				}))
				h.El("div", components.Attrs("class", "flex gap-2"), func() {
					h.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Size: components.SizeSm}, components.Label("Save")))
					h.Component(components.Button(components.ButtonProps{Href: "/view", Variant: components.VariantOutline, Size: components.SizeSm}, components.Label("Cancel")))
				})
			})
		})
	case v.Deleting:
		return components.Confirm("Are you sure you want to delete this photo?", base+"/delete", "/view")
	default:
		return components.Func(func(h *components.HTML) {
			h.El("div", components.Attrs("class", "flex gap-2 pt-2"), func() {
				h.Component(components.Button(components.ButtonProps{
					Href: base + "/edit", Variant: components.VariantOutline, Size: components.SizeSm,
				}, components.Label("Edit")))
				h.Component(components.Button(components.ButtonProps{
					Href: base + "/delete", Variant: components.VariantDestructive, Size: components.SizeSm,
				}, components.Label("Delete")))
			})
		})
	}
}

// DetailView is a single photo with its owner, fallbacks applied.
type DetailView struct {
	ID          string
	ImageURL    string
	Category    string
	Description string
	Date        string
	OwnerName   string
	OwnerCourse string
	OwnerPhoto  string
}

// DetailPage renders v, or only the way back when v is nil.
func DetailPage(v *DetailView) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("section", components.Attrs("id", "photo-details", "class", "mx-auto max-w-3xl space-y-6"), func() {
			h.Component(components.Button(components.ButtonProps{Href: "/dashboard", Variant: components.VariantLink}, components.Label("Back to the gallery")))
			if v == nil {
				return
			}
			h.El("article", components.Attrs("class", "overflow-hidden rounded-lg bg-white shadow", "data-photo-id", v.ID), func() {
				h.Void("img", components.Attrs("src", v.ImageURL, "alt", v.Description, "class", "w-full object-cover")...)
				h.El("div", components.Attrs("class", "space-y-4 p-6"), func() {
					h.El("div", components.Attrs("class", "flex items-center gap-4", "data-field", "owner"), func() {
						h.Void("img", components.Attrs("src", v.OwnerPhoto, "alt", v.OwnerName, "class", "h-14 w-14 rounded-full border object-cover")...)
						h.El("div", nil, func() {
							h.TextEl("p", components.Attrs("class", "font-semibold", "data-field", "owner-name"), "Name: "+v.OwnerName)
							h.TextEl("p", components.Attrs("class", "text-sm text-gray-600", "data-field", "owner-course"), "Course: "+v.OwnerCourse)
						})
					})
					h.TextEl("span", components.Attrs("class", "inline-block rounded bg-indigo-50 px-2 py-0.5 text-xs text-indigo-700", "data-field", "category"), v.Category)
					h.TextEl("p", components.Attrs("class", "text-gray-800", "data-field", "description"), v.Description)
					h.El("p", components.Attrs("class", "text-sm text-gray-500"), func() {
						h.TextEl("strong", nil, "Date: ")
						h.TextEl("time", components.Attrs("data-field", "date"), v.Date)
					})
				})
			})
		})
	})
}

// UploadForm holds the values kept between upload attempts. The file
// itself can never be kept.
type UploadForm struct {
	Category    string
	Description string
	MaxMB       int64
}

func UploadPage(form UploadForm) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("section", components.Attrs("id", "upload", "class", "mx-auto max-w-xl space-y-6"), func() {
			h.TextEl("h1", components.Attrs("class", "text-2xl font-bold"), "Upload a photo")
			h.El("form", components.Attrs(
				"id", "upload-form",
				"method", "post",
				"action", "/upload",
				"enctype", "multipart/form-data",
				"hx-post", "/upload",
				"hx-encoding", "multipart/form-data",
				"hx-target", "#content",
				"hx-indicator", "#loading",
				"class", "space-y-4",
			), func() {
				h.Component(components.Input(components.InputProps{
					Name: "photo", Label: "Photo", Type: "file", Accept: "image/*", Required: true,
				}))
				h.TextEl("p", components.Attrs("class", "text-xs text-gray-500"), fmt.Sprintf("PNG, JPG, GIF up to %dMB", form.MaxMB))
				h.Component(components.Input(components.InputProps{
					Name: "category", Label: "Category", Value: form.Category, Required: true,
					Placeholder: "e.g., Nature, Portrait, Event, Travel",
				}))
				h.Component(components.Textarea(components.TextareaProps{
					Name: "description", Label: "Description", Value: form.Description, Rows: "4", Required: true,
				}))
				h.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, FullWidth: true}, components.Label("Upload Photo")))
			})
		})
	})
}
