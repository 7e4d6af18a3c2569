package components

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

// Banner renders a one-shot message. Errors are announced as alerts.
func Banner(f models.Flash) templ.Component {
	return Func(func(h *HTML) {
		if f.Message == "" {
			return
		}
		role := "status"
		if f.Kind == models.FlashError {
			role = "alert"
		}
		h.TextEl("div", Attrs(
			"class", twmerge.Merge("rounded-md border px-4 py-3 text-sm", bannerClass(f.Kind)),
			"role", role,
			"data-flash", string(f.Kind),
		), f.Message)
	})
}

// Banners renders every flash in order.
func Banners(flashes []models.Flash) templ.Component {
	return Func(func(h *HTML) {
		if len(flashes) == 0 {
			return
		}
		h.El("div", Attrs("class", "space-y-2 mb-4", "id", "flashes"), func() {
			for _, f := range flashes {
				h.Component(Banner(f))
			}
		})
	})
}

func bannerClass(kind models.FlashKind) string {
	switch kind {
	case models.FlashSuccess:
		return "border-green-200 bg-green-50 text-green-800"
	case models.FlashError:
		return "border-red-200 bg-red-50 text-red-800"
	default:
		return "border-blue-200 bg-blue-50 text-blue-800"
	}
}
