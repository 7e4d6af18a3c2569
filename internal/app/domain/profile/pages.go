package profile

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-photoshare/internal/app/components"
)

type ProfileView struct {
	PhotoURL      string
	HasPhoto      bool
	Name          string
	Email         string
	Course        string
	CollegeYear   string
	ConfirmDelete bool
	MaxMB         int64
	Loaded        bool
}

func ProfilePage(v ProfileView) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("section", components.Attrs("id", "profile", "class", "mx-auto max-w-xl space-y-6 rounded-lg bg-white p-6 shadow"), func() {
			h.TextEl("h1", components.Attrs("class", "text-2xl font-bold"), "Your Profile")
			if !v.Loaded {
				h.Component(components.LogoutForm())
				return
			}
			h.El("div", components.Attrs("class", "flex flex-col items-center gap-4"), func() {
				h.Void("img", components.Attrs("id", "profile-photo", "src", v.PhotoURL, "alt", "Profile photo",
					"class", "h-32 w-32 rounded-full border object-cover")...)
				h.Component(photoForm(v))
				if v.HasPhoto {
					if v.ConfirmDelete {
						h.Component(components.Confirm("Remove your profile photo?", "/profile/photo/delete", "/profile"))
					} else {
						h.Component(components.Button(components.ButtonProps{
							ID: "remove-photo", Href: "/profile/photo/delete", Variant: components.VariantDestructive, Size: components.SizeSm,
						}, components.Label("Remove photo")))
					}
				}
			})
			h.El("dl", components.Attrs("class", "space-y-2 text-gray-700"), func() {
				h.TextEl("h2", components.Attrs("class", "text-xl font-semibold", "data-field", "name"), v.Name)
				detail(h, "Email", "email", v.Email)
				detail(h, "Course", "course", v.Course)
				detail(h, "College Year", "collegeYear", v.CollegeYear)
			})
			h.Component(components.LogoutForm())
		})
	})
}

func detail(h *components.HTML, label, field, value string) {
	h.El("div", components.Attrs("class", "flex gap-2"), func() {
		h.TextEl("dt", components.Attrs("class", "font-semibold"), label+":")
		h.TextEl("dd", components.Attrs("data-field", field), value)
	})
}

func photoForm(v ProfileView) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("form", components.Attrs(
			"id", "profile-photo-form",
			"method", "post",
			"action", "/profile/photo",
			"enctype", "multipart/form-data",
			"hx-post", "/profile/photo",
			"hx-encoding", "multipart/form-data",
			"hx-target", "#content",
			"hx-indicator", "#loading",
			"class", "flex flex-col items-center gap-2",
		), func() {
			h.Component(components.Input(components.InputProps{
				Name: "profilePhoto", Label: "Change photo", Type: "file", Accept: "image/*", Required: true,
			}))
			h.TextEl("p", components.Attrs("class", "text-xs text-gray-500"), fmt.Sprintf("Images up to %dMB", v.MaxMB))
			h.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Size: components.SizeSm}, components.Label("Upload photo")))
		})
	})
}
