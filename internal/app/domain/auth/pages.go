package auth

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-photoshare/internal/app/components"
)

// LoginForm holds the values echoed back after a failed sign in.
type LoginForm struct {
	Email string
}

// RegisterForm holds the values echoed back after a failed registration.
// The password and file are never echoed.
type RegisterForm struct {
	Name        string
	Course      string
	CollegeYear string
	Email       string
}

func LoginPage(form LoginForm) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("section", components.Attrs("class", "mx-auto max-w-md space-y-6", "id", "login"), func() {
			h.TextEl("h1", components.Attrs("class", "text-2xl font-semibold"), "Sign in")
			h.El("form", components.Attrs(
				"id", "login-form",
				"method", "post",
				"action", "/login",
				"hx-post", "/login",
				"hx-target", "#content",
				"hx-indicator", "#loading",
				"class", "space-y-4",
			), func() {
				h.Component(components.Input(components.InputProps{Name: "email", Label: "Email", Type: "email", Value: form.Email, Required: true}))
				h.Component(components.Input(components.InputProps{Name: "password", Label: "Password", Type: "password", Required: true}))
				h.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, FullWidth: true}, components.Label("Login")))
			})
			h.El("p", components.Attrs("class", "text-sm text-gray-600"), func() {
				h.Text("No account yet? ")
				h.TextEl("a", components.Attrs("href", "/register", "class", "text-indigo-600"), "Register")
			})
		})
	})
}

func RegisterPage(form RegisterForm) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("section", components.Attrs("class", "mx-auto max-w-md space-y-6", "id", "register"), func() {
			h.TextEl("h1", components.Attrs("class", "text-2xl font-semibold"), "Create an account")
			h.El("form", components.Attrs(
				"id", "register-form",
				"method", "post",
				"action", "/register",
				"enctype", "multipart/form-data",
				"hx-post", "/register",
				"hx-encoding", "multipart/form-data",
				"hx-target", "#content",
				"hx-indicator", "#loading",
				"class", "space-y-4",
			), func() {
				h.Component(components.Input(components.InputProps{Name: "name", Label: "Name", Value: form.Name, Required: true}))
				h.Component(components.Input(components.InputProps{Name: "course", Label: "Course", Value: form.Course}))
				h.Component(components.Input(components.InputProps{Name: "collegeYear", Label: "College year", Value: form.CollegeYear}))
				h.Component(components.Input(components.InputProps{Name: "email", Label: "Email", Type: "email", Value: form.Email, Required: true}))
				h.Component(components.Input(components.InputProps{Name: "password", Label: "Password", Type: "password", Required: true}))
				h.Component(components.Input(components.InputProps{Name: "profilePhoto", Label: "Profile photo (optional)", Type: "file", Accept: "image/*"}))
				h.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, FullWidth: true}, components.Label("Register")))
			})
			h.El("p", components.Attrs("class", "text-sm text-gray-600"), func() {
				h.Text("Already registered? ")
				h.TextEl("a", components.Attrs("href", "/login", "class", "text-indigo-600"), "Login")
			})
		})
	})
}

// LogoutFailed offers another attempt after the API refused to log out.
func LogoutFailed() templ.Component {
	return components.Func(func(h *components.HTML) {
		h.El("section", components.Attrs("class", "mx-auto max-w-md space-y-4", "id", "logout"), func() {
			h.TextEl("p", components.Attrs("class", "text-sm text-gray-700"), "You are still signed in.")
			h.Component(components.LogoutForm())
			h.Component(components.Button(components.ButtonProps{Href: "/dashboard", Variant: components.VariantLink}, components.Label("Back to the gallery")))
		})
	})
}
