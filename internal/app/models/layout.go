package models

import "github.com/a-h/templ"

// NavUser is the slice of the current user shown in the navigation chrome.
type NavUser struct {
	Name     string
	PhotoURL string
}

type NavItem struct {
	Name string
	URL  string
	Icon string
}

type Navigation struct {
	Items []NavItem
}

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a one-shot message rendered above the page content.
type Flash struct {
	Kind    FlashKind
	Message string
}

type LayoutTempl struct {
	Title     string
	User      *NavUser
	Nav       Navigation
	ActiveNav string
	Flashes   []Flash
	Content   templ.Component
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Gallery", URL: "/dashboard"},
		{Name: "Upload", URL: "/upload"},
		{Name: "My Photos", URL: "/view"},
		{Name: "Profile", URL: "/profile"},
	},
}

var OfflineNav = Navigation{
	Items: []NavItem{
		{Name: "Login", URL: "/login"},
		{Name: "Register", URL: "/register"},
	},
}
