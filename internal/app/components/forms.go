package components

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

const inputClass = "mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 text-sm focus:border-indigo-500 focus:outline-none"

type InputProps struct {
	ID          string
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Accept      string
	Required    bool
	Class       string
}

// Input renders a labelled input. File inputs never carry a value.
func Input(p InputProps) templ.Component {
	return Func(func(h *HTML) {
		id := p.ID
		if id == "" {
			id = p.Name
		}
		typ := p.Type
		if typ == "" {
			typ = "text"
		}
		h.El("div", Attrs("class", "space-y-1"), func() {
			if p.Label != "" {
				h.TextEl("label", Attrs("for", id, "class", "block text-sm font-medium"), p.Label)
			}
			attrs := Attrs("id", id, "name", p.Name, "type", typ, "class", twmerge.Merge(inputClass, p.Class))
			if typ != "file" && typ != "password" && p.Value != "" {
				attrs = append(attrs, Attr{Name: "value", Value: p.Value})
			}
			if p.Placeholder != "" {
				attrs = append(attrs, Attr{Name: "placeholder", Value: p.Placeholder})
			}
			if p.Accept != "" {
				attrs = append(attrs, Attr{Name: "accept", Value: p.Accept})
			}
			if p.Required {
				attrs = append(attrs, Flag("required"))
			}
			h.Void("input", attrs...)
		})
	})
}

type TextareaProps struct {
	ID       string
	Name     string
	Label    string
	Value    string
	Rows     string
	Required bool
}

func Textarea(p TextareaProps) templ.Component {
	return Func(func(h *HTML) {
		id := p.ID
		if id == "" {
			id = p.Name
		}
		rows := p.Rows
		if rows == "" {
			rows = "3"
		}
		h.El("div", Attrs("class", "space-y-1"), func() {
			if p.Label != "" {
				h.TextEl("label", Attrs("for", id, "class", "block text-sm font-medium"), p.Label)
			}
			attrs := Attrs("id", id, "name", p.Name, "rows", rows, "class", inputClass)
			if p.Required {
				attrs = append(attrs, Flag("required"))
			}
			h.TextEl("textarea", attrs, p.Value)
		})
	})
}

type Option struct {
	Value string
	Label string
}

type SelectProps struct {
	ID       string
	Name     string
	Label    string
	Options  []Option
	Selected string
	// Attributes are extra attributes such as hx-get triggers.
	Attributes []Attr
}

func Select(p SelectProps) templ.Component {
	return Func(func(h *HTML) {
		id := p.ID
		if id == "" {
			id = p.Name
		}
		h.El("div", Attrs("class", "space-y-1"), func() {
			if p.Label != "" {
				h.TextEl("label", Attrs("for", id, "class", "block text-sm font-medium"), p.Label)
			}
			attrs := append(Attrs("id", id, "name", p.Name, "class", inputClass), p.Attributes...)
			h.El("select", attrs, func() {
				for _, o := range p.Options {
					oa := Attrs("value", o.Value)
					if o.Value == p.Selected {
						oa = append(oa, Flag("selected"))
					}
					h.TextEl("option", oa, o.Label)
				}
			})
		})
	})
}

// Confirm renders a yes/no prompt that posts confirm=yes to action.
func Confirm(message, action, cancelHref string) templ.Component {
	return Func(func(h *HTML) {
		h.El("div", Attrs("class", "rounded-md border border-red-200 bg-red-50 p-4 space-y-3", "role", "alertdialog"), func() {
			h.TextEl("p", Attrs("class", "text-sm text-red-800"), message)
			h.El("form", Attrs("method", "post", "action", action, "class", "flex gap-2"), func() {
				h.Void("input", Attrs("type", "hidden", "name", "confirm", "value", "yes")...)
				h.Component(Button(ButtonProps{Type: TypeSubmit, Variant: VariantDestructive, Size: SizeSm}, Label("Yes, delete")))
				h.Component(Button(ButtonProps{Href: cancelHref, Variant: VariantOutline, Size: SizeSm}, Label("Cancel")))
			})
		})
	})
}

// EmptyState is shown in place of an empty list.
func EmptyState(message string) templ.Component {
	return Func(func(h *HTML) {
		h.TextEl("p", Attrs("class", "py-12 text-center text-gray-500", "data-empty", "true"), message)
	})
}
