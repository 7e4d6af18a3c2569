package components

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type Variant string
type Size string
type ButtonType string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
	VariantOutline     Variant = "outline"
	VariantSecondary   Variant = "secondary"
	VariantGhost       Variant = "ghost"
	VariantLink        Variant = "link"
)

const (
	SizeDefault Size = "default"
	SizeSm      Size = "sm"
	SizeLg      Size = "lg"
)

const (
	TypeButton ButtonType = "button"
	TypeSubmit ButtonType = "submit"
)

type ButtonProps struct {
	ID         string
	Class      string
	Attributes []Attr
	Variant    Variant
	Size       Size
	FullWidth  bool
	Href       string
	Disabled   bool
	Type       ButtonType
}

// Button renders a <button>, or an <a> styled as one when Href is set.
func Button(p ButtonProps, children ...templ.Component) templ.Component {
	return Func(func(h *HTML) {
		attrs := []Attr{{Name: "class", Value: buttonClass(p)}}
		if p.ID != "" {
			attrs = append(attrs, Attr{Name: "id", Value: p.ID})
		}
		tag := "button"
		if p.Href != "" && !p.Disabled {
			tag = "a"
			attrs = append(attrs, Attr{Name: "href", Value: p.Href})
		} else {
			t := p.Type
			if t == "" {
				t = TypeButton
			}
			attrs = append(attrs, Attr{Name: "type", Value: string(t)})
			if p.Disabled {
				attrs = append(attrs, Flag("disabled"))
			}
		}
		attrs = append(attrs, p.Attributes...)
		h.El(tag, attrs, func() {
			for _, c := range children {
				h.Component(c)
			}
		})
	})
}

// Label is plain escaped text for use as button content.
func Label(text string) templ.Component {
	return Func(func(h *HTML) { h.Text(text) })
}

func buttonClass(p ButtonProps) string {
	full := ""
	if p.FullWidth {
		full = "w-full"
	}
	return twmerge.Merge(
		"inline-flex items-center justify-center gap-2 rounded-md text-sm font-medium transition-colors focus-visible:outline-none focus-visible:ring-2 disabled:opacity-50 disabled:pointer-events-none cursor-pointer",
		variantClass(p.Variant),
		sizeClass(p.Size),
		full,
		p.Class,
	)
}

func variantClass(v Variant) string {
	switch v {
	case VariantDestructive:
		return "bg-red-600 text-white hover:bg-red-700"
	case VariantOutline:
		return "border border-gray-300 bg-white hover:bg-gray-50"
	case VariantSecondary:
		return "bg-gray-100 text-gray-900 hover:bg-gray-200"
	case VariantGhost:
		return "hover:bg-gray-100"
	case VariantLink:
		return "text-indigo-600 underline-offset-4 hover:underline"
	default:
		return "bg-indigo-600 text-white hover:bg-indigo-700"
	}
}

func sizeClass(s Size) string {
	switch s {
	case SizeSm:
		return "h-9 px-3"
	case SizeLg:
		return "h-11 px-8"
	default:
		return "h-10 px-4 py-2"
	}
}
