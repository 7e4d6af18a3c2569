package photos

import (
	"sort"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

// AllCategories is the category value that disables the category filter.
const AllCategories = "all"

// Filter narrows an already fetched photo list. It never causes a request.
type Filter struct {
	Query    string
	Category string
}

func (f Filter) terms() []string {
	fold := cases.Fold()
	var out []string
	for _, t := range strings.Fields(f.Query) {
		out = append(out, fold.String(t))
	}
	return out
}

func (f Filter) category() string {
	c := strings.TrimSpace(f.Category)
	if strings.EqualFold(c, AllCategories) {
		return ""
	}
	return cases.Fold().String(c)
}

// Active reports whether the filter removes anything.
func (f Filter) Active() bool {
	return len(f.terms()) > 0 || f.category() != ""
}

// Apply returns the photos whose description or category contains any search
// term and whose category equals the selected one, ignoring case. Order is
// preserved.
func (f Filter) Apply(photos []models.Photo) []models.Photo {
	terms := f.terms()
	category := f.category()
	if len(terms) == 0 && category == "" {
		return photos
	}

	var matcher *ahocorasick.AhoCorasick
	if len(terms) > 0 {
		builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			AsciiCaseInsensitive: true,
			MatchKind:            ahocorasick.LeftMostFirstMatch,
			DFA:                  true,
		})
		ac := builder.Build(terms)
		matcher = &ac
	}

	fold := cases.Fold()
	out := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if category != "" && fold.String(strings.TrimSpace(p.Category)) != category {
			continue
		}
		if matcher != nil {
			haystack := fold.String(p.Description + "\n" + p.Category)
			if len(matcher.FindAll(haystack)) == 0 {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Categories lists the distinct categories of photos, title-cased and
// sorted. Categories differing only in case are listed once.
func Categories(photos []models.Photo) []string {
	fold := cases.Fold()
	title := cases.Title(language.Und)
	seen := make(map[string]struct{})
	var out []string
	for _, p := range photos {
		c := strings.TrimSpace(p.Category)
		if c == "" {
			continue
		}
		key := fold.String(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, title.String(c))
	}
	sort.Strings(out)
	return out
}

// Page is one window of a paginated list.
type Page struct {
	Number int
	Total  int
	Size   int
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.Total }

// Paginate returns the page-th window of size items. A size of zero or less
// returns everything as a single page. Out of range pages are clamped.
func Paginate[T any](items []T, page, size int) ([]T, Page) {
	if size <= 0 || len(items) <= size {
		return items, Page{Number: 1, Total: 1, Size: size}
	}
	total := (len(items) + size - 1) / size
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end], Page{Number: page, Total: total, Size: size}
}
