package photos

import (
	"net/url"
	"strings"

	"github.com/FACorreiaa/go-photoshare/internal/app/components"
	"github.com/FACorreiaa/go-photoshare/internal/app/domain"
	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

const (
	fallbackCategory          = "N/A"
	fallbackDescription       = "No description"
	fallbackDetailDescription = "No description available"
	fallbackOwner             = "Unknown User"
	fallbackDate              = "Unknown date"
)

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func detailHref(id string) string {
	return "/photoDetails/" + url.PathEscape(id)
}

func cardProps(assets domain.AssetResolver, p models.Photo) components.PhotoCardProps {
	props := components.PhotoCardProps{
		ID:          p.ID,
		ImageURL:    assets.AssetURL(p.URL),
		Category:    orDefault(p.Category, fallbackCategory),
		Description: orDefault(p.Description, fallbackDescription),
		Href:        detailHref(p.ID),
	}
	if p.User != nil {
		props.UploaderName = p.User.Name
		props.UploaderPhoto = assets.ProfilePhotoURL(p.User.ProfilePhoto)
	}
	return props
}

func galleryView(assets domain.AssetResolver, photos []models.Photo, filter Filter, page, pageSize int, loaded bool) GalleryView {
	matched := filter.Apply(photos)
	window, pg := Paginate(matched, page, pageSize)
	cards := make([]components.PhotoCardProps, 0, len(window))
	for _, p := range window {
		cards = append(cards, cardProps(assets, p))
	}
	return GalleryView{
		Cards:      cards,
		Filter:     filter,
		Categories: Categories(photos),
		Page:       pg,
		Matched:    len(matched),
		Loaded:     loaded,
	}
}

func myPhotos(assets domain.AssetResolver, photos []models.Photo) []MyPhoto {
	out := make([]MyPhoto, 0, len(photos))
	for _, p := range photos {
		out = append(out, MyPhoto{Card: cardProps(assets, p), Description: p.Description})
	}
	return out
}

func detailView(assets domain.AssetResolver, p *models.Photo) *DetailView {
	v := &DetailView{
		ID:          p.ID,
		ImageURL:    assets.AssetURL(p.URL),
		Category:    orDefault(p.Category, fallbackCategory),
		Description: orDefault(p.Description, fallbackDetailDescription),
		Date:        orDefault(p.UploadDate(), fallbackDate),
		OwnerName:   fallbackOwner,
		OwnerCourse: fallbackCategory,
		OwnerPhoto:  assets.ProfilePhotoURL(""),
	}
	if p.User != nil {
		v.OwnerName = orDefault(p.User.Name, fallbackOwner)
		v.OwnerCourse = orDefault(p.User.Course, fallbackCategory)
		v.OwnerPhoto = assets.ProfilePhotoURL(p.User.ProfilePhoto)
	}
	return v
}
