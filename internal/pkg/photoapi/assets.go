package photoapi

import "strings"

// AssetURL turns an image reference returned by the API into a URL the
// browser can load. Absolute URLs pass through; server-relative paths may use
// Windows separators and are joined to the API base.
func (c *Client) AssetURL(ref string) string {
	return ResolveAssetURL(c.BaseURL(), ref)
}

// DefaultProfilePhotoURL is shown for users without a profile photo.
func (c *Client) DefaultProfilePhotoURL() string {
	return c.BaseURL() + "/" + defaultProfilePhotoPath
}

// ProfilePhotoURL resolves ref, falling back to the default photo when empty.
func (c *Client) ProfilePhotoURL(ref string) string {
	if strings.TrimSpace(ref) == "" {
		return c.DefaultProfilePhotoURL()
	}
	return c.AssetURL(ref)
}

// ResolveAssetURL is AssetURL without a client.
func ResolveAssetURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return ref
	}
	ref = strings.ReplaceAll(ref, `\`, "/")
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
