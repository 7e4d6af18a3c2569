package assets

import "embed"

//go:embed css
var Assets embed.FS
