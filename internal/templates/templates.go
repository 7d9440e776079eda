package templates

import "embed"

//go:embed scripts/*.hbs
var Scripts embed.FS
