package theme

import "embed"

// EmbeddedThemes holds the themes that ship with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
