package docs

import "embed"

// FS contains the Markdown guides bundled with the magpie binary.
//
//go:embed *.md
var FS embed.FS
