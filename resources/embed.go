package resources

import "embed"

// FS exposes the static resource files served under /static/.
//
//go:embed static
var FS embed.FS
