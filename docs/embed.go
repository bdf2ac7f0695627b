// Package docs bundles long-form Markdown documentation with the jot
// binary.
package docs

import "embed"

// FS contains the guide topics served by the docs command.
//
//go:embed guide
var FS embed.FS
