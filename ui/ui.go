// Package ui embeds the templates and static assets served by the web
// application.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
