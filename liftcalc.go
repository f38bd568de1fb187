// Package liftcalc embeds the web assets served by the calculator pages.
package liftcalc

import "embed"

// StaticFS holds web/static (stylesheet).
//
//go:embed web/static
var StaticFS embed.FS
