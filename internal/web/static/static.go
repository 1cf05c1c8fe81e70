// Package static holds the stylesheet and the browser bridge script.
package static

import "embed"

//go:embed style.css bridge.js
var FS embed.FS
