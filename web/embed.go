// Package web embeds the static configuration shipped with the binary.
package web

import (
	"embed"
)

//go:embed config/apps.json
var configFS embed.FS

// AppsJSON returns the raw bytes of the bundled apps.json dashboard
// definition.
func AppsJSON() ([]byte, error) {
	return configFS.ReadFile("config/apps.json")
}
