package util

import (
	"net/url"
	"strings"

	"github.com/mattn/go-runewidth"
)

// GetDisplayWidth calculates the actual display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadLeft right-aligns text in a column of the given display width.
func PadLeft(text string, width int) string {
	return runewidth.FillLeft(text, width)
}

// PadRight left-aligns text in a column of the given display width.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// DisplayURL shortens a profile URL for display: no scheme, no "www.", no trailing slash.
// Strings that do not parse as absolute URLs are returned unchanged.
func DisplayURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.TrimPrefix(u.Host, "www.")
	shown := host + strings.TrimSuffix(u.Path, "/")
	if u.RawQuery != "" {
		shown += "?" + u.RawQuery
	}
	return shown
}
