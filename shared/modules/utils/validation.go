package utils

import "regexp"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor accepts #RGB and #RRGGBB.
func ValidateHexColor(color string) bool {
	return hexColorPattern.MatchString(color)
}
