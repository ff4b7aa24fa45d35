package partition

import (
	"path/filepath"
	"strings"
)

// Markers inserted between the base name and the extension.
const (
	GoodMarker = "good"
	BadMarker  = "bad"
)

// Paths derives both output paths from the input path.
// Example: "dir/data.csv" -> "dir/data.good.csv", "dir/data.bad.csv".
// Files without an extension get the marker as suffix: "data" -> "data.good".
func Paths(input string) (good, bad string) {
	return markedPath(input, GoodMarker), markedPath(input, BadMarker)
}

// markedPath inserts "."+marker before the extension of path.
func markedPath(path, marker string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	// Dotfiles like ".env" have no extension, only a name.
	if name == "" {
		name, ext = base, ""
	}
	return filepath.Join(dir, name+"."+marker+ext)
}
