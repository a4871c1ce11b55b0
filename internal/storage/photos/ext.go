package photos

import (
	"path/filepath"
	"strings"
)

// DefaultExt is used when the uploaded file name carries no usable extension.
const DefaultExt = ".jpg"

const maxExtLen = 8

// Ext returns the lower-cased extension of an uploaded file name, or DefaultExt.
// Only ASCII letters and digits are kept.
func Ext(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(strings.ReplaceAll(filename, `\`, "/"))))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return DefaultExt
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return DefaultExt
		}
	}
	return ext
}
