package utils

import (
	"path/filepath"
	"slices"
)

// CheckFileExt returns the file extension and whether it is one of the
// accepted extensions (given without the leading dot).
func CheckFileExt(fileName string, valid []string) (string, bool) {
	ext := filepath.Ext(fileName)
	if ext == "" {
		return "", false
	}
	return ext, slices.Contains(valid, ext[1:])
}
