package util

import (
	"path/filepath"
	"strings"
)

// IsValidImageFile checks if a filename has a valid image extension
func IsValidImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

// IsValidTagPosition checks that a tag's normalized coordinates are image-relative
func IsValidTagPosition(x, y float64) bool {
	return x >= 0 && x <= 1 && y >= 0 && y <= 1
}
