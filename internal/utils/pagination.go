// Package utils provides small helpers for query parsing and paging that are
// independent of the record model.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault parses s as an int after trimming spaces. Empty or invalid
// input returns def.
//
//	utils.AtoiDefault("42", 0)  // 42
//	utils.AtoiDefault(" 7 ", 0) // 7
//	utils.AtoiDefault("x", 5)   // 5
func AtoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampPage bounds a requested page and page size. page is at least 1; a
// non-positive size becomes def, and size never exceeds max when max > 0.
func ClampPage(page, size, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = def
	}
	if size <= 0 {
		size = 1
	}
	if max > 0 && size > max {
		size = max
	}
	return page, size
}

// TotalPages is the number of pages of size needed for total items.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
