package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultSize is the standard page size when size is not provided.
	DefaultSize = 25
	// MaxSize caps how many rows any listing query can request.
	MaxSize = 100
)

// Page holds offset pagination inputs parsed from the from/size query params.
type Page struct {
	From int
	Size int
}

// Normalize clamps the page to the configured default and maximum.
func (p Page) Normalize() Page {
	if p.From < 0 {
		p.From = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Parse reads the from/size query parameter values. Blank values fall back to
// the defaults; negative or non-numeric values are rejected.
func Parse(fromValue, sizeValue string) (Page, error) {
	page := Page{From: 0, Size: DefaultSize}

	if trimmed := strings.TrimSpace(fromValue); trimmed != "" {
		from, err := strconv.Atoi(trimmed)
		if err != nil || from < 0 {
			return Page{}, fmt.Errorf("from must be a non-negative integer")
		}
		page.From = from
	}

	if trimmed := strings.TrimSpace(sizeValue); trimmed != "" {
		size, err := strconv.Atoi(trimmed)
		if err != nil || size <= 0 {
			return Page{}, fmt.Errorf("size must be a positive integer")
		}
		page.Size = size
	}

	return page.Normalize(), nil
}
