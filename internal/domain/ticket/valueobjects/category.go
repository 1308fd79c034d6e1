package valueobjects

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryBug     Category = "bug"
	CategoryFeature Category = "feature"
	CategoryBilling Category = "billing"
	CategoryOther   Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryBug, CategoryFeature, CategoryBilling, CategoryOther}

var validCategories = map[Category]bool{
	CategoryBug:     true,
	CategoryFeature: true,
	CategoryBilling: true,
	CategoryOther:   true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

// NewCategory parses a category. An empty string means CategoryOther.
func NewCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return c, nil
}
