package domain

import (
	"strings"
	"time"
)

// Category is the fixed enumeration of catalog categories.
type Category string

const (
	CategoryChocolate Category = "Chocolate"
	CategoryCandy     Category = "Candy"
	CategoryGummy     Category = "Gummy"
	CategoryHardCandy Category = "Hard Candy"
	CategoryLollipop  Category = "Lollipop"
	CategoryOther     Category = "Other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryChocolate,
	CategoryCandy,
	CategoryGummy,
	CategoryHardCandy,
	CategoryLollipop,
	CategoryOther,
}

// Valid reports whether c belongs to the enumeration.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Sweet is a catalog item. Quantity and Price are never negative once stored.
type Sweet struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SweetFilter narrows a catalog listing. Zero values mean "no constraint";
// all present constraints combine with logical AND.
type SweetFilter struct {
	Name     string // case-insensitive substring
	Category Category
	MinPrice *float64 // inclusive
	MaxPrice *float64 // inclusive
}

// Matches applies the filter to a single sweet. Stores that cannot push the
// filter down to the database use it directly.
func (f SweetFilter) Matches(s Sweet) bool {
	if f.Name != "" && !containsFold(s.Name, f.Name) {
		return false
	}
	if f.Category != "" && s.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && s.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && s.Price > *f.MaxPrice {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
