// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "slices"

// Category classifies an item record. The code is what gets persisted and
// compared; the display label (emoji included) is decoration only and is
// never parsed back into a code.
type Category string

const (
	CategoryProduce   Category = "produce"
	CategoryMeatFish  Category = "meat_fish"
	CategoryDairy     Category = "dairy"
	CategoryBeverages Category = "beverages"
	CategoryCondiment Category = "condiments"
	CategoryLeftovers Category = "leftovers"
	CategorySnacks    Category = "snacks"
	CategoryGrains    Category = "grains"
	CategoryFrozen    Category = "frozen"
	CategoryOther     Category = "other"
)

// categoryLabels maps category codes to their human-readable labels.
var categoryLabels = map[Category]string{
	CategoryProduce:   "🥬 Fruit & Vegetables",
	CategoryMeatFish:  "🥩 Meat & Fish",
	CategoryDairy:     "🥛 Dairy",
	CategoryBeverages: "🥤 Beverages",
	CategoryCondiment: "🧂 Spices & Sauces",
	CategoryLeftovers: "🍱 Leftovers",
	CategorySnacks:    "🍿 Snacks",
	CategoryGrains:    "🍝 Grains & Pasta",
	CategoryFrozen:    "🧊 Frozen",
	CategoryOther:     "📦 Other",
}

// AllCategories lists every valid category code in display order.
func AllCategories() []Category {
	return []Category{
		CategoryProduce, CategoryMeatFish, CategoryDairy, CategoryBeverages,
		CategoryCondiment, CategoryLeftovers, CategorySnacks, CategoryGrains,
		CategoryFrozen, CategoryOther,
	}
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// Label returns the display label for the category, falling back to the
// "other" label for unknown codes.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}

	return categoryLabels[CategoryOther]
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	return slices.Contains(AllCategories(), c)
}
