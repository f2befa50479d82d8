package market

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the top-level grouping of catalog items. It is a closed
// set: the market sells fruits and vegetables, nothing else.
type Category string

const (
	CategoryFruit     Category = "fruit"
	CategoryVegetable Category = "vegetable"
)

// Categories lists every known category in catalog order.
var Categories = []Category{CategoryFruit, CategoryVegetable}

// ParseCategory normalizes a URL category segment. It accepts both the
// singular and plural spellings, case-insensitively. Query operations
// use the stricter MatchCategory instead.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fruit", "fruits":
		return CategoryFruit, true
	case "vegetable", "vegetables":
		return CategoryVegetable, true
	default:
		return "", false
	}
}

// MatchCategory recognizes only the exact singular tokens. Shopping
// lines and search filters carry pre-lowercased values; anything else,
// plural spellings included, is unrecognized.
func MatchCategory(s string) (Category, bool) {
	switch s {
	case "fruit":
		return CategoryFruit, true
	case "vegetable":
		return CategoryVegetable, true
	default:
		return "", false
	}
}

// Plural returns the category's plural form, used as the grouping key
// in listing and search responses.
func (c Category) Plural() string {
	return string(c) + "s"
}

// Title returns the capitalized singular form used in error messages.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Item is one catalog entry. Price is the cost per Unit; Unit is a
// descriptive label only and never enters arithmetic.
type Item struct {
	Name    string
	Price   decimal.Decimal
	Unit    string
	Organic bool
}

// Catalog is the read-only price list. It is populated once by
// NewCatalog and never mutated, so it is safe for concurrent readers
// without locking. Listing order is declaration order.
type Catalog struct {
	items map[Category][]Item
	index map[Category]map[string]int
}

func NewCatalog(items map[Category][]Item) *Catalog {
	c := &Catalog{
		items: make(map[Category][]Item, len(items)),
		index: make(map[Category]map[string]int, len(items)),
	}
	for cat, list := range items {
		c.items[cat] = append([]Item(nil), list...)
		idx := make(map[string]int, len(list))
		for i, it := range list {
			idx[it.Name] = i
		}
		c.index[cat] = idx
	}
	return c
}

// Lookup returns the item with the given name in the given category.
func (c *Catalog) Lookup(cat Category, name string) (Item, bool) {
	idx, ok := c.index[cat]
	if !ok {
		return Item{}, false
	}
	i, ok := idx[name]
	if !ok {
		return Item{}, false
	}
	return c.items[cat][i], true
}

// Items returns a copy of the category's items in declaration order.
func (c *Catalog) Items(cat Category) []Item {
	return append([]Item(nil), c.items[cat]...)
}

// Size returns the number of items in a category.
func (c *Catalog) Size(cat Category) int {
	return len(c.items[cat])
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultCatalog returns the market's fixed price list. Organic entries
// follow the "organic_" name-prefix convention pairing them with their
// regular counterparts.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[Category][]Item{
		CategoryFruit: {
			{Name: "apple", Price: price("1.20"), Unit: "kg"},
			{Name: "banana", Price: price("0.90"), Unit: "kg"},
			{Name: "orange", Price: price("1.50"), Unit: "kg"},
			{Name: "strawberry", Price: price("3.50"), Unit: "punnet"},
			{Name: "blueberry", Price: price("4.20"), Unit: "punnet"},
			{Name: "organic_apple", Price: price("2.20"), Unit: "kg", Organic: true},
			{Name: "organic_banana", Price: price("1.80"), Unit: "kg", Organic: true},
		},
		CategoryVegetable: {
			{Name: "carrot", Price: price("0.80"), Unit: "kg"},
			{Name: "potato", Price: price("1.00"), Unit: "kg"},
			{Name: "onion", Price: price("0.90"), Unit: "kg"},
			{Name: "broccoli", Price: price("2.50"), Unit: "head"},
			{Name: "spinach", Price: price("2.20"), Unit: "bunch"},
			{Name: "organic_carrot", Price: price("1.60"), Unit: "kg", Organic: true},
			{Name: "organic_potato", Price: price("1.80"), Unit: "kg", Organic: true},
		},
	})
}
