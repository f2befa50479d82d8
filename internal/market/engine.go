package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine answers every market query from the injected read-only
// catalog. All operations are pure functions of the catalog and their
// arguments; the only time-dependent output is the shopping-cost
// timestamp, read from Now at response construction.
type Engine struct {
	Catalog *Catalog
	Log     *zap.Logger
	Now     func() time.Time
}

func NewEngine(c *Catalog, log *zap.Logger) *Engine {
	return &Engine{Catalog: c, Log: log, Now: time.Now}
}

// NotFoundError reports a lookup miss. It is a result value, not a
// fault: handlers render it as a structured error body.
type NotFoundError struct {
	Category Category
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Category.Title(), e.Name)
}

// ItemInfo is the per-item view used in category listings.
type ItemInfo struct {
	Price   float64 `json:"price"`
	Unit    string  `json:"unit"`
	Organic bool    `json:"organic"`
}

// ItemDetail is the single-item lookup view.
type ItemDetail struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Unit    string  `json:"unit"`
	Organic bool    `json:"organic"`
}

// Category returns every item in a category keyed by name.
func (e *Engine) Category(cat Category) map[string]ItemInfo {
	items := e.Catalog.Items(cat)
	out := make(map[string]ItemInfo, len(items))
	for _, it := range items {
		out[it.Name] = ItemInfo{
			Price:   it.Price.InexactFloat64(),
			Unit:    it.Unit,
			Organic: it.Organic,
		}
	}
	return out
}

// Item looks up one catalog entry. A miss returns *NotFoundError with
// the caller-facing message; it never fails any other way.
func (e *Engine) Item(cat Category, name string) (ItemDetail, error) {
	it, ok := e.Catalog.Lookup(cat, name)
	if !ok {
		return ItemDetail{}, &NotFoundError{Category: cat, Name: name}
	}
	return ItemDetail{
		Name:    it.Name,
		Price:   it.Price.InexactFloat64(),
		Unit:    it.Unit,
		Organic: it.Organic,
	}, nil
}

// ShoppingLine is one requested line of a shopping list.
type ShoppingLine struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// CostLine is one resolved line of a cost breakdown. Cost keeps full
// precision; only the summary total is rounded.
type CostLine struct {
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Cost         float64 `json:"cost"`
}

type CostSummary struct {
	TotalCost float64    `json:"total_cost"`
	Items     []CostLine `json:"items"`
	Errors    []string   `json:"errors"`
	Timestamp string     `json:"timestamp"`
}

// ShoppingCost totals a shopping list. Lines fail independently: an
// unknown type, a missing item, or a negative quantity records an error
// string and skips the line, and the remaining lines still contribute.
// The total is rounded to 2 decimal places.
func (e *Engine) ShoppingCost(lines []ShoppingLine) CostSummary {
	total := decimal.Zero
	items := make([]CostLine, 0, len(lines))
	errs := make([]string, 0)

	for _, ln := range lines {
		typ := strings.ToLower(ln.Type)
		cat, ok := MatchCategory(typ)
		if !ok {
			errs = append(errs, fmt.Sprintf("Unknown item type: %s", typ))
			continue
		}

		name := strings.ToLower(ln.Name)
		it, ok := e.Catalog.Lookup(cat, name)
		if !ok {
			errs = append(errs, (&NotFoundError{Category: cat, Name: name}).Error())
			continue
		}

		if ln.Quantity < 0 {
			errs = append(errs, fmt.Sprintf("Invalid quantity for '%s': %v", name, ln.Quantity))
			continue
		}

		cost := it.Price.Mul(decimal.NewFromFloat(ln.Quantity))
		total = total.Add(cost)

		items = append(items, CostLine{
			Type:         string(cat),
			Name:         name,
			Quantity:     ln.Quantity,
			Unit:         it.Unit,
			PricePerUnit: it.Price.InexactFloat64(),
			Cost:         cost.InexactFloat64(),
		})
	}

	if len(errs) > 0 && e.Log != nil {
		e.Log.Debug("shopping list lines rejected",
			zap.Int("rejected", len(errs)),
			zap.Int("accepted", len(items)))
	}

	return CostSummary{
		TotalCost: total.Round(2).InexactFloat64(),
		Items:     items,
		Errors:    errs,
		Timestamp: e.now().Format(time.RFC3339),
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// PricedProduct is the per-item view used by range search.
type PricedProduct struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Unit    string  `json:"unit"`
	Organic bool    `json:"organic"`
}

// SearchResult always carries both category keys; an unsearched
// category is present but empty.
type SearchResult struct {
	Fruits     []PricedProduct `json:"fruits"`
	Vegetables []PricedProduct `json:"vegetables"`
}

// SearchByPriceRange returns every item whose price lies within
// [min, max], both bounds inclusive. The category filter matches
// case-insensitively; an empty or unrecognized filter searches both
// categories. An inverted range is not an error, it matches nothing.
func (e *Engine) SearchByPriceRange(min, max decimal.Decimal, category string) SearchResult {
	res := SearchResult{
		Fruits:     []PricedProduct{},
		Vegetables: []PricedProduct{},
	}

	filter, restricted := MatchCategory(strings.ToLower(category))

	for _, cat := range Categories {
		if restricted && cat != filter {
			continue
		}
		for _, it := range e.Catalog.Items(cat) {
			if it.Price.LessThan(min) || it.Price.GreaterThan(max) {
				continue
			}
			p := PricedProduct{
				Name:    it.Name,
				Price:   it.Price.InexactFloat64(),
				Unit:    it.Unit,
				Organic: it.Organic,
			}
			if cat == CategoryFruit {
				res.Fruits = append(res.Fruits, p)
			} else {
				res.Vegetables = append(res.Vegetables, p)
			}
		}
	}

	return res
}

// OrganicProduct omits the organic flag: every returned item is organic
// by construction.
type OrganicProduct struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
}

type OrganicResult struct {
	Fruits     []OrganicProduct `json:"fruits"`
	Vegetables []OrganicProduct `json:"vegetables"`
}

// OrganicProducts returns every organic item per category.
func (e *Engine) OrganicProducts() OrganicResult {
	res := OrganicResult{
		Fruits:     []OrganicProduct{},
		Vegetables: []OrganicProduct{},
	}

	for _, cat := range Categories {
		for _, it := range e.Catalog.Items(cat) {
			if !it.Organic {
				continue
			}
			p := OrganicProduct{
				Name:  it.Name,
				Price: it.Price.InexactFloat64(),
				Unit:  it.Unit,
			}
			if cat == CategoryFruit {
				res.Fruits = append(res.Fruits, p)
			} else {
				res.Vegetables = append(res.Vegetables, p)
			}
		}
	}

	return res
}

// Comparison pairs one organic item with its regular counterpart.
type Comparison struct {
	Product              string  `json:"product"`
	Category             string  `json:"category"`
	RegularPrice         float64 `json:"regular_price"`
	OrganicPrice         float64 `json:"organic_price"`
	PriceDifference      float64 `json:"price_difference"`
	PercentageDifference float64 `json:"percentage_difference"`
	Unit                 string  `json:"unit"`
}

type ComparisonResult struct {
	Comparisons []Comparison `json:"comparisons"`
}

const organicPrefix = "organic_"

// baseName derives the regular counterpart's name from an organic
// item's name. Only an exact "organic_" prefix pairs; anything else is
// not part of the convention.
func baseName(name string) (string, bool) {
	if !strings.HasPrefix(name, organicPrefix) {
		return "", false
	}
	return strings.TrimPrefix(name, organicPrefix), true
}

// CompareRegularVsOrganic emits a price comparison for every organic
// item whose derived base name exists as a regular entry in the same
// category. Unpaired organic items are skipped, as is a pair whose
// regular price is zero (no meaningful markup percentage exists).
func (e *Engine) CompareRegularVsOrganic() ComparisonResult {
	comparisons := make([]Comparison, 0)
	hundred := decimal.NewFromInt(100)

	for _, cat := range Categories {
		for _, it := range e.Catalog.Items(cat) {
			if !it.Organic {
				continue
			}

			base, ok := baseName(it.Name)
			if !ok {
				continue
			}
			regular, ok := e.Catalog.Lookup(cat, base)
			if !ok || regular.Organic {
				continue
			}
			if regular.Price.IsZero() {
				continue
			}

			diff := it.Price.Sub(regular.Price)
			pct := diff.Div(regular.Price).Mul(hundred)

			comparisons = append(comparisons, Comparison{
				Product:              base,
				Category:             string(cat),
				RegularPrice:         regular.Price.InexactFloat64(),
				OrganicPrice:         it.Price.InexactFloat64(),
				PriceDifference:      diff.Round(2).InexactFloat64(),
				PercentageDifference: pct.Round(2).InexactFloat64(),
				Unit:                 it.Unit,
			})
		}
	}

	return ComparisonResult{Comparisons: comparisons}
}
