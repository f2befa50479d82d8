package market

import (
	"reflect"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"fruit", CategoryFruit, true},
		{"fruits", CategoryFruit, true},
		{"FRUIT", CategoryFruit, true},
		{" Vegetable ", CategoryVegetable, true},
		{"vegetables", CategoryVegetable, true},
		{"dairy", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseCategory(%q)=%q,%v want=%q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatchCategory_ExactSingularOnly(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"fruit", CategoryFruit, true},
		{"vegetable", CategoryVegetable, true},
		{"fruits", "", false},
		{"vegetables", "", false},
		{" fruit", "", false},
		{"Fruit", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := MatchCategory(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("MatchCategory(%q)=%q,%v want=%q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCategoryForms(t *testing.T) {
	if got := CategoryFruit.Plural(); got != "fruits" {
		t.Fatalf("plural=%q", got)
	}
	if got := CategoryVegetable.Plural(); got != "vegetables" {
		t.Fatalf("plural=%q", got)
	}
	if got := CategoryFruit.Title(); got != "Fruit" {
		t.Fatalf("title=%q", got)
	}
	if got := CategoryVegetable.Title(); got != "Vegetable" {
		t.Fatalf("title=%q", got)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	if got := c.Size(CategoryFruit); got != 7 {
		t.Fatalf("fruits=%d want=7", got)
	}
	if got := c.Size(CategoryVegetable); got != 7 {
		t.Fatalf("vegetables=%d want=7", got)
	}

	it, ok := c.Lookup(CategoryFruit, "apple")
	if !ok {
		t.Fatalf("apple missing")
	}
	if !it.Price.Equal(price("1.20")) || it.Unit != "kg" || it.Organic {
		t.Fatalf("apple=%+v", it)
	}

	if _, ok := c.Lookup(CategoryFruit, "carrot"); ok {
		t.Fatalf("carrot is not a fruit")
	}
	if _, ok := c.Lookup(CategoryVegetable, "mango"); ok {
		t.Fatalf("mango should be absent")
	}
}

func TestCatalogItems_DeclarationOrder(t *testing.T) {
	c := DefaultCatalog()

	names := make([]string, 0, c.Size(CategoryVegetable))
	for _, it := range c.Items(CategoryVegetable) {
		names = append(names, it.Name)
	}

	want := []string{"carrot", "potato", "onion", "broccoli", "spinach", "organic_carrot", "organic_potato"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("order=%v want=%v", names, want)
	}
}

func TestCatalogItems_ReturnsCopy(t *testing.T) {
	c := DefaultCatalog()

	first := c.Items(CategoryFruit)
	first[0].Name = "mutated"

	second := c.Items(CategoryFruit)
	if second[0].Name != "apple" {
		t.Fatalf("catalog mutated through Items: %+v", second[0])
	}
}
