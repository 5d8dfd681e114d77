package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"storefront-service/cart"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultData []byte

type productEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Category string `yaml:"category"`
	Image    string `yaml:"image"`
}

// Plan is a subscription tier shown in the pricing section.
type Plan struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	MonthlyPrice int64    `yaml:"monthly_price" json:"monthly_price"`
	YearlyPrice  int64    `yaml:"yearly_price" json:"yearly_price"`
	CTA          string   `yaml:"cta" json:"cta"`
	Popular      bool     `yaml:"popular" json:"popular"`
	Features     []string `yaml:"features" json:"features"`
}

type file struct {
	Products []productEntry `yaml:"products"`
	Plans    []Plan         `yaml:"plans"`
}

// Catalog is the read-only list of products and plans.
type Catalog struct {
	products []cart.Product
	byID     map[string]cart.Product
	plans    []Plan
}

// Default loads the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(defaultData)
}

// Load parses a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]cart.Product, len(f.Products)), plans: f.Plans}
	for _, e := range f.Products {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog product %q has no id", e.Name)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog product id %q", e.ID)
		}
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog product %q: invalid price %q: %w", e.ID, e.Price, err)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("catalog product %q: price must be positive", e.ID)
		}
		p := cart.Product{
			ID:       e.ID,
			Name:     e.Name,
			Price:    price,
			Category: e.Category,
			Image:    e.Image,
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}
	return c, nil
}

// Products lists products in catalog order, optionally filtered by category
// (case-insensitive). An empty category returns everything.
func (c *Catalog) Products(category string) []cart.Product {
	out := make([]cart.Product, 0, len(c.products))
	for _, p := range c.products {
		if category == "" || strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Product(id string) (cart.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}
