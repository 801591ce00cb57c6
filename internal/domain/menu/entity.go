// internal/domain/menu/entity.go
package menu

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Category represents a menu section
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Option is one choice inside an option group
type Option struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	MaxQuantity *int            `json:"maxQuantity,omitempty"`
}

// OptionGroup is a named set of choices with selection bounds.
// MinSelection == MaxSelection == 1 is an exclusive single choice.
type OptionGroup struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MinSelection int      `json:"minSelection"`
	MaxSelection int      `json:"maxSelection"`
	Options      []Option `json:"options"`
}

// UnmarshalJSON accepts both minSelect/maxSelect and minSelection/maxSelection.
// The short names win when both are present.
func (g *OptionGroup) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		MinSelect    *int     `json:"minSelect"`
		MinSelection *int     `json:"minSelection"`
		MaxSelect    *int     `json:"maxSelect"`
		MaxSelection *int     `json:"maxSelection"`
		Options      []Option `json:"options"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*g = OptionGroup{
		ID:           wire.ID,
		Name:         wire.Name,
		MinSelection: firstOf(wire.MinSelect, wire.MinSelection),
		MaxSelection: firstOf(wire.MaxSelect, wire.MaxSelection),
		Options:      wire.Options,
	}
	if g.Options == nil {
		g.Options = []Option{}
	}
	return nil
}

// Exclusive reports whether exactly one option must be chosen
func (g OptionGroup) Exclusive() bool {
	return g.MinSelection == 1 && g.MaxSelection == 1
}

// Option looks up an option by id
func (g OptionGroup) Option(id string) (Option, bool) {
	for _, opt := range g.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// OptionConfig attaches an option group to a product
type OptionConfig struct {
	OptionGroup OptionGroup `json:"optionGroup"`
}

// Product represents a menu item
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	IsVeg         bool            `json:"isVeg"`
	IsAvailable   bool            `json:"isAvailable"`
	CategoryID    string          `json:"categoryId"`
	OptionConfigs []OptionConfig  `json:"optionConfigs,omitempty"`
}

// Groups returns the product's option groups in configuration order
func (p Product) Groups() []OptionGroup {
	groups := make([]OptionGroup, len(p.OptionConfigs))
	for i, oc := range p.OptionConfigs {
		groups[i] = oc.OptionGroup
	}
	return groups
}

// Customizable reports whether the product has any option groups
func (p Product) Customizable() bool {
	return len(p.OptionConfigs) > 0
}

// RawCategory is the commerce API's nested menu shape: a category that
// embeds its products
type RawCategory struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Products []Product `json:"products"`
}

// Catalog is the flattened menu. Do not modify after construction.
type Catalog struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`

	byCategory map[string][]int
	byID       map[string]int
	bySlug     map[string]string
}

// Empty returns a catalog with no categories and no products
func Empty() *Catalog {
	return NewCatalog(nil, nil)
}

// NewCatalog builds a catalog and its lookup indexes
func NewCatalog(categories []Category, products []Product) *Catalog {
	if categories == nil {
		categories = []Category{}
	}
	if products == nil {
		products = []Product{}
	}

	c := &Catalog{Categories: categories, Products: products}
	c.reindex()
	return c
}

// UnmarshalJSON decodes a catalog and rebuilds its indexes
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var wire struct {
		Categories []Category `json:"categories"`
		Products   []Product  `json:"products"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*c = *NewCatalog(wire.Categories, wire.Products)
	return nil
}

func (c *Catalog) reindex() {
	c.byCategory = make(map[string][]int, len(c.Categories))
	c.byID = make(map[string]int, len(c.Products))
	c.bySlug = make(map[string]string, len(c.Categories))

	for _, cat := range c.Categories {
		c.bySlug[cat.Slug] = cat.ID
	}
	for i, p := range c.Products {
		c.byCategory[p.CategoryID] = append(c.byCategory[p.CategoryID], i)
		c.byID[p.ID] = i
	}
}

// Normalize flattens the nested wire shape into a catalog. A product without
// a category id inherits the enclosing category's.
func Normalize(raw []RawCategory) *Catalog {
	categories := make([]Category, 0, len(raw))
	var products []Product

	for _, rc := range raw {
		categories = append(categories, Category{
			ID:       rc.ID,
			Name:     rc.Name,
			Slug:     Slug(rc.Name),
			ImageURL: rc.ImageURL,
		})

		for _, p := range rc.Products {
			if p.CategoryID == "" {
				p.CategoryID = rc.ID
			}
			products = append(products, p)
		}
	}

	return NewCatalog(categories, products)
}

// IsEmpty reports whether the catalog has no categories and no products
func (c *Catalog) IsEmpty() bool {
	return len(c.Categories) == 0 && len(c.Products) == 0
}

// ProductsInCategory returns the products of a category, looked up by id or slug
func (c *Catalog) ProductsInCategory(idOrSlug string) []Product {
	id := idOrSlug
	if mapped, ok := c.bySlug[idOrSlug]; ok {
		id = mapped
	}

	indexes := c.byCategory[id]
	products := make([]Product, len(indexes))
	for i, idx := range indexes {
		products[i] = c.Products[idx]
	}
	return products
}

// Product looks up a product by id
func (c *Catalog) Product(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.Products[idx], true
}

// Slug lowercases the name and replaces spaces with dashes
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func firstOf(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
