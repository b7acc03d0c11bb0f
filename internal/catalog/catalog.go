package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultData []byte

var (
	ErrInvalidCatalog  = errors.New("invalid catalog")
	ErrProductNotFound = errors.New("product not found")
)

type Occasion struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Name        string `yaml:"name" json:"name" validate:"required"`
	Description string `yaml:"description" json:"description"`
}

type Vibe struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Name        string `yaml:"name" json:"name" validate:"required"`
	Description string `yaml:"description" json:"description"`
}

type Packaging struct {
	ID          string          `yaml:"id" json:"id" validate:"required"`
	Name        string          `yaml:"name" json:"name" validate:"required"`
	Description string          `yaml:"description" json:"description"`
	Price       decimal.Decimal `yaml:"price" json:"price" validate:"gte=0"`
}

type Content struct {
	ID          string          `yaml:"id" json:"id" validate:"required"`
	Name        string          `yaml:"name" json:"name" validate:"required"`
	Description string          `yaml:"description" json:"description"`
	Category    string          `yaml:"category" json:"category" validate:"required"`
	Price       decimal.Decimal `yaml:"price" json:"price" validate:"gte=0"`
}

// Product is a prebuilt hamper. Price is the display string shown on the
// storefront ("₹3,500"); Amount parses it.
type Product struct {
	ID           string   `yaml:"id" json:"id" validate:"required"`
	Name         string   `yaml:"name" json:"name" validate:"required"`
	Description  string   `yaml:"description" json:"description"`
	Price        string   `yaml:"price" json:"price" validate:"required"`
	Category     string   `yaml:"category" json:"category" validate:"required"`
	Occasions    []string `yaml:"occasions" json:"occasions"`
	Features     []string `yaml:"features" json:"features"`
	Contents     []string `yaml:"contents" json:"contents"`
	Packaging    string   `yaml:"packaging" json:"packaging"`
	DeliveryInfo string   `yaml:"delivery_info" json:"delivery_info"`
}

// Amount returns the numeric price of the product.
func (p Product) Amount() (decimal.Decimal, error) {
	return ParsePrice(p.Price)
}

// Catalog holds the read-only reference tables.
type Catalog struct {
	Occasions []Occasion  `yaml:"occasions" validate:"required,min=1,unique=ID,dive"`
	Vibes     []Vibe      `yaml:"vibes" validate:"required,min=1,unique=ID,dive"`
	Packaging []Packaging `yaml:"packaging" validate:"required,min=1,unique=ID,dive"`
	Contents  []Content   `yaml:"contents" validate:"required,min=1,unique=ID,dive"`
	Products  []Product   `yaml:"products" validate:"omitempty,unique=ID,dive"`
}

// ContentGroup is one category of hamper contents.
type ContentGroup struct {
	Category string
	Items    []Content
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Default returns the built-in storefront catalog.
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes and validates a YAML catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	for _, p := range c.Products {
		if _, err := p.Amount(); err != nil {
			return nil, fmt.Errorf("%w: product %s: %v", ErrInvalidCatalog, p.ID, err)
		}
	}
	return &c, nil
}

func (c *Catalog) Occasion(id string) (Occasion, bool) {
	for _, o := range c.Occasions {
		if o.ID == id {
			return o, true
		}
	}
	return Occasion{}, false
}

func (c *Catalog) Vibe(id string) (Vibe, bool) {
	for _, v := range c.Vibes {
		if v.ID == id {
			return v, true
		}
	}
	return Vibe{}, false
}

func (c *Catalog) PackagingOption(id string) (Packaging, bool) {
	for _, p := range c.Packaging {
		if p.ID == id {
			return p, true
		}
	}
	return Packaging{}, false
}

func (c *Catalog) Content(id string) (Content, bool) {
	for _, item := range c.Contents {
		if item.ID == id {
			return item, true
		}
	}
	return Content{}, false
}

func (c *Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ContentsByCategory groups contents in the order categories first appear.
func (c *Catalog) ContentsByCategory() []ContentGroup {
	var groups []ContentGroup
	index := make(map[string]int)
	for _, item := range c.Contents {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, ContentGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
