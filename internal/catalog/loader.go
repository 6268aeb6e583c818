package catalog

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
)

// Data is a complete catalog: products plus the facet reference lists.
type Data struct {
	Products   []Product  `yaml:"products"`
	Categories []Category `yaml:"categories"`
	Brands     []Brand    `yaml:"brands"`
}

// SeedData returns the built-in catalog.
func SeedData() Data {
	return Data{
		Products:   Seed(),
		Categories: SeedCategories(),
		Brands:     SeedBrands(),
	}
}

// LoadFile reads a YAML catalog from disk. Facet lists omitted from the file fall
// back to the built-in categories and brands.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog document.
func Parse(raw []byte) (Data, error) {
	var data Data
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&data); err != nil {
		return Data{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode catalog yaml")
	}
	if len(data.Categories) == 0 {
		data.Categories = SeedCategories()
	}
	if len(data.Brands) == 0 {
		data.Brands = SeedBrands()
	}
	if err := data.Validate(); err != nil {
		return Data{}, err
	}
	return data, nil
}

// Validate checks every product and that ids and facet references line up.
func (d Data) Validate() error {
	if len(d.Products) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "catalog has no products")
	}

	categories := make(map[string]struct{}, len(d.Categories))
	for _, c := range d.Categories {
		categories[c.ID] = struct{}{}
	}
	brands := make(map[string]struct{}, len(d.Brands))
	for _, b := range d.Brands {
		brands[b.ID] = struct{}{}
	}

	var errs error
	seen := make(map[string]struct{}, len(d.Products))
	for _, p := range d.Products {
		if err := p.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate product id %q", p.ID))
		}
		seen[p.ID] = struct{}{}
		if _, ok := categories[p.Category]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("product %q references unknown category %q", p.ID, p.Category))
		}
		if _, ok := brands[p.Brand]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("product %q references unknown brand %q", p.ID, p.Brand))
		}
	}
	if errs == nil {
		return nil
	}

	problems := make([]string, 0)
	for _, e := range multierr.Errors(errs) {
		problems = append(problems, e.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid catalog").WithDetails(map[string]any{
		"problems": problems,
	})
}
