package service

import (
	"fmt"

	"fincalc/domain"
)

// Calculator is a type-erased calculator. NewInput returns a pointer to a
// zero input value suitable for decoding; Run accepts that pointer (or the
// value itself) and returns a pointer to the result.
type Calculator interface {
	Info() domain.CalculatorInfo
	NewInput() any
	NewResult() any
	Run(input any) (any, error)
}

type definition[I, R any] struct {
	info domain.CalculatorInfo
	fn   func(I) (R, error)
}

// Define adapts a typed calculation function to the Calculator interface.
func Define[I, R any](info domain.CalculatorInfo, fn func(I) (R, error)) Calculator {
	return definition[I, R]{info: info, fn: fn}
}

func (d definition[I, R]) Info() domain.CalculatorInfo { return d.info }

func (d definition[I, R]) NewInput() any { return new(I) }

func (d definition[I, R]) NewResult() any { return new(R) }

func (d definition[I, R]) Run(input any) (any, error) {
	var in I
	switch v := input.(type) {
	case *I:
		if v != nil {
			in = *v
		}
	case I:
		in = v
	default:
		return nil, fmt.Errorf("%s: unexpected input type %T", d.info.Slug, input)
	}

	result, err := d.fn(in)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Catalog is the ordered set of calculators served by the site.
type Catalog struct {
	calculators []Calculator
	bySlug      map[string]Calculator
}

// NewCatalog panics on a duplicate or empty slug.
func NewCatalog(calculators ...Calculator) *Catalog {
	c := &Catalog{bySlug: make(map[string]Calculator, len(calculators))}
	for _, calc := range calculators {
		slug := calc.Info().Slug
		if slug == "" {
			panic("service: calculator with empty slug")
		}
		if _, ok := c.bySlug[slug]; ok {
			panic(fmt.Sprintf("service: duplicate calculator %q", slug))
		}
		c.bySlug[slug] = calc
		c.calculators = append(c.calculators, calc)
	}
	return c
}

func (c *Catalog) Get(slug string) (Calculator, error) {
	calc, ok := c.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCalculator, slug)
	}
	return calc, nil
}

func (c *Catalog) All() []Calculator {
	return c.calculators
}

// Infos lists the calculator descriptions in catalog order.
func (c *Catalog) Infos() []domain.CalculatorInfo {
	infos := make([]domain.CalculatorInfo, 0, len(c.calculators))
	for _, calc := range c.calculators {
		infos = append(infos, calc.Info())
	}
	return infos
}

// Slugs lists the calculator slugs in catalog order.
func (c *Catalog) Slugs() []string {
	slugs := make([]string, 0, len(c.calculators))
	for _, calc := range c.calculators {
		slugs = append(slugs, calc.Info().Slug)
	}
	return slugs
}
