package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var defaultFixture []byte

// ErrInvalidFixture is returned when a fixture file fails validation
var ErrInvalidFixture = errors.New("seed: invalid fixture")

// Fixture is the seed data file
type Fixture struct {
	Admin      *Account          `yaml:"admin,omitempty"`
	Staff      []Account         `yaml:"staff,omitempty"`
	Categories []CategoryFixture `yaml:"categories,omitempty"`
	Residents  ResidentFixture   `yaml:"residents,omitempty"`
}

// Account is a login to create
type Account struct {
	Email    string `yaml:"email"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password"`
}

// CategoryFixture is a bill category with its types and periods
type CategoryFixture struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Color       string            `yaml:"color,omitempty"`
	Icon        string            `yaml:"icon,omitempty"`
	BillTypes   []BillTypeFixture `yaml:"bill_types,omitempty"`
	Periods     []PeriodFixture   `yaml:"periods,omitempty"`
	// Issue creates bills for every resident, type and period of the category
	Issue bool `yaml:"issue,omitempty"`
}

// BillTypeFixture is a bill type
type BillTypeFixture struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	BaseAmount  decimal.Decimal `yaml:"base_amount"`
}

// PeriodFixture is a billing period. Dates are YYYY-MM-DD.
type PeriodFixture struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description,omitempty"`
	Start        Date   `yaml:"start"`
	End          Date   `yaml:"end"`
	Due          *Date  `yaml:"due,omitempty"`
	Installments int    `yaml:"installments,omitempty"`
}

// ResidentFixture describes the generated residents
type ResidentFixture struct {
	Count      int    `yaml:"count"`
	RTRW       string `yaml:"rt_rw,omitempty"`
	Kelurahan  string `yaml:"kelurahan,omitempty"`
	Kecamatan  string `yaml:"kecamatan,omitempty"`
	City       string `yaml:"city,omitempty"`
	PostalCode string `yaml:"postal_code,omitempty"`
	// Seed makes the generated residents reproducible; 0 is random
	Seed uint64 `yaml:"seed,omitempty"`
}

// Date is a calendar date in a fixture
type Date struct {
	time.Time
}

// UnmarshalYAML parses YYYY-MM-DD
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: date %q must be YYYY-MM-DD", node.Line, node.Value)
	}
	d.Time = t
	return nil
}

// LoadFixture reads a fixture file; an empty path loads the built-in demo data
func LoadFixture(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture: %w", err)
		}
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates fixture YAML
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the fields the services would reject late
func (f *Fixture) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidFixture}, args...)...))
	}
	if f.Admin != nil && (f.Admin.Email == "" || f.Admin.Password == "") {
		bad("admin needs email and password")
	}
	for i, s := range f.Staff {
		if s.Email == "" || s.Password == "" {
			bad("staff[%d] needs email and password", i)
		}
	}
	for _, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			bad("category without a name")
			continue
		}
		for _, bt := range c.BillTypes {
			if strings.TrimSpace(bt.Name) == "" {
				bad("category %q has a bill type without a name", c.Name)
			}
			if !bt.BaseAmount.IsPositive() {
				bad("bill type %q needs a positive base_amount", bt.Name)
			}
		}
		for _, p := range c.Periods {
			if p.End.Before(p.Start.Time) {
				bad("period %q ends before it starts", p.Name)
			}
		}
	}
	if f.Residents.Count < 0 {
		bad("residents.count cannot be negative")
	}
	return errors.Join(errs...)
}
