package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type SeedBook struct {
	ISBN    string          `yaml:"isbn"`
	Author  string          `yaml:"author"`
	Title   string          `yaml:"title"`
	Price   decimal.Decimal `yaml:"price"`
	Subject string          `yaml:"subject"`
}

type CatalogSeed struct {
	Books []SeedBook `yaml:"books"`
}

// LoadCatalogSeed 讀取書目初始資料, 例如 docs/books.yaml
func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	seed := &CatalogSeed{}
	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, err
	}

	for i, b := range seed.Books {
		if b.ISBN == "" || b.Title == "" || b.Subject == "" {
			return nil, fmt.Errorf("book #%d: isbn, title and subject are required", i)
		}
		if b.Price.IsNegative() {
			return nil, fmt.Errorf("book %s: price must not be negative", b.ISBN)
		}
	}
	return seed, nil
}
