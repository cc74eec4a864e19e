package currency

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RatesFile is the YAML layout accepted by LoadTable:
//
//	rates:
//	  - from: GBP
//	    to: USD
//	    rate: "1.414"
type RatesFile struct {
	Rates []RateEntry `yaml:"rates"`
}

// RateEntry is a single directed rate. Rate is a decimal string so no
// precision is lost to float parsing.
type RateEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Rate string `yaml:"rate"`
}

// LoadTable reads a rates file from disk.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates file: %w", err)
	}
	return ParseTable(data)
}

// ParseTable builds a Table from YAML.
func ParseTable(data []byte) (*Table, error) {
	var file RatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rates file: %w", err)
	}
	if len(file.Rates) == 0 {
		return nil, fmt.Errorf("parsing rates file: no rates defined")
	}

	pairs := make([]Pair, 0, len(file.Rates))
	for i, entry := range file.Rates {
		from, err := ParseCode(entry.From)
		if err != nil {
			return nil, fmt.Errorf("rates[%d].from: %w", i, err)
		}
		to, err := ParseCode(entry.To)
		if err != nil {
			return nil, fmt.Errorf("rates[%d].to: %w", i, err)
		}
		rate, err := decimal.NewFromString(entry.Rate)
		if err != nil {
			return nil, fmt.Errorf("rates[%d].rate: %w", i, err)
		}
		pairs = append(pairs, Pair{From: from, To: to, Rate: rate})
	}
	return NewTable(pairs)
}
