package fixtures

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/stockseed/internal/tables"
	"github.com/Rana718/stockseed/internal/types"
	"gopkg.in/yaml.v3"
)

var yamlExtensions = []string{".yaml", ".yml"}

// Resolve returns the fixture path for t inside dir. The JSON file wins;
// YAML variants are used only when no JSON file exists. When nothing is
// found the JSON path is returned so the read error names it.
func Resolve(dir string, t tables.Table) string {
	jsonPath := filepath.Join(dir, t.FixtureFile())
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath
	}
	for _, ext := range yamlExtensions {
		p := filepath.Join(dir, t.Key()+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return jsonPath
}

// Load reads the whole fixture file at path and decodes it into rows for t.
// The file must hold a single array. Keys that are not columns of t are
// rejected, and every column except rating and changePercentage must be
// present and non-null.
func Load(t tables.Table, path string) ([]types.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(t, data, isYAML(path))
}

// Decode parses a fixture document for t.
func Decode(t tables.Table, data []byte, asYAML bool) ([]types.Row, error) {
	switch t {
	case tables.Users:
		return decode[types.User](t, data, asYAML)
	case tables.Products:
		return decode[types.Product](t, data, asYAML)
	case tables.ExpenseSummary:
		return decode[types.ExpenseSummary](t, data, asYAML)
	case tables.SalesSummary:
		return decode[types.SalesSummary](t, data, asYAML)
	case tables.PurchaseSummary:
		return decode[types.PurchaseSummary](t, data, asYAML)
	case tables.Expenses:
		return decode[types.Expense](t, data, asYAML)
	case tables.Sales:
		return decode[types.Sale](t, data, asYAML)
	case tables.Purchases:
		return decode[types.Purchase](t, data, asYAML)
	case tables.ExpenseByCategory:
		return decode[types.ExpenseByCategory](t, data, asYAML)
	}
	return nil, fmt.Errorf("no fixture decoder for table %d", int(t))
}

func decode[T types.Row](t tables.Table, data []byte, asYAML bool) ([]types.Row, error) {
	format, unmarshal := "json", decodeJSON
	if asYAML {
		format, unmarshal = "yaml", decodeYAML
	}

	var present []map[string]interface{}
	if err := unmarshal(data, &present, false); err != nil {
		return nil, fmt.Errorf("invalid %s fixture: %w", format, err)
	}
	if present == nil {
		return nil, fmt.Errorf("invalid %s fixture: top-level value must be an array", format)
	}
	required := types.Required(t)
	for i, fields := range present {
		for _, key := range required {
			if fields[key] == nil {
				return nil, fmt.Errorf("invalid %s fixture: row %d is missing %q", format, i, key)
			}
		}
	}

	var records []T
	if err := unmarshal(data, &records, true); err != nil {
		return nil, fmt.Errorf("invalid %s fixture: %w", format, err)
	}

	rows := make([]types.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, r)
	}
	return rows, nil
}

// decodeJSON reads exactly one JSON value from data.
func decodeJSON(data []byte, v interface{}, strict bool) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return errors.New("unexpected data after the top-level array")
	}
	return nil
}

// decodeYAML reads exactly one YAML document from data.
func decodeYAML(data []byte, v interface{}, strict bool) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return errors.New("unexpected document after the top-level sequence")
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range yamlExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
