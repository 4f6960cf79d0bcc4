package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rana718/stockseed/internal/tables"
	"github.com/Rana718/stockseed/internal/types"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Source reads rows back out of the store. *database.Adapter satisfies it.
type Source interface {
	ScanAll(ctx context.Context, table string, columns []string, orderBy string, dest func() []interface{}) error
}

// PerformExport writes the rows of every table into dir as fixture files
// (<modelKey>.json or <modelKey>.yaml), ordered by primary key. The
// directory can be used as a fixtures directory afterwards. It returns the
// number of rows written per table.
func PerformExport(ctx context.Context, src Source, dir, format string) (map[tables.Table]int, error) {
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	counts := make(map[tables.Table]int, len(tables.LoadOrder))
	for _, t := range tables.LoadOrder {
		records, err := readTable(ctx, src, t)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", t.Name(), err)
		}

		path := filepath.Join(dir, t.Key()+"."+format)
		if err := writeFile(path, records, format); err != nil {
			return nil, err
		}
		counts[t] = len(records)
		color.Green("✅ Exported %s (%d rows)", t, len(records))
	}

	return counts, nil
}

func readTable(ctx context.Context, src Source, t tables.Table) ([]types.Record, error) {
	records := []types.Record{}
	err := src.ScanAll(ctx, t.Name(), types.Columns(t), t.PrimaryKey(), func() []interface{} {
		rec := types.New(t)
		records = append(records, rec)
		return rec.Fields()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func writeFile(path string, records []types.Record, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(file)
		encoder.SetIndent(2)
		if err := encoder.Encode(records); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
	default:
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(records); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
	}

	return file.Close()
}
