package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/tradegym/market"
)

// LoadFile loads bars from a .csv or .parquet file.
func LoadFile(ctx context.Context, path string) (market.Bars, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		bars, err := LoadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return bars, nil
	case ".parquet":
		return LoadParquet(ctx, path)
	default:
		return nil, fmt.Errorf("%s: unsupported file type %q", path, ext)
	}
}

// SaveFile writes bars to a .csv or .parquet file.
func SaveFile(ctx context.Context, path string, bars market.Bars) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteCSV(f, bars); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	case ".parquet":
		return WriteParquet(ctx, path, bars)
	default:
		return fmt.Errorf("%s: unsupported file type %q", path, ext)
	}
}
