package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadFile(t *testing.T) {
	t.Parallel()

	cfg := DefaultGeneratorConfig()
	cfg.Count = 40
	bars := Generate(cfg)

	for _, name := range []string{"bars.csv", "bars.parquet"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveFile(ctx, path, bars))

			got, err := LoadFile(ctx, path)
			require.NoError(t, err)
			require.Len(t, got, len(bars))
			for i := range bars {
				assert.True(t, bars[i].Time.Equal(got[i].Time), "row %d", i)
				assert.Equal(t, bars[i].Close, got[i].Close, "row %d", i)
				assert.Equal(t, bars[i].Volume, got[i].Volume, "row %d", i)
			}
		})
	}
}

func TestLoadFileUnsupported(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(context.Background(), "bars.xlsx")
	assert.ErrorContains(t, err, "unsupported")

	err = SaveFile(context.Background(), "bars.json", nil)
	assert.ErrorContains(t, err, "unsupported")
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
