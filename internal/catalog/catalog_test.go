package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

func sampleRestaurants() []domain.Restaurant {
	return []domain.Restaurant{
		{ID: "montanas", Name: "Montana's", DiscountPercent: 20},
		{
			ID: "overtime-bar", Name: "Overtime Bar", DiscountPercent: 20,
			Locations: []domain.Location{
				{ID: "overtime-sudbury", Name: "Sudbury"},
				{ID: "overtime-val-caron", Name: "Val Caron"},
			},
		},
		{ID: "happy-life", Name: "Happy Life", DiscountPercent: 10,
			Locations: []domain.Location{{ID: "happy-life-kingsway", Name: "Kingsway"}},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("Valid Catalog", func(t *testing.T) {
		cat, err := New(sampleRestaurants())
		require.NoError(t, err)
		assert.Len(t, cat.Restaurants(), 3)
	})

	t.Run("Duplicate Restaurant ID", func(t *testing.T) {
		_, err := New([]domain.Restaurant{
			{ID: "montanas", Name: "Montana's"},
			{ID: "montanas", Name: "Montana's Again"},
		})
		assert.Error(t, err)
	})

	t.Run("Duplicate Location ID", func(t *testing.T) {
		_, err := New([]domain.Restaurant{
			{ID: "overtime-bar", Name: "Overtime Bar", Locations: []domain.Location{
				{ID: "x", Name: "One"}, {ID: "x", Name: "Two"},
			}},
		})
		assert.Error(t, err)
	})

	t.Run("Missing Name", func(t *testing.T) {
		_, err := New([]domain.Restaurant{{ID: "nameless"}})
		assert.Error(t, err)
	})
}

func TestLookups(t *testing.T) {
	cat, err := New(sampleRestaurants())
	require.NoError(t, err)

	t.Run("ByID", func(t *testing.T) {
		assert.NotNil(t, cat.ByID("montanas"))
		assert.Nil(t, cat.ByID("burger-chain"))
	})

	t.Run("Location", func(t *testing.T) {
		assert.NotNil(t, cat.Location("overtime-bar", "overtime-sudbury"))
		assert.Nil(t, cat.Location("overtime-bar", "overtime-azilda"))
		assert.Nil(t, cat.Location("montanas", "overtime-sudbury"))
	})

	t.Run("FullName", func(t *testing.T) {
		assert.Equal(t, "Overtime Bar - Sudbury", cat.FullName("overtime-bar", "overtime-sudbury"))
		assert.Equal(t, "Montana's", cat.FullName("montanas", ""))
		assert.Equal(t, "Overtime Bar", cat.FullName("overtime-bar", ""))
		assert.Equal(t, "", cat.FullName("burger-chain", ""))
	})

	t.Run("Discount", func(t *testing.T) {
		assert.Equal(t, 20, cat.Discount("montanas"))
		assert.Equal(t, 10, cat.Discount("happy-life"))
		assert.Equal(t, 0, cat.Discount("burger-chain"))
	})
}

func TestLoad(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "restaurants.yaml")
		data := `restaurants:
  - id: montanas
    name: "Montana's"
    discount_percent: 20
  - id: overtime-bar
    name: "Overtime Bar"
    discount_percent: 20
    locations:
      - id: overtime-sudbury
        name: "Sudbury"
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cat, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, cat.Restaurants(), 2)
		assert.Equal(t, 20, cat.Discount("montanas"))
		assert.NotNil(t, cat.Location("overtime-bar", "overtime-sudbury"))
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("restaurants: [not closed"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
