// Package catalog holds the static restaurant/location reference data. The
// catalog is loaded once at process start and never mutated; the engine
// consults it to validate restaurant/location identifiers and to compute the
// discount shown to an employee.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

type Catalog struct {
	restaurants []domain.Restaurant
	byID        map[string]*domain.Restaurant
}

// Load reads the catalog from a YAML file and validates its invariants:
// unique restaurant ids, and unique location ids within each restaurant.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc struct {
		Restaurants []domain.Restaurant `yaml:"restaurants"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(doc.Restaurants)
}

// New builds a catalog from an in-memory restaurant list.
func New(restaurants []domain.Restaurant) (*Catalog, error) {
	c := &Catalog{
		restaurants: restaurants,
		byID:        make(map[string]*domain.Restaurant, len(restaurants)),
	}
	for i := range c.restaurants {
		r := &c.restaurants[i]
		if r.ID == "" || r.Name == "" {
			return nil, fmt.Errorf("restaurant %q missing id or name", r.ID)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate restaurant id: %s", r.ID)
		}
		seen := make(map[string]bool, len(r.Locations))
		for _, loc := range r.Locations {
			if loc.ID == "" || loc.Name == "" {
				return nil, fmt.Errorf("restaurant %s has a location missing id or name", r.ID)
			}
			if seen[loc.ID] {
				return nil, fmt.Errorf("restaurant %s has duplicate location id: %s", r.ID, loc.ID)
			}
			seen[loc.ID] = true
		}
		c.byID[r.ID] = r
	}
	return c, nil
}

// Restaurants returns all restaurants in catalog order.
func (c *Catalog) Restaurants() []domain.Restaurant {
	return c.restaurants
}

// ByID returns the restaurant with the given id, or nil.
func (c *Catalog) ByID(id string) *domain.Restaurant {
	return c.byID[id]
}

// Location returns the given sub-location of a restaurant, or nil if either
// the restaurant or the location is unknown.
func (c *Catalog) Location(restaurantID, locationID string) *domain.Location {
	r := c.byID[restaurantID]
	if r == nil {
		return nil
	}
	return r.Location(locationID)
}

// FullName returns "Restaurant - Location" when a location resolves, the bare
// restaurant name when it does not, or "" for an unknown restaurant.
func (c *Catalog) FullName(restaurantID, locationID string) string {
	r := c.byID[restaurantID]
	if r == nil {
		return ""
	}
	if loc := r.Location(locationID); loc != nil {
		return fmt.Sprintf("%s - %s", r.Name, loc.Name)
	}
	return r.Name
}

// Discount returns the discount percent for a restaurant, or 0 for an
// unknown restaurant.
func (c *Catalog) Discount(restaurantID string) int {
	if r := c.byID[restaurantID]; r != nil {
		return r.DiscountPercent
	}
	return 0
}
