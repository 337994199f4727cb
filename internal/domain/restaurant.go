package domain

// Restaurant is static reference data, immutable at runtime. Loaded once from
// the catalog file at process start.
type Restaurant struct {
	ID              string     `yaml:"id" json:"id"`
	Name            string     `yaml:"name" json:"name"`
	DiscountPercent int        `yaml:"discount_percent" json:"discount_percent"`
	Locations       []Location `yaml:"locations,omitempty" json:"locations,omitempty"`
}

// Location is a sub-location of a restaurant (e.g. Overtime Bar - Sudbury).
type Location struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// HasLocations reports whether registrations for this restaurant must carry a
// location id.
func (r *Restaurant) HasLocations() bool {
	return len(r.Locations) > 0
}

// Location returns the sub-location with the given id, or nil.
func (r *Restaurant) Location(locationID string) *Location {
	for i := range r.Locations {
		if r.Locations[i].ID == locationID {
			return &r.Locations[i]
		}
	}
	return nil
}
