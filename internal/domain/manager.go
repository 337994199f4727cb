package domain

import "time"

type ManagerStatus string

const (
	ManagerStatusActive  ManagerStatus = "active"
	ManagerStatusPending ManagerStatus = "pending"
)

// Manager is an admin-created principal whose authority is scoped to the
// restaurants listed on its record. Admin accounts live in the same
// collection with Role set to admin and no restaurant scoping.
type Manager struct {
	ID          string        `firestore:"-" json:"id"`
	Email       string        `firestore:"email" json:"email"`
	FirstName   string        `firestore:"firstName" json:"first_name"`
	LastName    string        `firestore:"lastName" json:"last_name"`
	Role        Role          `firestore:"role" json:"role"`
	Restaurants []string      `firestore:"restaurants" json:"restaurants"`
	Status      ManagerStatus `firestore:"status" json:"status"`
	CreatedAt   time.Time     `firestore:"createdAt" json:"created_at"`
}

// Oversees reports whether the manager's restaurant scope covers the given
// restaurant.
func (m *Manager) Oversees(restaurantID string) bool {
	for _, r := range m.Restaurants {
		if r == restaurantID {
			return true
		}
	}
	return false
}
