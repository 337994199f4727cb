package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending RegistrationStatus = "pending"
)

// RegistrationRequest is a prospective employee's submission awaiting manager
// review. It is never mutated in place: approval promotes it to an Employee,
// rejection deletes it.
type RegistrationRequest struct {
	ID           string             `firestore:"-" json:"id"`
	Email        string             `firestore:"email" json:"email"`
	FirstName    string             `firestore:"firstName" json:"first_name"`
	LastName     string             `firestore:"lastName" json:"last_name"`
	RestaurantID string             `firestore:"restaurantId" json:"restaurant_id"`
	LocationID   string             `firestore:"locationId,omitempty" json:"location_id,omitempty"`
	Status       RegistrationStatus `firestore:"status" json:"status"`
	CreatedAt    time.Time          `firestore:"createdAt" json:"created_at"`
}
