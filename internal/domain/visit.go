package domain

import "time"

// Visit records a single use of the loyalty benefit by an employee at a
// restaurant (optionally a specific location).
type Visit struct {
	ID           string    `firestore:"-" json:"id"`
	EmployeeID   string    `firestore:"employeeId" json:"employee_id"`
	RestaurantID string    `firestore:"restaurantId" json:"restaurant_id"`
	LocationID   string    `firestore:"locationId,omitempty" json:"location_id,omitempty"`
	VisitedAt    time.Time `firestore:"visitedAt" json:"visited_at"`
}
