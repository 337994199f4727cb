package domain

import "time"

type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

// Employee is an approved member of a restaurant's loyalty program. Created
// only by promoting a RegistrationRequest; mutated only by status transitions.
type Employee struct {
	ID           string         `firestore:"-" json:"id"`
	Email        string         `firestore:"email" json:"email"`
	FirstName    string         `firestore:"firstName" json:"first_name"`
	LastName     string         `firestore:"lastName" json:"last_name"`
	RestaurantID string         `firestore:"restaurantId" json:"restaurant_id"`
	LocationID   string         `firestore:"locationId,omitempty" json:"location_id,omitempty"`
	Status       EmployeeStatus `firestore:"status" json:"status"`
	CreatedAt    time.Time      `firestore:"createdAt" json:"created_at"`
	ApprovedAt   *time.Time     `firestore:"approvedAt,omitempty" json:"approved_at,omitempty"`
	TerminatedAt *time.Time     `firestore:"terminatedAt,omitempty" json:"terminated_at,omitempty"`
}

// CanTransition reports whether the employee state machine permits moving to
// the requested status. Re-asserting the current status is allowed (no-op);
// any move into a pending-like state is not.
func (e *Employee) CanTransition(to EmployeeStatus) bool {
	switch to {
	case EmployeeStatusActive, EmployeeStatusTerminated:
		return true
	default:
		return false
	}
}
