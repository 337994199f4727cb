package domain

import "time"

type ActivityType string

const (
	ActivityRegistrationSubmitted ActivityType = "REGISTRATION_SUBMITTED"
	ActivityRegistrationApproved  ActivityType = "REGISTRATION_APPROVED"
	ActivityRegistrationRejected  ActivityType = "REGISTRATION_REJECTED"
	ActivityEmployeeStatusChanged ActivityType = "EMPLOYEE_STATUS_CHANGED"
	ActivityManagerCreated        ActivityType = "MANAGER_CREATED"
	ActivityManagerUpdated        ActivityType = "MANAGER_UPDATED"
	ActivityManagerDeleted        ActivityType = "MANAGER_DELETED"
)

// ActivityEntry is an append-only audit record of an engine mutation.
// Entries older than the retention window are pruned by the nightly job.
type ActivityEntry struct {
	ID           string       `firestore:"-" json:"id"`
	Type         ActivityType `firestore:"type" json:"type"`
	ActorID      string       `firestore:"actorId,omitempty" json:"actor_id,omitempty"`
	SubjectID    string       `firestore:"subjectId" json:"subject_id"`
	SubjectEmail string       `firestore:"subjectEmail,omitempty" json:"subject_email,omitempty"`
	RestaurantID string       `firestore:"restaurantId,omitempty" json:"restaurant_id,omitempty"`
	Detail       string       `firestore:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt    time.Time    `firestore:"createdAt" json:"created_at"`
}
