// Package directory defines the identity directory collaborator: the durable
// store of registration, employee, and manager records. Implementations must
// provide atomic single-document create/update/delete and read-after-write
// consistency for the caller's own writes.
package directory

import (
	"context"
	"time"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

// EmailEntry is the email-keyed index record that maps an email to the one
// live record it identifies, tagged with the record's kind. Maintained
// transactionally by every create/promote/delete so that the identity
// uniqueness invariant holds across all three collections.
type EmailEntry struct {
	Email    string            `firestore:"email" json:"email"`
	Kind     domain.RecordKind `firestore:"kind" json:"kind"`
	RecordID string            `firestore:"recordId" json:"record_id"`
}

// EmailIndex resolves an email to its live directory record in one lookup.
type EmailIndex interface {
	// Lookup returns the index entry for an email, or domain.ErrNotFound.
	Lookup(ctx context.Context, email string) (*EmailEntry, error)
}

type RegistrationRepository interface {
	// Create stores a new pending registration and claims its email in the
	// index. Returns domain.ErrDuplicateEmail if the email is already live.
	Create(ctx context.Context, req *domain.RegistrationRequest) error
	GetByID(ctx context.Context, id string) (*domain.RegistrationRequest, error)
	// ListByRestaurants returns pending registrations for the given
	// restaurants ordered by creation time ascending.
	ListByRestaurants(ctx context.Context, restaurantIDs []string) ([]domain.RegistrationRequest, error)
	// Promote atomically creates the employee record, deletes the pending
	// request, and repoints the email index entry. Returns domain.ErrNotFound
	// if the request no longer exists (consumed by a concurrent approve or
	// reject).
	Promote(ctx context.Context, requestID string, emp *domain.Employee) error
	// Delete removes a pending registration and releases its email. Returns
	// domain.ErrNotFound if the request no longer exists.
	Delete(ctx context.Context, id string) error
	// DeleteOlderThan removes pending registrations created before the cutoff
	// and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
}

type ManagerRepository interface {
	// Create stores a new manager and claims its email in the index. Returns
	// domain.ErrDuplicateEmail if the email is already live.
	Create(ctx context.Context, mgr *domain.Manager) error
	GetByID(ctx context.Context, id string) (*domain.Manager, error)
	List(ctx context.Context) ([]domain.Manager, error)
	Update(ctx context.Context, mgr *domain.Manager) error
	// Delete removes a manager and releases its email.
	Delete(ctx context.Context, id string) error
}

type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
	// ListRecent returns the newest entries first, at most limit of them.
	ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
	// DeleteOlderThan prunes entries created before the cutoff and returns
	// how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) error
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]domain.Visit, error)
}

// Store bundles every repository of one directory backend.
type Store struct {
	Index         EmailIndex
	Registrations RegistrationRepository
	Employees     EmployeeRepository
	Managers      ManagerRepository
	Activity      ActivityRepository
	Visits        VisitRepository
}
