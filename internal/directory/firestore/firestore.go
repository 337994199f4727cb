// Package firestore implements the identity directory on Cloud Firestore.
// Email uniqueness across collections is enforced through a dedicated
// directoryIndex collection keyed by normalized email; every create, promote,
// and delete touches the index inside the same transaction as the record.
package firestore

import (
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
)

const (
	collRegistrations = "pendingRegistrations"
	collEmployees     = "employees"
	collManagers      = "managers"
	collIndex         = "directoryIndex"
	collActivity      = "activityLogs"
	collVisits        = "visits"
)

// NewStore builds a directory store backed by the given Firestore client.
func NewStore(client *firestore.Client) *directory.Store {
	return &directory.Store{
		Index:         &emailIndex{client: client},
		Registrations: &registrationRepository{client: client},
		Employees:     &employeeRepository{client: client},
		Managers:      &managerRepository{client: client},
		Activity:      &activityRepository{client: client},
		Visits:        &visitRepository{client: client},
	}
}

// indexKey normalizes an email into the directoryIndex document id.
func indexKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isNotFound reports whether a Firestore error means the document is absent.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
