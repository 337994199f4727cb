package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// RecordKind tags which logical collection a directory record lives in. The
// email index stores the kind alongside the record id so that login resolves
// a principal with a single lookup instead of scanning every collection.
type RecordKind string

const (
	KindRegistration RecordKind = "registrations"
	KindEmployee     RecordKind = "employees"
	KindManager      RecordKind = "managers"
)

// Principal is the authenticated actor invoking an operation.
type Principal struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Restaurants []string `json:"restaurants,omitempty"` // manager scope; empty for admin and employee
}

// CanActOn reports whether the principal may mutate records belonging to the
// given restaurant. Admins bypass restaurant scoping entirely.
func (p *Principal) CanActOn(restaurantID string) bool {
	if p.Role == RoleAdmin {
		return true
	}
	if p.Role != RoleManager {
		return false
	}
	for _, r := range p.Restaurants {
		if r == restaurantID {
			return true
		}
	}
	return false
}
