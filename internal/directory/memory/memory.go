// Package memory implements the identity directory in process memory. It is
// selected by config for local development and used directly by tests; it
// honors the same transactional semantics as the Firestore backend (email
// index maintained atomically with every record mutation).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

// Directory is a single-process, mutex-guarded directory backend.
type Directory struct {
	mu            sync.Mutex
	registrations map[string]domain.RegistrationRequest
	employees     map[string]domain.Employee
	managers      map[string]domain.Manager
	index         map[string]directory.EmailEntry
	activity      map[string]domain.ActivityEntry
	visits        map[string]domain.Visit
}

// NewDirectory creates an empty in-memory directory.
func NewDirectory() *Directory {
	return &Directory{
		registrations: make(map[string]domain.RegistrationRequest),
		employees:     make(map[string]domain.Employee),
		managers:      make(map[string]domain.Manager),
		index:         make(map[string]directory.EmailEntry),
		activity:      make(map[string]domain.ActivityEntry),
		visits:        make(map[string]domain.Visit),
	}
}

// NewStore wraps the directory in the repository bundle consumed by services.
func NewStore(d *Directory) *directory.Store {
	return &directory.Store{
		Index:         (*emailIndex)(d),
		Registrations: (*registrationRepository)(d),
		Employees:     (*employeeRepository)(d),
		Managers:      (*managerRepository)(d),
		Activity:      (*activityRepository)(d),
		Visits:        (*visitRepository)(d),
	}
}

func indexKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type emailIndex Directory

func (i *emailIndex) Lookup(ctx context.Context, email string) (*directory.EmailEntry, error) {
	d := (*Directory)(i)
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.index[indexKey(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := entry
	return &out, nil
}

type registrationRepository Directory

func (r *registrationRepository) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	key := indexKey(req.Email)
	if _, taken := d.index[key]; taken {
		return domain.ErrDuplicateEmail
	}
	d.registrations[req.ID] = *req
	d.index[key] = directory.EmailEntry{Email: key, Kind: domain.KindRegistration, RecordID: req.ID}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.RegistrationRequest, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	req, ok := d.registrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &req, nil
}

func (r *registrationRepository) ListByRestaurants(ctx context.Context, restaurantIDs []string) ([]domain.RegistrationRequest, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	wanted := make(map[string]bool, len(restaurantIDs))
	for _, id := range restaurantIDs {
		wanted[id] = true
	}

	var reqs []domain.RegistrationRequest
	for _, req := range d.registrations {
		if wanted[req.RestaurantID] {
			reqs = append(reqs, req)
		}
	}
	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.Before(reqs[j].CreatedAt)
	})
	return reqs, nil
}

func (r *registrationRepository) Promote(ctx context.Context, requestID string, emp *domain.Employee) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.registrations[requestID]; !ok {
		return domain.ErrNotFound
	}
	key := indexKey(emp.Email)
	d.employees[emp.ID] = *emp
	d.index[key] = directory.EmailEntry{Email: key, Kind: domain.KindEmployee, RecordID: emp.ID}
	delete(d.registrations, requestID)
	return nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	req, ok := d.registrations[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(d.index, indexKey(req.Email))
	delete(d.registrations, id)
	return nil
}

func (r *registrationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	deleted := 0
	for id, req := range d.registrations {
		if req.CreatedAt.Before(cutoff) {
			delete(d.index, indexKey(req.Email))
			delete(d.registrations, id)
			deleted++
		}
	}
	return deleted, nil
}

type employeeRepository Directory

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	emp, ok := d.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &emp, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, emp := range d.employees {
		if indexKey(emp.Email) == indexKey(email) {
			out := emp
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *employeeRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Employee, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	var emps []domain.Employee
	for _, emp := range d.employees {
		if emp.RestaurantID == restaurantID {
			emps = append(emps, emp)
		}
	}
	sort.Slice(emps, func(i, j int) bool {
		return emps[i].CreatedAt.Before(emps[j].CreatedAt)
	})
	return emps, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.employees[emp.ID]; !ok {
		return domain.ErrNotFound
	}
	d.employees[emp.ID] = *emp
	return nil
}

type managerRepository Directory

func (r *managerRepository) Create(ctx context.Context, mgr *domain.Manager) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	key := indexKey(mgr.Email)
	if _, taken := d.index[key]; taken {
		return domain.ErrDuplicateEmail
	}
	d.managers[mgr.ID] = *mgr
	d.index[key] = directory.EmailEntry{Email: key, Kind: domain.KindManager, RecordID: mgr.ID}
	return nil
}

func (r *managerRepository) GetByID(ctx context.Context, id string) (*domain.Manager, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	mgr, ok := d.managers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &mgr, nil
}

func (r *managerRepository) List(ctx context.Context) ([]domain.Manager, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	var mgrs []domain.Manager
	for _, mgr := range d.managers {
		mgrs = append(mgrs, mgr)
	}
	sort.Slice(mgrs, func(i, j int) bool {
		return mgrs[i].CreatedAt.Before(mgrs[j].CreatedAt)
	})
	return mgrs, nil
}

func (r *managerRepository) Update(ctx context.Context, mgr *domain.Manager) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.managers[mgr.ID]; !ok {
		return domain.ErrNotFound
	}
	d.managers[mgr.ID] = *mgr
	return nil
}

func (r *managerRepository) Delete(ctx context.Context, id string) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	mgr, ok := d.managers[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(d.index, indexKey(mgr.Email))
	delete(d.managers, id)
	return nil
}

type activityRepository Directory

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	d.activity[entry.ID] = *entry
	return nil
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	var entries []domain.ActivityEntry
	for _, entry := range d.activity {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *activityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	deleted := 0
	for id, entry := range d.activity {
		if entry.CreatedAt.Before(cutoff) {
			delete(d.activity, id)
			deleted++
		}
	}
	return deleted, nil
}

type visitRepository Directory

func (r *visitRepository) Create(ctx context.Context, visit *domain.Visit) error {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	d.visits[visit.ID] = *visit
	return nil
}

func (r *visitRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]domain.Visit, error) {
	d := (*Directory)(r)
	d.mu.Lock()
	defer d.mu.Unlock()

	var visits []domain.Visit
	for _, visit := range d.visits {
		if visit.EmployeeID == employeeID {
			visits = append(visits, visit)
		}
	}
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].VisitedAt.After(visits[j].VisitedAt)
	})
	if limit > 0 && len(visits) > limit {
		visits = visits[:limit]
	}
	return visits, nil
}
