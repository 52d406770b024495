package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"shift-planner-backend/pkg/models"

	"github.com/google/uuid"
)

// LocalStore is a JSON-file document store used for development and tests.
// One file per collection; per-file read-modify-write under a single lock,
// which matches the single-logical-writer model of the core.
type LocalStore struct {
	mu      sync.Mutex
	dataDir string
}

func NewLocalStore(dataDir string) (*LocalStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &LocalStore{dataDir: dataDir}, nil
}

// ==== users ====

func (s *LocalStore) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.ID == u.ID || existing.Email == u.Email {
			return fmt.Errorf("user %s: %w", u.Email, models.ErrConflict)
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	return s.saveJSON(s.path("users.json"), append(users, *u))
}

func (s *LocalStore) GetUserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
}

func (s *LocalStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
}

func (s *LocalStore) UpdateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			u.UpdatedAt = time.Now()
			users[i] = *u
			return s.saveJSON(s.path("users.json"), users)
		}
	}
	return fmt.Errorf("user %s: %w", u.ID, models.ErrNotFound)
}

// ==== organizations ====

func (s *LocalStore) CreateOrganization(org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orgs, err := s.loadOrgs()
	if err != nil {
		return err
	}
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	for _, existing := range orgs {
		if existing.ID == org.ID {
			return fmt.Errorf("organization %s: %w", org.ID, models.ErrConflict)
		}
	}
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	return s.saveJSON(s.path("organizations.json"), append(orgs, *org))
}

func (s *LocalStore) GetOrganization(orgID string) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrgLocked(orgID)
}

func (s *LocalStore) getOrgLocked(orgID string) (*models.Organization, error) {
	orgs, err := s.loadOrgs()
	if err != nil {
		return nil, err
	}
	for i := range orgs {
		if orgs[i].ID == orgID {
			return &orgs[i], nil
		}
	}
	return nil, fmt.Errorf("organization %s: %w", orgID, models.ErrNotFound)
}

func (s *LocalStore) UpdateOrganization(org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orgs, err := s.loadOrgs()
	if err != nil {
		return err
	}
	for i := range orgs {
		if orgs[i].ID == org.ID {
			org.UpdatedAt = time.Now()
			orgs[i] = *org
			return s.saveJSON(s.path("organizations.json"), orgs)
		}
	}
	return fmt.Errorf("organization %s: %w", org.ID, models.ErrNotFound)
}

func (s *LocalStore) DeleteOrganization(orgID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orgs, err := s.loadOrgs()
	if err != nil {
		return err
	}
	kept := orgs[:0]
	found := false
	for _, o := range orgs {
		if o.ID == orgID {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return fmt.Errorf("organization %s: %w", orgID, models.ErrNotFound)
	}
	return s.saveJSON(s.path("organizations.json"), kept)
}

func (s *LocalStore) ListUserOrganizations(userID string) ([]models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orgs, err := s.loadOrgs()
	if err != nil {
		return nil, err
	}
	var result []models.Organization
	for _, o := range orgs {
		employees, err := s.loadEmployees(o.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range employees {
			if e.UserID == userID {
				result = append(result, o)
				break
			}
		}
	}
	return result, nil
}

// ==== employees ====

func (s *LocalStore) CreateEmployee(e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	employees, err := s.loadEmployees(e.OrganizationID)
	if err != nil {
		return err
	}
	for _, existing := range employees {
		if existing.UserID == e.UserID {
			return fmt.Errorf("employee %s: %w", e.UserID, models.ErrConflict)
		}
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	return s.saveJSON(s.employeesPath(e.OrganizationID), append(employees, *e))
}

func (s *LocalStore) GetEmployee(orgID, userID string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	employees, err := s.loadEmployees(orgID)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].UserID == userID {
			return &employees[i], nil
		}
	}
	return nil, fmt.Errorf("employee %s: %w", userID, models.ErrNotFound)
}

func (s *LocalStore) UpdateEmployee(e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	employees, err := s.loadEmployees(e.OrganizationID)
	if err != nil {
		return err
	}
	for i := range employees {
		if employees[i].UserID == e.UserID {
			e.UpdatedAt = time.Now()
			employees[i] = *e
			return s.saveJSON(s.employeesPath(e.OrganizationID), employees)
		}
	}
	return fmt.Errorf("employee %s: %w", e.UserID, models.ErrNotFound)
}

func (s *LocalStore) DeleteEmployee(orgID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	employees, err := s.loadEmployees(orgID)
	if err != nil {
		return err
	}
	kept := employees[:0]
	found := false
	for _, e := range employees {
		if e.UserID == userID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("employee %s: %w", userID, models.ErrNotFound)
	}
	return s.saveJSON(s.employeesPath(orgID), kept)
}

func (s *LocalStore) ListEmployees(orgID string) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadEmployees(orgID)
}

// ==== pending employees ====

func (s *LocalStore) CreatePendingEmployee(p *models.PendingEmployee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, err := s.loadPending(p.OrganizationID)
	if err != nil {
		return err
	}
	for _, existing := range pending {
		if existing.UserID == p.UserID {
			return fmt.Errorf("pending employee %s: %w", p.UserID, models.ErrConflict)
		}
	}
	return s.saveJSON(s.pendingPath(p.OrganizationID), append(pending, *p))
}

func (s *LocalStore) GetPendingEmployee(orgID, userID string) (*models.PendingEmployee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, err := s.loadPending(orgID)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if pending[i].UserID == userID {
			return &pending[i], nil
		}
	}
	return nil, fmt.Errorf("pending employee %s: %w", userID, models.ErrNotFound)
}

func (s *LocalStore) DeletePendingEmployee(orgID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, err := s.loadPending(orgID)
	if err != nil {
		return err
	}
	kept := pending[:0]
	found := false
	for _, p := range pending {
		if p.UserID == userID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("pending employee %s: %w", userID, models.ErrNotFound)
	}
	return s.saveJSON(s.pendingPath(orgID), kept)
}

func (s *LocalStore) ListPendingEmployees(orgID string) ([]models.PendingEmployee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadPending(orgID)
}

// ==== week schedules ====

func (s *LocalStore) CreateWeekSchedule(sched *models.WeekSchedule, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	schedules, err := s.loadSchedules(sched.OrganizationID)
	if err != nil {
		return err
	}
	for i := range schedules {
		if schedules[i].ID == sched.ID {
			if !overwrite {
				return fmt.Errorf("week schedule %s: %w", sched.ID, models.ErrConflict)
			}
			schedules[i] = *sched
			return s.saveJSON(s.schedulesPath(sched.OrganizationID), schedules)
		}
	}
	return s.saveJSON(s.schedulesPath(sched.OrganizationID), append(schedules, *sched))
}

func (s *LocalStore) GetWeekSchedule(orgID, scheduleID string) (*models.WeekSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	schedules, err := s.loadSchedules(orgID)
	if err != nil {
		return nil, err
	}
	for i := range schedules {
		if schedules[i].ID == scheduleID {
			return &schedules[i], nil
		}
	}
	return nil, fmt.Errorf("week schedule %s: %w", scheduleID, models.ErrNotFound)
}

func (s *LocalStore) UpdateWeekSchedule(sched *models.WeekSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	schedules, err := s.loadSchedules(sched.OrganizationID)
	if err != nil {
		return err
	}
	for i := range schedules {
		if schedules[i].ID == sched.ID {
			schedules[i] = *sched
			return s.saveJSON(s.schedulesPath(sched.OrganizationID), schedules)
		}
	}
	return fmt.Errorf("week schedule %s: %w", sched.ID, models.ErrNotFound)
}

func (s *LocalStore) DeleteWeekSchedule(orgID, scheduleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	schedules, err := s.loadSchedules(orgID)
	if err != nil {
		return err
	}
	kept := schedules[:0]
	found := false
	for _, sc := range schedules {
		if sc.ID == scheduleID {
			found = true
			continue
		}
		kept = append(kept, sc)
	}
	if !found {
		return fmt.Errorf("week schedule %s: %w", scheduleID, models.ErrNotFound)
	}
	return s.saveJSON(s.schedulesPath(orgID), kept)
}

func (s *LocalStore) ListWeekSchedules(orgID string) ([]models.WeekSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSchedules(orgID)
}

// ==== availability ====

func (s *LocalStore) SaveAvailability(a *models.WeekAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.WeekAvailability
	if err := s.loadJSON(s.path("availability.json"), &all); err != nil {
		return err
	}
	a.UpdatedAt = time.Now()
	for i := range all {
		if all[i].UserID == a.UserID {
			all[i] = *a
			return s.saveJSON(s.path("availability.json"), all)
		}
	}
	return s.saveJSON(s.path("availability.json"), append(all, *a))
}

func (s *LocalStore) GetAvailability(userID string) (*models.WeekAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.WeekAvailability
	if err := s.loadJSON(s.path("availability.json"), &all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].UserID == userID {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("availability for %s: %w", userID, models.ErrNotFound)
}

func (s *LocalStore) HealthCheck() error {
	if _, err := os.Stat(s.dataDir); err != nil {
		return fmt.Errorf("data directory not accessible: %w", err)
	}
	return nil
}

func (s *LocalStore) Close() error {
	return nil
}

// ==== file helpers ====

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

func (s *LocalStore) employeesPath(orgID string) string {
	return s.path(fmt.Sprintf("employees_%s.json", orgID))
}

func (s *LocalStore) pendingPath(orgID string) string {
	return s.path(fmt.Sprintf("pending_%s.json", orgID))
}

func (s *LocalStore) schedulesPath(orgID string) string {
	return s.path(fmt.Sprintf("schedules_%s.json", orgID))
}

func (s *LocalStore) loadUsers() ([]models.User, error) {
	var users []models.User
	return users, s.loadJSON(s.path("users.json"), &users)
}

func (s *LocalStore) loadOrgs() ([]models.Organization, error) {
	var orgs []models.Organization
	return orgs, s.loadJSON(s.path("organizations.json"), &orgs)
}

func (s *LocalStore) loadEmployees(orgID string) ([]models.Employee, error) {
	var employees []models.Employee
	return employees, s.loadJSON(s.employeesPath(orgID), &employees)
}

func (s *LocalStore) loadPending(orgID string) ([]models.PendingEmployee, error) {
	var pending []models.PendingEmployee
	return pending, s.loadJSON(s.pendingPath(orgID), &pending)
}

func (s *LocalStore) loadSchedules(orgID string) ([]models.WeekSchedule, error) {
	var schedules []models.WeekSchedule
	return schedules, s.loadJSON(s.schedulesPath(orgID), &schedules)
}

func (s *LocalStore) loadJSON(filePath string, v interface{}) error {
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *LocalStore) saveJSON(filePath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}
