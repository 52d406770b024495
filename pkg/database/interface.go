package database

import (
	"fmt"

	"shift-planner-backend/pkg/models"
)

// Store is the document-store boundary of the scheduling core. Each method
// acts on a single document; there are no multi-document transactions, so
// workflows above this layer are written as idempotent sagas.
//
// Missing documents yield models.ErrNotFound; duplicate creates yield
// models.ErrConflict.
type Store interface {
	// Users/{userID}
	CreateUser(u *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(u *models.User) error

	// Organizations/{orgID}
	CreateOrganization(org *models.Organization) error
	GetOrganization(orgID string) (*models.Organization, error)
	UpdateOrganization(org *models.Organization) error
	DeleteOrganization(orgID string) error
	ListUserOrganizations(userID string) ([]models.Organization, error)

	// Organizations/{orgID}/Employees/{userID}
	CreateEmployee(e *models.Employee) error
	GetEmployee(orgID, userID string) (*models.Employee, error)
	UpdateEmployee(e *models.Employee) error
	DeleteEmployee(orgID, userID string) error
	ListEmployees(orgID string) ([]models.Employee, error)

	// Organizations/{orgID}/PendingEmployees/{userID}
	CreatePendingEmployee(p *models.PendingEmployee) error
	GetPendingEmployee(orgID, userID string) (*models.PendingEmployee, error)
	DeletePendingEmployee(orgID, userID string) error
	ListPendingEmployees(orgID string) ([]models.PendingEmployee, error)

	// Organizations/{orgID}/weekSchedules/{orgID}_{weekStart}
	// CreateWeekSchedule with overwrite=false rejects an existing document
	// with models.ErrConflict and leaves it untouched.
	CreateWeekSchedule(s *models.WeekSchedule, overwrite bool) error
	GetWeekSchedule(orgID, scheduleID string) (*models.WeekSchedule, error)
	UpdateWeekSchedule(s *models.WeekSchedule) error
	DeleteWeekSchedule(orgID, scheduleID string) error
	ListWeekSchedules(orgID string) ([]models.WeekSchedule, error)

	// Availability, per user across organizations
	SaveAvailability(a *models.WeekAvailability) error
	GetAvailability(userID string) (*models.WeekAvailability, error)

	HealthCheck() error
	Close() error
}

// Config selects and configures a Store implementation.
type Config struct {
	PostgresDSN string
	DataDir     string
	Debug       bool
}

// New picks PostgreSQL when a DSN is configured, otherwise the local
// JSON-file store.
func New(cfg Config) (Store, error) {
	if cfg.PostgresDSN != "" {
		return NewPostgresStore(cfg.PostgresDSN)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("no database configured: set POSTGRES_DSN or DATA_DIR")
	}
	return NewLocalStore(cfg.DataDir)
}
