package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shift-planner-backend/pkg/models"

	"github.com/lib/pq"
)

// PostgresStore is the production Store. Nested document shapes
// (invite links, role sets, day/role/shift maps, availability entries)
// live in JSONB columns so each logical document stays a single row.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// translateErr maps driver errors onto the domain taxonomy.
func translateErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s: %w", what, models.ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func marshalJSONB(v interface{}) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// ==== users ====

func (s *PostgresStore) CreateUser(u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	orgIDs, err := marshalJSONB(u.OrganizationIDs)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO users (id, email, first_name, last_name, organization_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.FirstName, u.LastName, orgIDs, u.CreatedAt, u.UpdatedAt)
	return translateErr(err, "create user")
}

func (s *PostgresStore) GetUserByID(id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, email, first_name, last_name, organization_ids, created_at, updated_at
		FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) GetUserByEmail(email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, email, first_name, last_name, organization_ids, created_at, updated_at
		FROM users WHERE email = $1`, email))
}

func (s *PostgresStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var orgIDs []byte
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &orgIDs, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translateErr(err, "get user")
	}
	if err := json.Unmarshal(orgIDs, &u.OrganizationIDs); err != nil {
		return nil, fmt.Errorf("decode organization_ids: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) UpdateUser(u *models.User) error {
	u.UpdatedAt = time.Now()
	orgIDs, err := marshalJSONB(u.OrganizationIDs)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE users SET email = $2, first_name = $3, last_name = $4, organization_ids = $5, updated_at = $6
		WHERE id = $1`,
		u.ID, u.Email, u.FirstName, u.LastName, orgIDs, u.UpdatedAt)
	if err != nil {
		return translateErr(err, "update user")
	}
	return requireRows(res, "user")
}

// ==== organizations ====

func (s *PostgresStore) CreateOrganization(org *models.Organization) error {
	if org.ID == "" {
		org.ID = newID()
	}
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	roles, err := marshalJSONB(org.Roles)
	if err != nil {
		return err
	}
	links, err := marshalJSONB(org.InviteLinks)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO organizations (id, name, owner_id, description, roles, invite_links, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		org.ID, org.Name, org.OwnerID, org.Description, roles, links, org.CreatedAt, org.UpdatedAt)
	return translateErr(err, "create organization")
}

func (s *PostgresStore) GetOrganization(orgID string) (*models.Organization, error) {
	row := s.db.QueryRow(`
		SELECT id, name, owner_id, description, roles, invite_links, created_at, updated_at
		FROM organizations WHERE id = $1`, orgID)
	var org models.Organization
	var roles, links []byte
	err := row.Scan(&org.ID, &org.Name, &org.OwnerID, &org.Description, &roles, &links, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, translateErr(err, "get organization")
	}
	if err := json.Unmarshal(roles, &org.Roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	if err := json.Unmarshal(links, &org.InviteLinks); err != nil {
		return nil, fmt.Errorf("decode invite_links: %w", err)
	}
	return &org, nil
}

func (s *PostgresStore) UpdateOrganization(org *models.Organization) error {
	org.UpdatedAt = time.Now()
	roles, err := marshalJSONB(org.Roles)
	if err != nil {
		return err
	}
	links, err := marshalJSONB(org.InviteLinks)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE organizations SET name = $2, description = $3, roles = $4, invite_links = $5, updated_at = $6
		WHERE id = $1`,
		org.ID, org.Name, org.Description, roles, links, org.UpdatedAt)
	if err != nil {
		return translateErr(err, "update organization")
	}
	return requireRows(res, "organization")
}

func (s *PostgresStore) DeleteOrganization(orgID string) error {
	res, err := s.db.Exec(`DELETE FROM organizations WHERE id = $1`, orgID)
	if err != nil {
		return translateErr(err, "delete organization")
	}
	return requireRows(res, "organization")
}

func (s *PostgresStore) ListUserOrganizations(userID string) ([]models.Organization, error) {
	rows, err := s.db.Query(`
		SELECT o.id, o.name, o.owner_id, o.description, o.roles, o.invite_links, o.created_at, o.updated_at
		FROM organizations o
		JOIN employees e ON e.organization_id = o.id
		WHERE e.user_id = $1
		ORDER BY o.created_at`, userID)
	if err != nil {
		return nil, translateErr(err, "list user organizations")
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		var org models.Organization
		var roles, links []byte
		if err := rows.Scan(&org.ID, &org.Name, &org.OwnerID, &org.Description, &roles, &links, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, translateErr(err, "scan organization")
		}
		if err := json.Unmarshal(roles, &org.Roles); err != nil {
			return nil, fmt.Errorf("decode roles: %w", err)
		}
		if err := json.Unmarshal(links, &org.InviteLinks); err != nil {
			return nil, fmt.Errorf("decode invite_links: %w", err)
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// ==== employees ====

func (s *PostgresStore) CreateEmployee(e *models.Employee) error {
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	roles, err := marshalJSONB(e.Roles)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO employees (organization_id, user_id, display_name, email, org_role, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.OrganizationID, e.UserID, e.DisplayName, e.Email, e.OrgRole, roles, e.CreatedAt, e.UpdatedAt)
	return translateErr(err, "create employee")
}

func (s *PostgresStore) GetEmployee(orgID, userID string) (*models.Employee, error) {
	row := s.db.QueryRow(`
		SELECT organization_id, user_id, display_name, email, org_role, roles, created_at, updated_at
		FROM employees WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	return scanEmployee(row.Scan)
}

func scanEmployee(scan func(dest ...interface{}) error) (*models.Employee, error) {
	var e models.Employee
	var roles []byte
	err := scan(&e.OrganizationID, &e.UserID, &e.DisplayName, &e.Email, &e.OrgRole, &roles, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, translateErr(err, "get employee")
	}
	if err := json.Unmarshal(roles, &e.Roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) UpdateEmployee(e *models.Employee) error {
	e.UpdatedAt = time.Now()
	roles, err := marshalJSONB(e.Roles)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE employees SET display_name = $3, email = $4, org_role = $5, roles = $6, updated_at = $7
		WHERE organization_id = $1 AND user_id = $2`,
		e.OrganizationID, e.UserID, e.DisplayName, e.Email, e.OrgRole, roles, e.UpdatedAt)
	if err != nil {
		return translateErr(err, "update employee")
	}
	return requireRows(res, "employee")
}

func (s *PostgresStore) DeleteEmployee(orgID, userID string) error {
	res, err := s.db.Exec(`DELETE FROM employees WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	if err != nil {
		return translateErr(err, "delete employee")
	}
	return requireRows(res, "employee")
}

func (s *PostgresStore) ListEmployees(orgID string) ([]models.Employee, error) {
	rows, err := s.db.Query(`
		SELECT organization_id, user_id, display_name, email, org_role, roles, created_at, updated_at
		FROM employees WHERE organization_id = $1 ORDER BY created_at`, orgID)
	if err != nil {
		return nil, translateErr(err, "list employees")
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// ==== pending employees ====

func (s *PostgresStore) CreatePendingEmployee(p *models.PendingEmployee) error {
	_, err := s.db.Exec(`
		INSERT INTO pending_employees (organization_id, user_id, email, first_name, last_name, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.OrganizationID, p.UserID, p.Email, p.FirstName, p.LastName, p.Status, p.RequestedAt)
	return translateErr(err, "create pending employee")
}

func (s *PostgresStore) GetPendingEmployee(orgID, userID string) (*models.PendingEmployee, error) {
	row := s.db.QueryRow(`
		SELECT organization_id, user_id, email, first_name, last_name, status, requested_at
		FROM pending_employees WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	var p models.PendingEmployee
	err := row.Scan(&p.OrganizationID, &p.UserID, &p.Email, &p.FirstName, &p.LastName, &p.Status, &p.RequestedAt)
	if err != nil {
		return nil, translateErr(err, "get pending employee")
	}
	return &p, nil
}

func (s *PostgresStore) DeletePendingEmployee(orgID, userID string) error {
	res, err := s.db.Exec(`DELETE FROM pending_employees WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	if err != nil {
		return translateErr(err, "delete pending employee")
	}
	return requireRows(res, "pending employee")
}

func (s *PostgresStore) ListPendingEmployees(orgID string) ([]models.PendingEmployee, error) {
	rows, err := s.db.Query(`
		SELECT organization_id, user_id, email, first_name, last_name, status, requested_at
		FROM pending_employees WHERE organization_id = $1 ORDER BY requested_at`, orgID)
	if err != nil {
		return nil, translateErr(err, "list pending employees")
	}
	defer rows.Close()

	var pending []models.PendingEmployee
	for rows.Next() {
		var p models.PendingEmployee
		if err := rows.Scan(&p.OrganizationID, &p.UserID, &p.Email, &p.FirstName, &p.LastName, &p.Status, &p.RequestedAt); err != nil {
			return nil, translateErr(err, "scan pending employee")
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// ==== week schedules ====

func (s *PostgresStore) CreateWeekSchedule(sched *models.WeekSchedule, overwrite bool) error {
	days, err := json.Marshal(sched.Days)
	if err != nil {
		return err
	}
	if overwrite {
		_, err = s.db.Exec(`
			INSERT INTO week_schedules (id, organization_id, week_start, availability_deadline, days, generated_at, is_published, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				availability_deadline = EXCLUDED.availability_deadline,
				days = EXCLUDED.days,
				generated_at = EXCLUDED.generated_at,
				is_published = EXCLUDED.is_published,
				published_at = EXCLUDED.published_at`,
			sched.ID, sched.OrganizationID, sched.WeekStart, sched.AvailabilityDeadline, days, sched.GeneratedAt, sched.IsPublished, sched.PublishedAt)
	} else {
		_, err = s.db.Exec(`
			INSERT INTO week_schedules (id, organization_id, week_start, availability_deadline, days, generated_at, is_published, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sched.ID, sched.OrganizationID, sched.WeekStart, sched.AvailabilityDeadline, days, sched.GeneratedAt, sched.IsPublished, sched.PublishedAt)
	}
	return translateErr(err, "create week schedule")
}

func (s *PostgresStore) GetWeekSchedule(orgID, scheduleID string) (*models.WeekSchedule, error) {
	row := s.db.QueryRow(`
		SELECT id, organization_id, week_start, availability_deadline, days, generated_at, is_published, published_at
		FROM week_schedules WHERE organization_id = $1 AND id = $2`, orgID, scheduleID)
	return scanSchedule(row.Scan)
}

func scanSchedule(scan func(dest ...interface{}) error) (*models.WeekSchedule, error) {
	var sched models.WeekSchedule
	var days []byte
	err := scan(&sched.ID, &sched.OrganizationID, &sched.WeekStart, &sched.AvailabilityDeadline, &days, &sched.GeneratedAt, &sched.IsPublished, &sched.PublishedAt)
	if err != nil {
		return nil, translateErr(err, "get week schedule")
	}
	if err := json.Unmarshal(days, &sched.Days); err != nil {
		return nil, fmt.Errorf("decode days: %w", err)
	}
	return &sched, nil
}

func (s *PostgresStore) UpdateWeekSchedule(sched *models.WeekSchedule) error {
	days, err := json.Marshal(sched.Days)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE week_schedules SET availability_deadline = $3, days = $4, is_published = $5, published_at = $6
		WHERE organization_id = $1 AND id = $2`,
		sched.OrganizationID, sched.ID, sched.AvailabilityDeadline, days, sched.IsPublished, sched.PublishedAt)
	if err != nil {
		return translateErr(err, "update week schedule")
	}
	return requireRows(res, "week schedule")
}

func (s *PostgresStore) DeleteWeekSchedule(orgID, scheduleID string) error {
	res, err := s.db.Exec(`DELETE FROM week_schedules WHERE organization_id = $1 AND id = $2`, orgID, scheduleID)
	if err != nil {
		return translateErr(err, "delete week schedule")
	}
	return requireRows(res, "week schedule")
}

func (s *PostgresStore) ListWeekSchedules(orgID string) ([]models.WeekSchedule, error) {
	rows, err := s.db.Query(`
		SELECT id, organization_id, week_start, availability_deadline, days, generated_at, is_published, published_at
		FROM week_schedules WHERE organization_id = $1 ORDER BY week_start`, orgID)
	if err != nil {
		return nil, translateErr(err, "list week schedules")
	}
	defer rows.Close()

	var schedules []models.WeekSchedule
	for rows.Next() {
		sched, err := scanSchedule(rows.Scan)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *sched)
	}
	return schedules, rows.Err()
}

// ==== availability ====

func (s *PostgresStore) SaveAvailability(a *models.WeekAvailability) error {
	a.UpdatedAt = time.Now()
	entries, err := marshalJSONB(a.Entries)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO availability (user_id, entries, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET entries = EXCLUDED.entries, updated_at = EXCLUDED.updated_at`,
		a.UserID, entries, a.UpdatedAt)
	return translateErr(err, "save availability")
}

func (s *PostgresStore) GetAvailability(userID string) (*models.WeekAvailability, error) {
	row := s.db.QueryRow(`SELECT user_id, entries, updated_at FROM availability WHERE user_id = $1`, userID)
	var a models.WeekAvailability
	var entries []byte
	if err := row.Scan(&a.UserID, &entries, &a.UpdatedAt); err != nil {
		return nil, translateErr(err, "get availability")
	}
	if err := json.Unmarshal(entries, &a.Entries); err != nil {
		return nil, fmt.Errorf("decode availability entries: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) HealthCheck() error {
	return s.db.Ping()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func requireRows(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	return nil
}
