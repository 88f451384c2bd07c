// Package repository provides persistence implementations for the
// directory's resource store using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/teamsalmon/transponder/internal/models"
)

// resourceColumns is the column list shared by every resource query,
// in models.Resource scan order.
const resourceColumns = `category, name, office_name, address, phone, email, website,
	takes_ohp, takes_private_insurance, sliding_scale, diversity_trained,
	inclusive_paperwork, asks_pronoun, monitors_hormones, notes, verified`

// PostgresResourceRepository implements resource persistence against a PostgreSQL database.
type PostgresResourceRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresResourceRepository creates a new PostgresResourceRepository using
// the provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresResourceRepository(db *sql.DB) *PostgresResourceRepository {
	return &PostgresResourceRepository{DB: db}
}

func scanResource(scan func(...any) error) (models.Resource, error) {
	var res models.Resource
	err := scan(
		&res.Category, &res.Name, &res.OfficeName, &res.Address,
		&res.Phone, &res.Email, &res.Website,
		&res.TakesOHP, &res.TakesPrivateIns, &res.SlidingScale,
		&res.DiversityTrained, &res.InclusivePaperwork, &res.AsksPronoun,
		&res.MonitorsHormones, &res.Notes, &res.Verified,
	)
	return res, err
}

func collectResources(rows *sql.Rows) ([]models.Resource, error) {
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		res, err := scanResource(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// Exists checks whether a resource with the given (category, name) pair exists.
func (r *PostgresResourceRepository) Exists(ctx context.Context, category, name string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM resources WHERE category = $1 AND name = $2)`,
		category, name,
	).Scan(&exists)
	return exists, err
}

// Insert stores a new resource record. The UNIQUE (category, name)
// constraint backs up the service's pre-check: a concurrent duplicate
// insert surfaces as models.ErrDuplicateResource.
func (r *PostgresResourceRepository) Insert(ctx context.Context, res *models.Resource) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		res.Category, res.Name, res.OfficeName, res.Address,
		res.Phone, res.Email, res.Website,
		res.TakesOHP, res.TakesPrivateIns, res.SlidingScale,
		res.DiversityTrained, res.InclusivePaperwork, res.AsksPronoun,
		res.MonitorsHormones, res.Notes, res.Verified,
	)
	if isUniqueViolation(err) {
		return models.ErrDuplicateResource
	}
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

// ListVerified fetches all verified resources in the given category that
// satisfy the active capability filters, ordered by name. The "C" collation
// keeps the ordering case-sensitive lexicographic regardless of the
// database's default locale.
//
// Absent filters impose no constraint; an active filter requires the
// corresponding flag to be exactly "yes", so "N/A" never passes.
func (r *PostgresResourceRepository) ListVerified(ctx context.Context, category string, filters models.ResourceFilters) ([]models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE verified = TRUE AND category = $1`
	if filters.TakesOHP {
		query += ` AND takes_ohp = 'yes'`
	}
	if filters.MonitorsHormones {
		query += ` AND monitors_hormones = 'yes'`
	}
	if filters.TakesPrivateIns {
		query += ` AND takes_private_insurance = 'yes'`
	}
	query += ` ORDER BY name COLLATE "C"`

	rows, err := r.DB.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("ListVerified: %w", err)
	}
	return collectResources(rows)
}

// ListUnverified fetches every resource still awaiting volunteer review,
// ordered by name.
func (r *PostgresResourceRepository) ListUnverified(ctx context.Context) ([]models.Resource, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+resourceColumns+` FROM resources WHERE verified = FALSE ORDER BY name COLLATE "C"
	`)
	if err != nil {
		return nil, fmt.Errorf("ListUnverified: %w", err)
	}
	return collectResources(rows)
}

// Verify marks the resource with the given (category, name) pair as
// verified. Verifying an already-verified resource is a no-op success.
// Returns models.ErrNotFound if no such resource exists.
func (r *PostgresResourceRepository) Verify(ctx context.Context, category, name string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE resources SET verified = TRUE WHERE category = $1 AND name = $2
	`, category, name)
	if err != nil {
		return fmt.Errorf("Verify: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes the resource with the given (category, name) pair.
// Returns models.ErrNotFound if no such resource exists.
func (r *PostgresResourceRepository) Delete(ctx context.Context, category, name string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM resources WHERE category = $1 AND name = $2
	`, category, name)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Categories returns the distinct category values across resources.
// When verified is non-nil the set is restricted to resources with the
// matching verified state.
func (r *PostgresResourceRepository) Categories(ctx context.Context, verified *bool) ([]string, error) {
	query := `SELECT DISTINCT category FROM resources`
	args := []any{}
	if verified != nil {
		query += ` WHERE verified = $1`
		args = append(args, *verified)
	}
	query += ` ORDER BY category COLLATE "C"`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
