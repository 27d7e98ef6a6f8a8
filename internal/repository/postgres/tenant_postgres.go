package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

// TenantPostgres reads the central tenants table.
type TenantPostgres struct {
	db *sql.DB
}

// NewTenantPostgres creates a new TenantPostgres repository.
func NewTenantPostgres(db *sql.DB) *TenantPostgres {
	return &TenantPostgres{db: db}
}

var _ repository.TenantRepository = (*TenantPostgres)(nil)

// FindByID fetches a tenant by id, falling back to its code.
func (r *TenantPostgres) FindByID(ctx context.Context, id string) (*model.Tenant, error) {
	const q = `
		SELECT id, code, name, status
		FROM tenants
		WHERE id = $1 OR code = $1
		ORDER BY (id = $1) DESC
		LIMIT 1
	`
	var t model.Tenant
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Code, &t.Name, &t.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
