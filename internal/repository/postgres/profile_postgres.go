package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
// Address, signatory and meta are JSONB columns; the careers page sub-documents
// live under meta and are updated in place with jsonb_set.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

const profileColumns = `id, tenant_id, company_name, address, signatory, meta, created_at, updated_at`

// FindByTenant fetches the profile of a tenant.
func (r *ProfilePostgres) FindByTenant(ctx context.Context, tenantID string) (*model.CompanyProfile, error) {
	const q = `
		SELECT ` + profileColumns + `
		FROM company_profiles
		WHERE tenant_id = $1
	`
	p, err := scanProfile(r.db.QueryRowContext(ctx, q, tenantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a profile. A concurrent insert for the same tenant resolves to the
// existing row, so callers always get the single profile back.
func (r *ProfilePostgres) Create(ctx context.Context, p *model.CompanyProfile) (*model.CompanyProfile, error) {
	const q = `
		INSERT INTO company_profiles (id, tenant_id, company_name, address, signatory, meta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tenant_id) DO UPDATE SET tenant_id = EXCLUDED.tenant_id
		RETURNING ` + profileColumns

	address, err := json.Marshal(p.Address)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}
	signatory, err := json.Marshal(p.Signatory)
	if err != nil {
		return nil, fmt.Errorf("encode signatory: %w", err)
	}
	meta, err := json.Marshal(p.Meta)
	if err != nil {
		return nil, fmt.Errorf("encode meta: %w", err)
	}

	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.TenantID,
		p.CompanyName,
		address,
		signatory,
		meta,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanProfile(row)
}

// UpdateDraft sets meta.draftCareerPage.
func (r *ProfilePostgres) UpdateDraft(ctx context.Context, tenantID string, draft model.Content) error {
	const q = `
		UPDATE company_profiles
		SET meta = jsonb_set(COALESCE(meta, '{}'::jsonb), '{draftCareerPage}', $2::jsonb, true),
		    updated_at = now()
		WHERE tenant_id = $1
	`
	b, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return r.exec(ctx, q, tenantID, b)
}

// UpdateCareerPages sets meta.careerCustomization and meta.draftCareerPage together.
func (r *ProfilePostgres) UpdateCareerPages(ctx context.Context, tenantID string, live, draft model.Content) error {
	const q = `
		UPDATE company_profiles
		SET meta = jsonb_set(
		        jsonb_set(COALESCE(meta, '{}'::jsonb), '{careerCustomization}', $2::jsonb, true),
		        '{draftCareerPage}', $3::jsonb, true),
		    updated_at = now()
		WHERE tenant_id = $1
	`
	l, err := json.Marshal(live)
	if err != nil {
		return fmt.Errorf("encode live content: %w", err)
	}
	d, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return r.exec(ctx, q, tenantID, l, d)
}

// ListPublished returns published profiles using LIMIT/OFFSET pagination and a total count.
func (r *ProfilePostgres) ListPublished(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.CompanyProfile], error) {
	const where = `WHERE meta->'careerCustomization'->>'isPublished' = 'true'`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM company_profiles `+where).Scan(&total); err != nil {
		return nil, err
	}

	qList := `
		SELECT ` + profileColumns + `
		FROM company_profiles
		` + where + `
		ORDER BY tenant_id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CompanyProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.CompanyProfile]{
		Items: items,
		Total: total,
	}, nil
}

func (r *ProfilePostgres) exec(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*model.CompanyProfile, error) {
	var (
		p                        model.CompanyProfile
		address, signatory, meta []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.CompanyName,
		&address,
		&signatory,
		&meta,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(address, &p.Address); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	if err := unmarshalNullable(signatory, &p.Signatory); err != nil {
		return nil, fmt.Errorf("decode signatory: %w", err)
	}
	if err := unmarshalNullable(meta, &p.Meta); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	return &p, nil
}

func unmarshalNullable(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}
