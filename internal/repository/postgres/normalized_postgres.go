package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

// NormalizedPostgres stores the per-record careers page tables
// career_seo, career_layouts and career_sections.
type NormalizedPostgres struct {
	db *sql.DB
}

// NewNormalizedPostgres creates a new NormalizedPostgres repository.
func NewNormalizedPostgres(db *sql.DB) *NormalizedPostgres {
	return &NormalizedPostgres{db: db}
}

var _ repository.NormalizedRepository = (*NormalizedPostgres)(nil)

// SaveSEO upserts the SEO record of (tenant, company).
func (r *NormalizedPostgres) SaveSEO(ctx context.Context, s *model.CareerSEO) error {
	const q = `
		INSERT INTO career_seo (tenant_id, company_id, seo_title, seo_description, seo_keywords,
			seo_slug, seo_og_image_url, is_draft, is_published, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tenant_id, company_id) DO UPDATE SET
			seo_title = EXCLUDED.seo_title,
			seo_description = EXCLUDED.seo_description,
			seo_keywords = EXCLUDED.seo_keywords,
			seo_slug = EXCLUDED.seo_slug,
			seo_og_image_url = EXCLUDED.seo_og_image_url,
			is_draft = EXCLUDED.is_draft,
			updated_at = EXCLUDED.updated_at
	`
	keywords := s.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	kw, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	_, err = r.db.ExecContext(ctx, q,
		s.TenantID,
		s.CompanyID,
		s.Title,
		s.Description,
		kw,
		s.Slug,
		s.OGImageURL,
		s.IsDraft,
		s.IsPublished,
		s.UpdatedAt,
	)
	return err
}

// ReplaceSections writes the layout and the full section list in one transaction.
// Sections absent from the list are deleted.
func (r *NormalizedPostgres) ReplaceSections(ctx context.Context, layout *model.CareerLayout, sections []model.CareerSection) (err error) {
	const qLayout = `
		INSERT INTO career_layouts (tenant_id, company_id, layout_config, is_draft, is_published, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, company_id) DO UPDATE SET
			layout_config = EXCLUDED.layout_config,
			is_draft = EXCLUDED.is_draft,
			updated_at = EXCLUDED.updated_at
	`
	const qSection = `
		INSERT INTO career_sections (tenant_id, company_id, section_id, section_type, section_order,
			content, theme, is_draft, is_published, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tenant_id, company_id, section_id) DO UPDATE SET
			section_type = EXCLUDED.section_type,
			section_order = EXCLUDED.section_order,
			content = EXCLUDED.content,
			theme = EXCLUDED.theme,
			is_draft = EXCLUDED.is_draft,
			updated_at = EXCLUDED.updated_at
	`
	const qPrune = `
		DELETE FROM career_sections
		WHERE tenant_id = $1 AND company_id = $2
		  AND section_id NOT IN (SELECT jsonb_array_elements_text($3::jsonb))
	`

	cfg, err := json.Marshal(layout.LayoutConfig)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, qLayout,
		layout.TenantID, layout.CompanyID, cfg, layout.IsDraft, layout.IsPublished, layout.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert layout: %w", err)
	}

	ids := make([]string, 0, len(sections))
	for _, s := range sections {
		content, theme, encErr := encodeSection(s)
		if encErr != nil {
			return encErr
		}
		if _, err = tx.ExecContext(ctx, qSection,
			s.TenantID, s.CompanyID, s.SectionID, string(s.Type), s.Order,
			content, theme, s.IsDraft, s.IsPublished, s.UpdatedAt,
		); err != nil {
			return fmt.Errorf("upsert section %s: %w", s.SectionID, err)
		}
		ids = append(ids, s.SectionID)
	}

	keep, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, qPrune, layout.TenantID, layout.CompanyID, keep); err != nil {
		return fmt.Errorf("prune sections: %w", err)
	}

	return tx.Commit()
}

// MarkPublished flags the SEO record, the layout and every section of
// (tenant, company) as published, in one transaction.
func (r *NormalizedPostgres) MarkPublished(ctx context.Context, tenantID, companyID string, at time.Time) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"career_seo", "career_layouts", "career_sections"} {
		q := `UPDATE ` + table + ` SET is_published = true, published_at = $3
			WHERE tenant_id = $1 AND company_id = $2`
		if _, err = tx.ExecContext(ctx, q, tenantID, companyID, at); err != nil {
			return fmt.Errorf("mark %s published: %w", table, err)
		}
	}
	return tx.Commit()
}

// Load reads the SEO record, the layout and the ordered sections.
func (r *NormalizedPostgres) Load(ctx context.Context, tenantID, companyID string) (*model.NormalizedDraft, error) {
	out := &model.NormalizedDraft{Sections: make([]model.CareerSection, 0)}

	seo, err := r.loadSEO(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	out.SEO = seo

	layout, err := r.loadLayout(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	out.Layout = layout

	const q = `
		SELECT section_id, section_type, section_order, content, theme, is_draft, is_published, published_at, updated_at
		FROM career_sections
		WHERE tenant_id = $1 AND company_id = $2
		ORDER BY section_order ASC
	`
	rows, err := r.db.QueryContext(ctx, q, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s              model.CareerSection
			typ            string
			content, theme []byte
			publishedAt    sql.NullTime
		)
		if err := rows.Scan(&s.SectionID, &typ, &s.Order, &content, &theme,
			&s.IsDraft, &s.IsPublished, &publishedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.TenantID, s.CompanyID, s.Type = tenantID, companyID, model.SectionType(typ)
		if err := unmarshalNullable(content, &s.Content); err != nil {
			return nil, fmt.Errorf("decode section %s: %w", s.SectionID, err)
		}
		if err := unmarshalNullable(theme, &s.Theme); err != nil {
			return nil, fmt.Errorf("decode section %s theme: %w", s.SectionID, err)
		}
		if publishedAt.Valid {
			s.PublishedAt = &publishedAt.Time
		}
		out.Sections = append(out.Sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NormalizedPostgres) loadSEO(ctx context.Context, tenantID, companyID string) (*model.CareerSEO, error) {
	const q = `
		SELECT seo_title, seo_description, seo_keywords, seo_slug, seo_og_image_url,
			is_draft, is_published, published_at, updated_at
		FROM career_seo
		WHERE tenant_id = $1 AND company_id = $2
	`
	var (
		s           = model.CareerSEO{TenantID: tenantID, CompanyID: companyID}
		keywords    []byte
		publishedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, tenantID, companyID).Scan(
		&s.Title, &s.Description, &keywords, &s.Slug, &s.OGImageURL,
		&s.IsDraft, &s.IsPublished, &publishedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := unmarshalNullable(keywords, &s.Keywords); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	if publishedAt.Valid {
		s.PublishedAt = &publishedAt.Time
	}
	return &s, nil
}

func (r *NormalizedPostgres) loadLayout(ctx context.Context, tenantID, companyID string) (*model.CareerLayout, error) {
	const q = `
		SELECT layout_config, is_draft, is_published, published_at, updated_at
		FROM career_layouts
		WHERE tenant_id = $1 AND company_id = $2
	`
	var (
		l           = model.CareerLayout{TenantID: tenantID, CompanyID: companyID}
		cfg         []byte
		publishedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, tenantID, companyID).Scan(
		&cfg, &l.IsDraft, &l.IsPublished, &publishedAt, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := unmarshalNullable(cfg, &l.LayoutConfig); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if publishedAt.Valid {
		l.PublishedAt = &publishedAt.Time
	}
	return &l, nil
}

func encodeSection(s model.CareerSection) (content, theme []byte, err error) {
	c := s.Content
	if c == nil {
		c = map[string]any{}
	}
	if content, err = json.Marshal(c); err != nil {
		return nil, nil, fmt.Errorf("encode section %s: %w", s.SectionID, err)
	}
	if s.Theme != nil {
		if theme, err = json.Marshal(s.Theme); err != nil {
			return nil, nil, fmt.Errorf("encode section %s theme: %w", s.SectionID, err)
		}
	}
	return content, theme, nil
}
