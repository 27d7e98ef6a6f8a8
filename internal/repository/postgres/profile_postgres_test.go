package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

var profileCols = []string{"id", "tenant_id", "company_name", "address", "signatory", "meta", "created_at", "updated_at"}

func TestProfilePostgres_FindByTenant(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProfilePostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(profileCols).AddRow(
			"p-1", "acme", "Acme",
			[]byte(`{"line1":"Company HQ","city":"Mumbai","state":"Maharashtra","pincode":"400001"}`),
			[]byte(`{"name":"HR Manager","designation":"HR Head"}`),
			[]byte(`{"careerCustomization":{"isPublished":true,"version":42},"draftCareerPage":{"sections":[]}}`),
			now, now,
		)
		mock.ExpectQuery("SELECT (.+) FROM company_profiles WHERE tenant_id = ?").
			WithArgs("acme").
			WillReturnRows(rows)

		p, err := repo.FindByTenant(ctx, "acme")

		require.NoError(t, err)
		assert.Equal(t, "p-1", p.ID)
		assert.Equal(t, "Mumbai", p.Address.City)
		assert.Equal(t, "HR Head", p.Signatory.Designation)
		assert.Equal(t, int64(42), p.Meta.CareerCustomization.Version())
		assert.True(t, p.Meta.DraftCareerPage.Has(model.KeySections))
	})

	t.Run("null meta", func(t *testing.T) {
		rows := sqlmock.NewRows(profileCols).AddRow("p-2", "beta", "Beta", nil, nil, nil, now, now)
		mock.ExpectQuery("SELECT (.+) FROM company_profiles WHERE tenant_id = ?").
			WithArgs("beta").
			WillReturnRows(rows)

		p, err := repo.FindByTenant(ctx, "beta")

		require.NoError(t, err)
		assert.Nil(t, p.Meta.CareerCustomization)
		assert.Nil(t, p.Meta.DraftCareerPage)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM company_profiles WHERE tenant_id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByTenant(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, p)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProfilePostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	in := &model.CompanyProfile{
		ID:          "p-1",
		TenantID:    "acme",
		CompanyName: "Acme",
		Signatory:   model.Signatory{Name: "HR Manager", Designation: "HR Head"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	rows := sqlmock.NewRows(profileCols).
		AddRow("p-1", "acme", "Acme", []byte(`{}`), []byte(`{"name":"HR Manager","designation":"HR Head"}`), []byte(`{}`), now, now)

	mock.ExpectQuery("INSERT INTO company_profiles (.+) ON CONFLICT \\(tenant_id\\)").
		WithArgs("p-1", "acme", "Acme", sqlmock.AnyArg(), []byte(`{"name":"HR Manager","designation":"HR Head"}`), []byte(`{}`), now, now).
		WillReturnRows(rows)

	out, err := repo.Create(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, "p-1", out.ID)
	assert.Equal(t, "HR Manager", out.Signatory.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilePostgres_UpdateCareerPages(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProfilePostgres(db)
	ctx := context.Background()

	live := model.Content{"isPublished": true, "version": 7}
	draft := model.Content{"updatedAt": "2026-01-01T00:00:00Z"}

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE company_profiles SET meta = jsonb_set\\((.+)careerCustomization(.+)draftCareerPage").
			WithArgs("acme", []byte(`{"isPublished":true,"version":7}`), []byte(`{"updatedAt":"2026-01-01T00:00:00Z"}`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateCareerPages(ctx, "acme", live, draft))
	})

	t.Run("no profile", func(t *testing.T) {
		mock.ExpectExec("UPDATE company_profiles").
			WithArgs("ghost", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateCareerPages(ctx, "ghost", live, draft), repository.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec("UPDATE company_profiles").
			WithArgs("acme", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errors.New("deadlock detected"))

		assert.ErrorContains(t, repo.UpdateCareerPages(ctx, "acme", live, draft), "deadlock")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilePostgres_UpdateDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProfilePostgres(db)

	mock.ExpectExec("UPDATE company_profiles SET meta = jsonb_set\\((.+)draftCareerPage").
		WithArgs("acme", []byte(`{"sections":[]}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateDraft(context.Background(), "acme", model.Content{"sections": []any{}})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilePostgres_ListPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProfilePostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM company_profiles WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(profileCols).
		AddRow("p-1", "acme", "Acme", nil, nil, []byte(`{"careerCustomization":{"isPublished":true,"version":1}}`), now, now).
		AddRow("p-2", "beta", "Beta", nil, nil, []byte(`{"careerCustomization":{"isPublished":true,"version":2}}`), now, now)
	mock.ExpectQuery("SELECT (.+) FROM company_profiles WHERE (.+) ORDER BY tenant_id LIMIT").
		WithArgs(50, 0).
		WillReturnRows(rows)

	res, err := repo.ListPublished(context.Background(), repository.PageQuery{Limit: 50})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(2), res.Items[1].Meta.CareerCustomization.Version())
	assert.NoError(t, mock.ExpectationsWereMet())
}
