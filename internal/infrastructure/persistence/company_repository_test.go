package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/shared"
)

func TestGormCompanyRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCompanyRepository(db)
	ctx := context.Background()

	c, err := company.NewCompany("swift-movers", "Swift Movers")
	require.NoError(t, err)
	require.NoError(t, c.SetDefaultRates(decimal.NewFromInt(45), decimal.NewFromInt(120)))
	require.NoError(t, repo.Save(ctx, c))

	t.Run("find by id and code", func(t *testing.T) {
		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Swift Movers", got.Name)
		assert.True(t, got.DefaultHourlyRate.Equal(decimal.NewFromInt(45)))

		got, err = repo.FindByCode(ctx, " SWIFT-MOVERS ")
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exists and list", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, "swift-movers")
		require.NoError(t, err)
		assert.True(t, exists)

		companies, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, companies, 1)

		count, err := repo.Count(ctx, shared.DefaultFilter().With("status", company.CompanyStatusSuspended))
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestGormReferrerRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReferrerRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	ref, err := company.NewReferrer(companyID, "Acme Realty", "acme01", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ref))

	t.Run("code lookup is case insensitive", func(t *testing.T) {
		got, err := repo.FindByCode(ctx, companyID, " acme01")
		require.NoError(t, err)
		assert.Equal(t, ref.ID, got.ID)
		assert.True(t, got.CommissionRate.Equal(decimal.NewFromInt(10)))

		_, err = repo.FindByCode(ctx, uuid.New(), "ACME01")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exists by code", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, companyID, "ACME01")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("list with search", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "realty"
		refs, err := repo.FindAllForCompany(ctx, companyID, filter)
		require.NoError(t, err)
		assert.Len(t, refs, 1)

		count, err := repo.CountForCompany(ctx, companyID, shared.DefaultFilter().With("status", company.ReferrerStatusInactive))
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteForCompany(ctx, companyID, ref.ID))
		_, err := repo.FindByIDForCompany(ctx, companyID, ref.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
