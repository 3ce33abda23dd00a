//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/persistence"
)

func TestCompanyIsolation_Trucks(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	ctx := context.Background()

	acme := tdb.CreateTestCompany("acme")
	globex := tdb.CreateTestCompany("globex")
	repo := persistence.NewGormTruckRepository(tdb.DB)

	truck, err := fleet.NewTruck(acme, "t-1", "Box truck")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, truck))

	found, err := repo.FindByIDForCompany(ctx, acme, truck.ID)
	require.NoError(t, err)
	assert.Equal(t, "T-1", found.Code)

	_, err = repo.FindByIDForCompany(ctx, globex, truck.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("codes are unique per company only", func(t *testing.T) {
		other, err := fleet.NewTruck(globex, "T-1", "Same code elsewhere")
		require.NoError(t, err)
		assert.NoError(t, repo.Save(ctx, other))

		dup, err := fleet.NewTruck(acme, "T-1", "Duplicate")
		require.NoError(t, err)
		assert.Error(t, repo.Save(ctx, dup))
	})
}
