package repository

import (
	"context"
	"testing"
	"time"

	"presence-backend/internal/model"
	"presence-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedOfficeRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewCachedOfficeRepository(NewOfficeRepository(db), time.Minute)

	office := &model.Office{Name: "HQ", Latitude: 1, Longitude: 2, RadiusMeters: 80}
	require.NoError(t, repo.Create(ctx, office))

	got, err := repo.GetByID(ctx, office.ID)
	require.NoError(t, err)
	assert.Equal(t, "HQ", got.Name)

	// A write behind the cache's back is not seen until the entry expires.
	require.NoError(t, db.Model(&model.Office{}).Where("id = ?", office.ID).Update("name", "Sneaky").Error)
	got, err = repo.GetByID(ctx, office.ID)
	require.NoError(t, err)
	assert.Equal(t, "HQ", got.Name)

	// Updates through the repository evict the entry.
	got.RadiusMeters = 40
	got.Name = "HQ North"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, office.ID)
	require.NoError(t, err)
	assert.Equal(t, "HQ North", got.Name)
	assert.Equal(t, 40.0, got.RadiusMeters)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
