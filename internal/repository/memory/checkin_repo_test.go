package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

func TestCheckInUpsertReplacesSameDay(t *testing.T) {
	ctx := context.Background()
	repo := NewCheckInRepository()
	day := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)

	firstID, err := repo.Upsert(ctx, &domain.CheckIn{
		ClientID: "client-1",
		Date:     day,
		Weight:   180,
		Energy:   3,
	})
	require.NoError(t, err)

	// A second submit on the same day replaces, keeping the id.
	secondID, err := repo.Upsert(ctx, &domain.CheckIn{
		ClientID: "client-1",
		Date:     day.Add(12 * time.Hour),
		Weight:   179.5,
		Energy:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	got, err := repo.GetByClientAndDate(ctx, "client-1", day)
	require.NoError(t, err)
	assert.Equal(t, 179.5, got.Weight)
	assert.Equal(t, 4, got.Energy)

	_, err = repo.GetByClientAndDate(ctx, "client-1", day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCheckInGetRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewCheckInRepository()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := repo.Upsert(ctx, &domain.CheckIn{
			ClientID: "client-1",
			Date:     base.AddDate(0, 0, -i),
			Energy:   i + 1,
		})
		require.NoError(t, err)
	}

	recent, err := repo.GetRecent(ctx, "client-1", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.True(t, recent[0].Date.After(recent[1].Date))
	assert.True(t, recent[1].Date.After(recent[2].Date))
	assert.Equal(t, 1, recent[0].Energy) // most recent day
}

func TestMeasurementLogSortedByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewMeasurementRepository()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// Inserted out of order; reads come back date-ascending.
	for _, daysAgo := range []int{5, 30, 1} {
		_, err := repo.Create(ctx, &domain.Measurement{
			ClientID: "client-1",
			Type:     domain.MeasurementWeight,
			Value:    float64(170 + daysAgo),
			Date:     base.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.Measurement{
		ClientID: "client-1",
		Type:     domain.MeasurementWaist,
		Value:    32,
		Date:     base,
	})
	require.NoError(t, err)

	weights, err := repo.GetByClientID(ctx, "client-1", domain.MeasurementWeight)
	require.NoError(t, err)
	require.Len(t, weights, 3)
	assert.Equal(t, 200.0, weights[0].Value)
	assert.Equal(t, 175.0, weights[1].Value)
	assert.Equal(t, 171.0, weights[2].Value)

	all, err := repo.GetByClientID(ctx, "client-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMeasurementDeleteChecksOwnership(t *testing.T) {
	ctx := context.Background()
	repo := NewMeasurementRepository()

	id, err := repo.Create(ctx, &domain.Measurement{
		ClientID: "client-1",
		Type:     domain.MeasurementWeight,
		Value:    180,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, id, "client-2"), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, id, "client-1"))
	assert.ErrorIs(t, repo.Delete(ctx, id, "client-1"), repository.ErrNotFound)
}
