package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/toolhub-ai/toolhub/internal/store"
	"github.com/toolhub-ai/toolhub/internal/testutil"
	"github.com/toolhub-ai/toolhub/pkg/models"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	repo := store.NewSnapshotRepository(testutil.NewStore(t), nil)
	ctx := context.Background()

	raws := []models.RawTool{
		{
			ID:          1,
			Name:        strPtr("ChatGPT"),
			Description: strPtr("مساعد ذكاء اصطناعي"),
			Category:    strPtr("chat"),
			Price:       f64Ptr(0),
			Rating:      f64Ptr(4.8),
			WebsiteURL:  strPtr("https://chat.openai.com"),
			CreatedAt:   strPtr("2024-01-15T00:00:00Z"),
		},
		{
			// All nullable fields absent.
			ID: 2,
		},
	}
	require.NoError(t, repo.Replace(ctx, raws))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, "ChatGPT", *got[0].Name)
	require.Equal(t, "مساعد ذكاء اصطناعي", *got[0].Description)
	require.Equal(t, "chat", *got[0].Category)
	require.Equal(t, 0.0, *got[0].Price)
	require.Equal(t, 4.8, *got[0].Rating)
	require.Equal(t, "https://chat.openai.com", *got[0].WebsiteURL)
	require.Equal(t, "2024-01-15T00:00:00Z", *got[0].CreatedAt)

	// Null columns must come back as nil pointers, not zero values.
	require.Equal(t, int64(2), got[1].ID)
	require.Nil(t, got[1].Name)
	require.Nil(t, got[1].Description)
	require.Nil(t, got[1].Category)
	require.Nil(t, got[1].Price)
	require.Nil(t, got[1].Rating)
	require.Nil(t, got[1].WebsiteURL)
	require.Nil(t, got[1].ImageURL)
	require.Nil(t, got[1].CreatedAt)
}

func TestSnapshotRepository_ReplaceOverwrites(t *testing.T) {
	repo := store.NewSnapshotRepository(testutil.NewStore(t), nil)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, []models.RawTool{
		{ID: 1, Name: strPtr("قديمة")},
		{ID: 2, Name: strPtr("أخرى")},
	}))
	require.NoError(t, repo.Replace(ctx, []models.RawTool{
		{ID: 3, Name: strPtr("جديدة")},
	}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(3), got[0].ID)
	require.Equal(t, "جديدة", *got[0].Name)
}

func TestSnapshotRepository_LoadOrderedByID(t *testing.T) {
	repo := store.NewSnapshotRepository(testutil.NewStore(t), nil)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, []models.RawTool{
		{ID: 30}, {ID: 10}, {ID: 20},
	}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, int64(10), got[0].ID)
	require.Equal(t, int64(20), got[1].ID)
	require.Equal(t, int64(30), got[2].ID)
}

func TestSnapshotRepository_FetchedAt(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC))
	repo := store.NewSnapshotRepository(testutil.NewStore(t), clock.Now)
	ctx := context.Background()

	ts, err := repo.FetchedAt(ctx)
	require.NoError(t, err)
	require.True(t, ts.IsZero(), "no snapshot stored yet")

	require.NoError(t, repo.Replace(ctx, []models.RawTool{{ID: 1}}))

	ts, err = repo.FetchedAt(ctx)
	require.NoError(t, err)
	require.Equal(t, clock.Now(), ts)

	// A later replace advances the stamp.
	clock.Advance(2 * time.Hour)
	require.NoError(t, repo.Replace(ctx, []models.RawTool{{ID: 2}}))

	ts, err = repo.FetchedAt(ctx)
	require.NoError(t, err)
	require.Equal(t, clock.Now(), ts)
}

func TestSnapshotRepository_EmptyStore(t *testing.T) {
	repo := store.NewSnapshotRepository(testutil.NewStore(t), nil)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}
