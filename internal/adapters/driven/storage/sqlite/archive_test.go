package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

func archivedDraw(sourceID, subgame, numbers string, day domain.Date) domain.ArchivedDraw {
	return domain.ArchivedDraw{
		SourceID:    sourceID,
		Subgame:     subgame,
		Numbers:     numbers,
		DrawDate:    day,
		DrawnAt:     time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
		CollectedAt: time.Date(2024, 3, 1, 18, 2, 0, 0, time.UTC),
		RunID:       "run-1",
	}
}

func TestResultArchive_SaveAndDrawsOn(t *testing.T) {
	archive := setupTestStore(t).ResultArchive()
	ctx := context.Background()

	day, err := domain.ParseDate("2024-03-01")
	require.NoError(t, err)
	other, err := domain.ParseDate("2024-02-29")
	require.NoError(t, err)

	require.NoError(t, archive.SaveDraws(ctx, []domain.ArchivedDraw{
		archivedDraw("ny", "pick3", "1-2-3", day),
		archivedDraw("fl", "pick4", "4-5-6-7", day),
		archivedDraw("fl", "pick3", "8-9-0", day),
		archivedDraw("fl", "pick3", "0-0-0", other),
	}))

	draws, err := archive.DrawsOn(ctx, day)
	require.NoError(t, err)
	require.Len(t, draws, 3)

	assert.Equal(t, "fl", draws[0].SourceID)
	assert.Equal(t, "pick3", draws[0].Subgame)
	assert.Equal(t, "8-9-0", draws[0].Numbers)
	assert.Equal(t, "pick4", draws[1].Subgame)
	assert.Equal(t, "ny", draws[2].SourceID)

	assert.Equal(t, day, draws[0].DrawDate)
	assert.Equal(t, "run-1", draws[0].RunID)
	assert.True(t, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC).Equal(draws[0].DrawnAt))
}

func TestResultArchive_FirstSeenWins(t *testing.T) {
	archive := setupTestStore(t).ResultArchive()
	ctx := context.Background()
	day, err := domain.ParseDate("2024-03-01")
	require.NoError(t, err)

	require.NoError(t, archive.SaveDraws(ctx, []domain.ArchivedDraw{archivedDraw("ny", "pick3", "1-2-3", day)}))
	require.NoError(t, archive.SaveDraws(ctx, []domain.ArchivedDraw{archivedDraw("ny", "pick3", "9-9-9", day)}))

	draws, err := archive.DrawsOn(ctx, day)
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, "1-2-3", draws[0].Numbers)
}

func TestResultArchive_EmptyDay(t *testing.T) {
	archive := setupTestStore(t).ResultArchive()
	day, err := domain.ParseDate("2024-03-01")
	require.NoError(t, err)

	draws, err := archive.DrawsOn(context.Background(), day)
	require.NoError(t, err)
	assert.Empty(t, draws)
}

func TestResultArchive_RejectsIncompleteDraw(t *testing.T) {
	archive := setupTestStore(t).ResultArchive()
	ctx := context.Background()
	day, err := domain.ParseDate("2024-03-01")
	require.NoError(t, err)

	err = archive.SaveDraws(ctx, []domain.ArchivedDraw{
		archivedDraw("ny", "pick3", "1-2-3", day),
		archivedDraw("", "pick3", "1-2-3", day),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// The whole batch rolls back.
	draws, err := archive.DrawsOn(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, draws)
}

func TestResultArchive_SaveNothing(t *testing.T) {
	archive := setupTestStore(t).ResultArchive()
	assert.NoError(t, archive.SaveDraws(context.Background(), nil))
}
