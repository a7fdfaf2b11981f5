package building_repo

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

func newTestRepo(t *testing.T) BuildingRepoContract {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Building{}, &entity.Resident{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM residents")
		db.Exec("DELETE FROM buildings")
	})

	return NewBuildingRepo(db)
}

func createBuilding(t *testing.T, repo BuildingRepoContract, name string, totalFlats int64) *entity.Building {
	t.Helper()
	b := &entity.Building{Name: name, TotalFlats: totalFlats}
	require.Nil(t, repo.CreateBuilding(context.Background(), b))
	return b
}

func addResident(t *testing.T, repo BuildingRepoContract, b *entity.Building, name string, flat int64) *entity.Resident {
	t.Helper()
	r := &entity.Resident{Name: name, BuildingID: b.ID, Flat: flat}
	require.Nil(t, repo.AddResident(context.Background(), r))
	return r
}

func requireInvariant(t *testing.T, repo BuildingRepoContract, id uuid.UUID) *entity.Building {
	t.Helper()
	ctx := context.Background()
	b, appErr := repo.FindBuildingByID(ctx, id)
	require.Nil(t, appErr)
	assert.Equal(t, b.TotalFlats, b.FilledFlats+b.EmptyFlats, "filled + empty must equal total")

	count, appErr := repo.CountResidents(ctx, id)
	require.Nil(t, appErr)
	assert.Equal(t, count, b.FilledFlats, "filled must equal the actual resident count")
	return b
}

func TestCreateBuilding_InitialCounters(t *testing.T) {
	repo := newTestRepo(t)

	b := createBuilding(t, repo, "Maple Court", 10)

	got := requireInvariant(t, repo, b.ID)
	assert.Equal(t, int64(10), got.TotalFlats)
	assert.Equal(t, int64(0), got.FilledFlats)
	assert.Equal(t, int64(10), got.EmptyFlats)
}

func TestAddResident_CountersFollow(t *testing.T) {
	repo := newTestRepo(t)
	b := createBuilding(t, repo, "Maple Court", 10)

	addResident(t, repo, b, "Asha", 1)
	addResident(t, repo, b, "Ravi", 2)
	addResident(t, repo, b, "Meera", 3)

	got := requireInvariant(t, repo, b.ID)
	assert.Equal(t, int64(3), got.FilledFlats)
	assert.Equal(t, int64(7), got.EmptyFlats)
}

func TestAddResident_RejectedBeforeMutation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	b := createBuilding(t, repo, "Maple Court", 5)
	addResident(t, repo, b, "Asha", 2)

	// out-of-range flat
	appErr := repo.AddResident(ctx, &entity.Resident{Name: "X", BuildingID: b.ID, Flat: 6})
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	appErr = repo.AddResident(ctx, &entity.Resident{Name: "Y", BuildingID: b.ID, Flat: 0})
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	// flat already occupied
	appErr = repo.AddResident(ctx, &entity.Resident{Name: "Z", BuildingID: b.ID, Flat: 2})
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	got := requireInvariant(t, repo, b.ID)
	assert.Equal(t, int64(1), got.FilledFlats, "rejected adds must not touch counters")
}

func TestAddResident_FullBuilding(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	b := createBuilding(t, repo, "Tiny", 2)
	addResident(t, repo, b, "A", 1)
	addResident(t, repo, b, "B", 2)

	appErr := repo.AddResident(ctx, &entity.Resident{Name: "C", BuildingID: b.ID, Flat: 1})
	require.NotNil(t, appErr)

	got := requireInvariant(t, repo, b.ID)
	assert.Equal(t, int64(2), got.FilledFlats)
	assert.Equal(t, int64(0), got.EmptyFlats)
}

func TestRemoveResident(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	b := createBuilding(t, repo, "Maple Court", 10)
	r := addResident(t, repo, b, "Asha", 1)
	addResident(t, repo, b, "Ravi", 2)

	removed, appErr := repo.RemoveResident(ctx, r.ID)
	require.Nil(t, appErr)
	assert.Equal(t, "Asha", removed.Name)

	got := requireInvariant(t, repo, b.ID)
	assert.Equal(t, int64(1), got.FilledFlats)
	assert.Equal(t, int64(9), got.EmptyFlats)
}

func TestMoveResident_BothBuildingsStayConsistent(t *testing.T) {
	repo := newTestRepo(t)
	from := createBuilding(t, repo, "Maple Court", 10)
	to := createBuilding(t, repo, "Oak Villa", 4)
	r := addResident(t, repo, from, "Asha", 3)

	moved, appErr := repo.MoveResident(context.Background(), r.ID, to.ID, 1)
	require.Nil(t, appErr)
	assert.Equal(t, to.ID, moved.BuildingID)
	assert.Equal(t, "Oak Villa", moved.BuildingName, "building name and id must agree")
	assert.Equal(t, int64(1), moved.Flat)

	gotFrom := requireInvariant(t, repo, from.ID)
	assert.Equal(t, int64(0), gotFrom.FilledFlats)

	gotTo := requireInvariant(t, repo, to.ID)
	assert.Equal(t, int64(1), gotTo.FilledFlats)
}

func TestMoveResident_TargetFullAbortsWholeMove(t *testing.T) {
	repo := newTestRepo(t)
	from := createBuilding(t, repo, "Maple Court", 10)
	to := createBuilding(t, repo, "Tiny", 1)
	addResident(t, repo, to, "Occupant", 1)
	r := addResident(t, repo, from, "Asha", 3)

	_, appErr := repo.MoveResident(context.Background(), r.ID, to.ID, 1)
	require.NotNil(t, appErr)

	gotFrom := requireInvariant(t, repo, from.ID)
	assert.Equal(t, int64(1), gotFrom.FilledFlats, "source must be untouched after aborted move")

	still, findErr := repo.FindResidentByID(context.Background(), r.ID)
	require.Nil(t, findErr)
	assert.Equal(t, from.ID, still.BuildingID)
}

func TestResizeBuilding_CapacityScenario(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	b := createBuilding(t, repo, "Maple Court", 10)
	addResident(t, repo, b, "A", 1)
	addResident(t, repo, b, "B", 2)
	addResident(t, repo, b, "C", 3)

	got := requireInvariant(t, repo, b.ID)
	require.Equal(t, int64(3), got.FilledFlats)
	require.Equal(t, int64(7), got.EmptyFlats)

	// shrink to 5 while 3 filled succeeds
	resized, appErr := repo.ResizeBuilding(ctx, b.ID, 5)
	require.Nil(t, appErr)
	assert.Equal(t, int64(5), resized.TotalFlats)
	assert.Equal(t, int64(2), resized.EmptyFlats)
	requireInvariant(t, repo, b.ID)

	// shrink to 2 while 3 filled fails with a capacity error
	_, appErr = repo.ResizeBuilding(ctx, b.ID, 2)
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsConsistency())

	got = requireInvariant(t, repo, b.ID)
	assert.Equal(t, int64(5), got.TotalFlats, "failed resize must leave capacity untouched")
}

func TestDeleteBuilding_OnlyWhenEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	b := createBuilding(t, repo, "Maple Court", 3)
	r := addResident(t, repo, b, "Asha", 1)

	appErr := repo.DeleteBuilding(ctx, b.ID)
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsConsistency())

	_, appErr = repo.RemoveResident(ctx, r.ID)
	require.Nil(t, appErr)

	require.Nil(t, repo.DeleteBuilding(ctx, b.ID))
	_, appErr = repo.FindBuildingByID(ctx, b.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestOccupancyRows(t *testing.T) {
	repo := newTestRepo(t)
	a := createBuilding(t, repo, "A Block", 4)
	createBuilding(t, repo, "B Block", 2)
	addResident(t, repo, a, "Asha", 1)

	rows, appErr := repo.OccupancyRows(context.Background())
	require.Nil(t, appErr)
	require.Len(t, rows, 2)
	assert.Equal(t, "A Block", rows[0].BuildingName)
	assert.Equal(t, int64(1), rows[0].FilledFlats)
	assert.Equal(t, int64(3), rows[0].EmptyFlats)
	assert.Equal(t, int64(0), rows[1].FilledFlats)
}

func TestListResidentIDs(t *testing.T) {
	repo := newTestRepo(t)
	a := createBuilding(t, repo, "A Block", 4)
	b := createBuilding(t, repo, "B Block", 4)
	addResident(t, repo, a, "Asha", 1)
	addResident(t, repo, a, "Ravi", 2)
	addResident(t, repo, b, "Meera", 1)

	ids, appErr := repo.ListResidentIDs(context.Background(), "A Block")
	require.Nil(t, appErr)
	assert.Len(t, ids, 2)

	all, appErr := repo.ListAllResidentIDs(context.Background())
	require.Nil(t, appErr)
	assert.Len(t, all, 3)
}

func TestAddResident_ConcurrentRaceForLastFlat(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	b := createBuilding(t, repo, "Race Court", 2)
	addResident(t, repo, b, "Asha", 1)

	// two interleaved adds for the one remaining slot: at most one may
	// land, and the loser's increment must roll back with it
	var wg sync.WaitGroup
	results := make([]*app_error.AppError, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.AddResident(ctx, &entity.Resident{
				Name:       "Racer",
				BuildingID: b.ID,
				Flat:       2,
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, appErr := range results {
		if appErr == nil {
			successes++
		}
	}
	assert.LessOrEqual(t, successes, 1)

	got := requireInvariant(t, repo, b.ID)
	assert.Equal(t, int64(1+successes), got.FilledFlats)
	assert.LessOrEqual(t, got.FilledFlats, got.TotalFlats)
}

func TestAddResident_ConcurrentIncrementsNotLost(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	b := createBuilding(t, repo, "Parallel Court", 8)

	var wg sync.WaitGroup
	results := make([]*app_error.AppError, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.AddResident(ctx, &entity.Resident{
				Name:       "Resident",
				BuildingID: b.ID,
				Flat:       int64(i + 1),
			})
		}(i)
	}
	wg.Wait()

	successes := int64(0)
	for _, appErr := range results {
		if appErr == nil {
			successes++
		}
	}

	// every successful add is exactly one increment, none absorbed by an
	// interleaved read-modify-write
	got := requireInvariant(t, repo, b.ID)
	assert.Equal(t, successes, got.FilledFlats)
}
