package stats_service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	building_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/building"
	complaint_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/complaint"
)

// countingComplaintRepo serves canned aggregate rows; Recompute never
// touches the mutating half of the contract.
type countingComplaintRepo struct {
	total      int64
	byStatus   []complaint_repo.StatusCount
	byCategory []complaint_repo.CategoryCount
	byBuilding []complaint_repo.BuildingComplaintCount
	calls      int
}

func (c *countingComplaintRepo) CountTotal(_ context.Context) (int64, *app_error.AppError) {
	c.calls++
	return c.total, nil
}

func (c *countingComplaintRepo) CountByStatus(_ context.Context) ([]complaint_repo.StatusCount, *app_error.AppError) {
	return c.byStatus, nil
}

func (c *countingComplaintRepo) CountByCategory(_ context.Context) ([]complaint_repo.CategoryCount, *app_error.AppError) {
	return c.byCategory, nil
}

func (c *countingComplaintRepo) CountByBuilding(_ context.Context) ([]complaint_repo.BuildingComplaintCount, *app_error.AppError) {
	return c.byBuilding, nil
}

func (c *countingComplaintRepo) CountOpenForBuilding(_ context.Context, _ string) (int64, *app_error.AppError) {
	return 0, nil
}

func (c *countingComplaintRepo) CreateComplaint(_ context.Context, _ *entity.Complaint) (bson.ObjectID, *app_error.AppError) {
	return bson.ObjectID{}, app_error.NewInternalError("not implemented", "")
}

func (c *countingComplaintRepo) FindComplaintByID(_ context.Context, _ string) (*entity.Complaint, *app_error.AppError) {
	return nil, app_error.NewInternalError("not implemented", "")
}

func (c *countingComplaintRepo) ListForBuilding(_ context.Context, _ string, _, _ int64) ([]entity.Complaint, int64, *app_error.AppError) {
	return nil, 0, app_error.NewInternalError("not implemented", "")
}

func (c *countingComplaintRepo) UpdateComplaint(_ context.Context, _ string, _, _, _ string) *app_error.AppError {
	return app_error.NewInternalError("not implemented", "")
}

func (c *countingComplaintRepo) UpdateStatus(_ context.Context, _, _ string) *app_error.AppError {
	return app_error.NewInternalError("not implemented", "")
}

func (c *countingComplaintRepo) DeleteComplaint(_ context.Context, _ string) *app_error.AppError {
	return app_error.NewInternalError("not implemented", "")
}

func (c *countingComplaintRepo) AddComment(_ context.Context, _ string, _ entity.Comment) *app_error.AppError {
	return app_error.NewInternalError("not implemented", "")
}

func (c *countingComplaintRepo) ToggleLike(_ context.Context, _, _ string) (bool, *app_error.AppError) {
	return false, app_error.NewInternalError("not implemented", "")
}

func newTestService(t *testing.T) (*StatsService, *countingComplaintRepo, *miniredis.Miniredis, building_repo.BuildingRepoContract) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

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

	complaints := &countingComplaintRepo{
		total: 7,
		byStatus: []complaint_repo.StatusCount{
			{Status: entity.StatusPending, Count: 4},
			{Status: entity.StatusResolved, Count: 3},
		},
		byCategory: []complaint_repo.CategoryCount{
			{Category: entity.CategoryPlumbing, Count: 5},
			{Category: entity.CategoryNoise, Count: 2},
		},
		byBuilding: []complaint_repo.BuildingComplaintCount{
			{BuildingName: "Maple Court", Count: 7},
		},
	}

	buildings := building_repo.NewBuildingRepo(db)
	svc := &StatsService{
		ComplaintRepo: complaints,
		BuildingRepo:  buildings,
		Redis:         client,
	}
	return svc, complaints, mr, buildings
}

func TestRecompute_BuildsSnapshotFromSourceRecords(t *testing.T) {
	svc, _, _, buildings := newTestService(t)
	ctx := context.Background()

	b := &entity.Building{Name: "Maple Court", TotalFlats: 10}
	require.Nil(t, buildings.CreateBuilding(ctx, b))
	require.Nil(t, buildings.AddResident(ctx, &entity.Resident{Name: "Asha", BuildingID: b.ID, Flat: 1}))

	snapshot, appErr := svc.Recompute(ctx)
	require.Nil(t, appErr)

	assert.Equal(t, int64(7), snapshot.TotalComplaints)
	assert.Equal(t, int64(4), snapshot.ByStatus[entity.StatusPending])
	assert.Equal(t, int64(3), snapshot.ByStatus[entity.StatusResolved])
	assert.Equal(t, int64(5), snapshot.ByCategory[entity.CategoryPlumbing])

	require.Len(t, snapshot.Buildings, 1)
	occ := snapshot.Buildings[0]
	assert.Equal(t, "Maple Court", occ.BuildingName)
	assert.Equal(t, int64(10), occ.TotalFlats)
	assert.Equal(t, int64(1), occ.FilledFlats)
	assert.Equal(t, int64(9), occ.EmptyFlats)
	assert.Equal(t, int64(7), occ.Complaints)
}

func TestRecompute_CachesSnapshot(t *testing.T) {
	svc, _, mr, _ := newTestService(t)

	_, appErr := svc.Recompute(context.Background())
	require.Nil(t, appErr)

	assert.True(t, mr.Exists("stats:snapshot"))
	ttl := mr.TTL("stats:snapshot")
	assert.Greater(t, ttl.Seconds(), float64(0))
}

func TestGetSnapshot_ServesFromCache(t *testing.T) {
	svc, complaints, _, _ := newTestService(t)
	ctx := context.Background()

	first, appErr := svc.GetSnapshot(ctx)
	require.Nil(t, appErr)
	callsAfterFirst := complaints.calls

	second, appErr := svc.GetSnapshot(ctx)
	require.Nil(t, appErr)

	assert.Equal(t, callsAfterFirst, complaints.calls, "cached snapshot must not hit source records")
	assert.Equal(t, first.TotalComplaints, second.TotalComplaints)
}

func TestGetSnapshot_RecomputesAfterExpiry(t *testing.T) {
	svc, complaints, mr, _ := newTestService(t)
	ctx := context.Background()

	_, appErr := svc.GetSnapshot(ctx)
	require.Nil(t, appErr)
	callsAfterFirst := complaints.calls

	mr.FastForward(6 * time.Minute)

	_, appErr = svc.GetSnapshot(ctx)
	require.Nil(t, appErr)
	assert.Greater(t, complaints.calls, callsAfterFirst)
}
