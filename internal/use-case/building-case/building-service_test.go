package building_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dispatch"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/building_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	building_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/building"
	complaint_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/complaint"
)

type fakeSink struct {
	events []dispatch.DomainEvent
}

func (f *fakeSink) Dispatch(_ context.Context, ev dispatch.DomainEvent) {
	f.events = append(f.events, ev)
}

func (f *fakeSink) eventsOfType(eventType string) []dispatch.DomainEvent {
	var out []dispatch.DomainEvent
	for _, ev := range f.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// stubComplaintRepo only answers the open-complaint count the delete
// gate asks for.
type stubComplaintRepo struct {
	openCount int64
}

func (s *stubComplaintRepo) CountOpenForBuilding(_ context.Context, _ string) (int64, *app_error.AppError) {
	return s.openCount, nil
}

func (s *stubComplaintRepo) CreateComplaint(_ context.Context, _ *entity.Complaint) (bson.ObjectID, *app_error.AppError) {
	return bson.ObjectID{}, app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) FindComplaintByID(_ context.Context, _ string) (*entity.Complaint, *app_error.AppError) {
	return nil, app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) ListForBuilding(_ context.Context, _ string, _, _ int64) ([]entity.Complaint, int64, *app_error.AppError) {
	return nil, 0, app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) UpdateComplaint(_ context.Context, _ string, _, _, _ string) *app_error.AppError {
	return app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) UpdateStatus(_ context.Context, _, _ string) *app_error.AppError {
	return app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) DeleteComplaint(_ context.Context, _ string) *app_error.AppError {
	return app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) AddComment(_ context.Context, _ string, _ entity.Comment) *app_error.AppError {
	return app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) ToggleLike(_ context.Context, _, _ string) (bool, *app_error.AppError) {
	return false, app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) CountByStatus(_ context.Context) ([]complaint_repo.StatusCount, *app_error.AppError) {
	return nil, app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) CountByCategory(_ context.Context) ([]complaint_repo.CategoryCount, *app_error.AppError) {
	return nil, app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) CountByBuilding(_ context.Context) ([]complaint_repo.BuildingComplaintCount, *app_error.AppError) {
	return nil, app_error.NewInternalError("not implemented", "")
}

func (s *stubComplaintRepo) CountTotal(_ context.Context) (int64, *app_error.AppError) {
	return 0, app_error.NewInternalError("not implemented", "")
}

func newTestService(t *testing.T) (*BuildingService, *fakeSink, *stubComplaintRepo) {
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

	sink := &fakeSink{}
	complaints := &stubComplaintRepo{}
	svc := &BuildingService{
		BuildingRepo:  building_repo.NewBuildingRepo(db),
		ComplaintRepo: complaints,
		Dispatcher:    sink,
	}
	return svc, sink, complaints
}

func TestCreateBuilding_DispatchesOccupancy(t *testing.T) {
	svc, sink, _ := newTestService(t)
	ctx := context.Background()

	resp, appErr := svc.CreateBuilding(ctx, building_dto.CreateBuildingRequest{Name: "Maple Court", TotalFlats: 12})
	require.Nil(t, appErr)
	assert.Equal(t, int64(12), resp.TotalFlats)
	assert.Equal(t, int64(0), resp.FilledFlats)
	assert.Equal(t, int64(12), resp.EmptyFlats)

	created := sink.eventsOfType(dispatch.EventBuildingCreated)
	require.Len(t, created, 1)
	assert.Equal(t, "Maple Court", created[0].BuildingName)
	assert.Equal(t, int64(12), created[0].Data["emptyFlats"])
}

func TestAddResident_UpdatesCountersAndNotifies(t *testing.T) {
	svc, sink, _ := newTestService(t)
	ctx := context.Background()

	b, appErr := svc.CreateBuilding(ctx, building_dto.CreateBuildingRequest{Name: "Maple Court", TotalFlats: 2})
	require.Nil(t, appErr)

	resident, appErr := svc.AddResident(ctx, b.ID, building_dto.AddResidentRequest{
		ResidentID: "6f1e1c1a-9f6e-4ba1-9a58-0f2d9c6c1111",
		Name:       "Asha",
		Flat:       1,
	})
	require.Nil(t, appErr)
	assert.Equal(t, "Maple Court", resident.BuildingName)

	updated := sink.eventsOfType(dispatch.EventBuildingUpdated)
	require.Len(t, updated, 1)
	assert.Equal(t, int64(1), updated[0].Data["filledFlats"])
	assert.Equal(t, int64(1), updated[0].Data["emptyFlats"])
}

func TestAddResident_FullBuildingRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b, appErr := svc.CreateBuilding(ctx, building_dto.CreateBuildingRequest{Name: "Maple Court", TotalFlats: 1})
	require.Nil(t, appErr)

	_, appErr = svc.AddResident(ctx, b.ID, building_dto.AddResidentRequest{
		ResidentID: "6f1e1c1a-9f6e-4ba1-9a58-0f2d9c6c1111",
		Name:       "Asha",
		Flat:       1,
	})
	require.Nil(t, appErr)

	_, appErr = svc.AddResident(ctx, b.ID, building_dto.AddResidentRequest{
		ResidentID: "6f1e1c1a-9f6e-4ba1-9a58-0f2d9c6c2222",
		Name:       "Ravi",
		Flat:       2,
	})
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsConsistency())
}

func TestMoveResident_DispatchesForBothBuildings(t *testing.T) {
	svc, sink, _ := newTestService(t)
	ctx := context.Background()

	src, appErr := svc.CreateBuilding(ctx, building_dto.CreateBuildingRequest{Name: "Maple Court", TotalFlats: 2})
	require.Nil(t, appErr)
	dst, appErr := svc.CreateBuilding(ctx, building_dto.CreateBuildingRequest{Name: "Oak Rise", TotalFlats: 2})
	require.Nil(t, appErr)

	const residentID = "6f1e1c1a-9f6e-4ba1-9a58-0f2d9c6c1111"
	_, appErr = svc.AddResident(ctx, src.ID, building_dto.AddResidentRequest{ResidentID: residentID, Name: "Asha", Flat: 1})
	require.Nil(t, appErr)

	sink.events = nil
	moved, appErr := svc.MoveResident(ctx, residentID, building_dto.MoveResidentRequest{TargetBuildingID: dst.ID, Flat: 2})
	require.Nil(t, appErr)
	assert.Equal(t, "Oak Rise", moved.BuildingName)

	updated := sink.eventsOfType(dispatch.EventBuildingUpdated)
	require.Len(t, updated, 2)
	names := []string{updated[0].BuildingName, updated[1].BuildingName}
	assert.ElementsMatch(t, []string{"Maple Court", "Oak Rise"}, names)
}

func TestDeleteBuilding_BlockedByOpenComplaints(t *testing.T) {
	svc, sink, complaints := newTestService(t)
	ctx := context.Background()

	b, appErr := svc.CreateBuilding(ctx, building_dto.CreateBuildingRequest{Name: "Maple Court", TotalFlats: 2})
	require.Nil(t, appErr)

	complaints.openCount = 3
	appErr = svc.DeleteBuilding(ctx, b.ID)
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsConsistency())
	assert.Empty(t, sink.eventsOfType(dispatch.EventBuildingDeleted))

	complaints.openCount = 0
	require.Nil(t, svc.DeleteBuilding(ctx, b.ID))
	assert.Len(t, sink.eventsOfType(dispatch.EventBuildingDeleted), 1)
}

func TestDeleteBuilding_BlockedWhileOccupied(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b, appErr := svc.CreateBuilding(ctx, building_dto.CreateBuildingRequest{Name: "Maple Court", TotalFlats: 2})
	require.Nil(t, appErr)
	_, appErr = svc.AddResident(ctx, b.ID, building_dto.AddResidentRequest{
		ResidentID: "6f1e1c1a-9f6e-4ba1-9a58-0f2d9c6c1111",
		Name:       "Asha",
		Flat:       1,
	})
	require.Nil(t, appErr)

	appErr = svc.DeleteBuilding(ctx, b.ID)
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsConsistency())
}

func TestResizeBuilding_CannotShrinkBelowOccupancy(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b, appErr := svc.CreateBuilding(ctx, building_dto.CreateBuildingRequest{Name: "Maple Court", TotalFlats: 3})
	require.Nil(t, appErr)
	for i, id := range []string{
		"6f1e1c1a-9f6e-4ba1-9a58-0f2d9c6c1111",
		"6f1e1c1a-9f6e-4ba1-9a58-0f2d9c6c2222",
	} {
		_, appErr = svc.AddResident(ctx, b.ID, building_dto.AddResidentRequest{ResidentID: id, Name: "Resident", Flat: int64(i + 1)})
		require.Nil(t, appErr)
	}

	_, appErr = svc.ResizeBuilding(ctx, b.ID, building_dto.ResizeBuildingRequest{TotalFlats: 1})
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsConsistency())

	resized, appErr := svc.ResizeBuilding(ctx, b.ID, building_dto.ResizeBuildingRequest{TotalFlats: 5})
	require.Nil(t, appErr)
	assert.Equal(t, int64(5), resized.TotalFlats)
	assert.Equal(t, int64(2), resized.FilledFlats)
	assert.Equal(t, int64(3), resized.EmptyFlats)
}

func TestParseID_RejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, appErr := svc.GetBuilding(context.Background(), "not-a-uuid")
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}
