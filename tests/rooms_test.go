package tests

import (
	"context"
	"testing"

	"hotelier/internal/dto"
	"hotelier/internal/model"
	"hotelier/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRoomSvc() (service.RoomService, *stubRoomRepo) {
	repo := newStubRoomRepo()
	return service.NewRoomService(repo, nil), repo
}

func TestCreateRoom_DefaultsToAvailable(t *testing.T) {
	svc, _ := buildRoomSvc()

	resp, err := svc.Create(context.Background(), dto.CreateRoomRequest{
		Number: "204", Type: "suite", Floor: 2, Rate: dec("250.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoomStatusAvailable, resp.Status)
	assert.Equal(t, "204", resp.Number)
}

func TestCreateRoom_DuplicateNumberIsConflict(t *testing.T) {
	svc, _ := buildRoomSvc()

	_, err := svc.Create(context.Background(), dto.CreateRoomRequest{Number: "204", Type: "suite", Rate: dec("250.00")})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateRoomRequest{Number: "204", Type: "double", Rate: dec("120.00")})
	require.Error(t, err)
	assert.True(t, service.IsConflict(err))
}

func TestUpdateRoomStatus_WritesImmutableLogEntry(t *testing.T) {
	svc, repo := buildRoomSvc()

	created, err := svc.Create(context.Background(), dto.CreateRoomRequest{Number: "301", Type: "single", Rate: dec("80.00")})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.UpdateStatus(context.Background(), id, dto.UpdateRoomStatusRequest{
		Status: model.RoomStatusMaintenance,
		Reason: "broken AC unit",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusMaintenance, resp.Status)

	entries, err := repo.ListStatusLog(context.Background(), id, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.RoomStatusAvailable, entries[0].FromStatus)
	assert.Equal(t, model.RoomStatusMaintenance, entries[0].ToStatus)
	assert.Equal(t, "broken AC unit", entries[0].Reason)
	assert.Nil(t, entries[0].BookingID)
}

func TestUpdateRoomStatus_NoopTransitionWritesNothing(t *testing.T) {
	svc, repo := buildRoomSvc()

	created, err := svc.Create(context.Background(), dto.CreateRoomRequest{Number: "301", Type: "single", Rate: dec("80.00")})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = svc.UpdateStatus(context.Background(), id, dto.UpdateRoomStatusRequest{
		Status: model.RoomStatusAvailable,
		Reason: "already available",
	})
	require.NoError(t, err)

	entries, err := repo.ListStatusLog(context.Background(), id, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStatusLog_NewestFirst(t *testing.T) {
	svc, _ := buildRoomSvc()

	created, err := svc.Create(context.Background(), dto.CreateRoomRequest{Number: "301", Type: "single", Rate: dec("80.00")})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = svc.UpdateStatus(context.Background(), id, dto.UpdateRoomStatusRequest{Status: model.RoomStatusCleaning, Reason: "deep clean"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), id, dto.UpdateRoomStatusRequest{Status: model.RoomStatusAvailable, Reason: "clean done"})
	require.NoError(t, err)

	entries, err := svc.StatusLog(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.RoomStatusAvailable, entries[0].ToStatus)
	assert.Equal(t, model.RoomStatusCleaning, entries[1].ToStatus)
}

func TestDeleteRoom_OccupiedIsConflict(t *testing.T) {
	svc, _ := buildRoomSvc()

	created, err := svc.Create(context.Background(), dto.CreateRoomRequest{Number: "301", Type: "single", Rate: dec("80.00")})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = svc.UpdateStatus(context.Background(), id, dto.UpdateRoomStatusRequest{Status: model.RoomStatusOccupied, Reason: "walk-in guest"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), id)
	require.Error(t, err)
	assert.True(t, service.IsConflict(err))
}

func TestRateByNumber_ReturnsRate(t *testing.T) {
	svc, _ := buildRoomSvc()

	_, err := svc.Create(context.Background(), dto.CreateRoomRequest{Number: "410", Type: "double", Rate: dec("140.00")})
	require.NoError(t, err)

	resp, err := svc.RateByNumber(context.Background(), "410")
	require.NoError(t, err)
	assert.True(t, resp.Rate.Equal(dec("140.00")))
	assert.Equal(t, model.RoomStatusAvailable, resp.Status)
}

func TestRateByNumber_UnknownRoom(t *testing.T) {
	svc, _ := buildRoomSvc()

	_, err := svc.RateByNumber(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, service.IsNotFound(err))
}
