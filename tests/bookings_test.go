package tests

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/dto"
	"hotelier/internal/model"
	"hotelier/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBookingSvc(t *testing.T) (service.BookingService, *stubBookingRepo, *stubRoomRepo, uuid.UUID, uuid.UUID) {
	t.Helper()
	bookingRepo := newStubBookingRepo()
	guestRepo := newStubGuestRepo()
	roomRepo := newStubRoomRepo()
	bookingRepo.guests = guestRepo
	bookingRepo.rooms = roomRepo

	guest := &model.Guest{FullName: "Ada Lovelace", Active: true}
	require.NoError(t, guestRepo.Create(context.Background(), guest))

	room := &model.Room{Number: "101", Type: "double", Rate: dec("100.00"), Status: model.RoomStatusAvailable, Active: true}
	require.NoError(t, roomRepo.Create(context.Background(), room))

	roomSvc := service.NewRoomService(roomRepo, nil)
	svc := service.NewBookingService(bookingRepo, guestRepo, roomSvc, nil)
	return svc, bookingRepo, roomRepo, guest.ID, room.ID
}

func bookingReq(guestID, roomID uuid.UUID, from, to time.Time) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		GuestID:        guestID.String(),
		RoomID:         roomID.String(),
		CheckIn:        from,
		CheckOut:       to,
		NumberOfGuests: 2,
	}
}

func TestCreateBooking_Succeeds(t *testing.T) {
	svc, _, _, guestID, roomID := buildBookingSvc(t)
	from := time.Now().Add(24 * time.Hour)

	resp, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(48*time.Hour)))
	require.NoError(t, err)

	assert.True(t, resp.IsActive)
	assert.Equal(t, "Ada Lovelace", resp.GuestName)
	assert.Equal(t, "101", resp.RoomNumber)
}

func TestCreateBooking_OverlapIsConflict(t *testing.T) {
	svc, _, _, guestID, roomID := buildBookingSvc(t)
	from := time.Now().Add(24 * time.Hour)

	_, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(72*time.Hour)))
	require.NoError(t, err)

	// Second stay starts inside the first one's window.
	_, err = svc.Create(context.Background(), bookingReq(guestID, roomID, from.Add(24*time.Hour), from.Add(96*time.Hour)))
	require.Error(t, err)
	assert.True(t, service.IsConflict(err))
}

func TestCreateBooking_BackToBackStaysAllowed(t *testing.T) {
	svc, _, _, guestID, roomID := buildBookingSvc(t)
	from := time.Now().Add(24 * time.Hour)
	mid := from.Add(48 * time.Hour)

	_, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, mid))
	require.NoError(t, err)

	// Check-in on the previous stay's check-out day does not overlap.
	_, err = svc.Create(context.Background(), bookingReq(guestID, roomID, mid, mid.Add(48*time.Hour)))
	require.NoError(t, err)
}

func TestCreateBooking_CheckOutBeforeCheckIn(t *testing.T) {
	svc, _, _, guestID, roomID := buildBookingSvc(t)
	from := time.Now().Add(24 * time.Hour)

	_, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(-24*time.Hour)))
	require.Error(t, err)
	assert.True(t, service.IsInvalid(err))
}

func TestCreateBooking_UnknownGuest(t *testing.T) {
	svc, _, _, _, roomID := buildBookingSvc(t)
	from := time.Now().Add(24 * time.Hour)

	_, err := svc.Create(context.Background(), bookingReq(uuid.New(), roomID, from, from.Add(24*time.Hour)))
	require.Error(t, err)
	assert.True(t, service.IsNotFound(err))
}

func TestCreateBooking_UnknownRoom(t *testing.T) {
	svc, _, _, guestID, _ := buildBookingSvc(t)
	from := time.Now().Add(24 * time.Hour)

	_, err := svc.Create(context.Background(), bookingReq(guestID, uuid.New(), from, from.Add(24*time.Hour)))
	require.Error(t, err)
	assert.True(t, service.IsNotFound(err))
}

func TestCheckIn_FlipsRoomToOccupied(t *testing.T) {
	svc, _, roomRepo, guestID, roomID := buildBookingSvc(t)
	from := time.Now()

	created, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(48*time.Hour)))
	require.NoError(t, err)

	resp, err := svc.CheckIn(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.NotNil(t, resp.CheckedInAt)

	room, err := roomRepo.FindByID(context.Background(), roomID)
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusOccupied, room.Status)

	entries, err := roomRepo.ListStatusLog(context.Background(), roomID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.RoomStatusAvailable, entries[0].FromStatus)
	assert.Equal(t, model.RoomStatusOccupied, entries[0].ToStatus)
	require.NotNil(t, entries[0].BookingID)
	assert.Equal(t, created.ID, entries[0].BookingID.String())
}

func TestCheckIn_TwiceIsConflict(t *testing.T) {
	svc, _, _, guestID, roomID := buildBookingSvc(t)
	from := time.Now()

	created, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(48*time.Hour)))
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	_, err = svc.CheckIn(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), id)
	require.Error(t, err)
	assert.True(t, service.IsConflict(err))
}

func TestCheckOut_DeactivatesAndFlipsRoomToCleaning(t *testing.T) {
	svc, bookingRepo, roomRepo, guestID, roomID := buildBookingSvc(t)
	from := time.Now()

	created, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(48*time.Hour)))
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	_, err = svc.CheckIn(context.Background(), id)
	require.NoError(t, err)

	resp, err := svc.CheckOut(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.NotNil(t, resp.CheckedOutAt)

	room, err := roomRepo.FindByID(context.Background(), roomID)
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusCleaning, room.Status)

	stored, err := bookingRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestCheckOut_InactiveBookingIsConflict(t *testing.T) {
	svc, _, _, guestID, roomID := buildBookingSvc(t)
	from := time.Now()

	created, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(48*time.Hour)))
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	_, err = svc.CheckOut(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), id)
	require.Error(t, err)
	assert.True(t, service.IsConflict(err))
}

func TestCheckOut_FreesRoomForNewBookings(t *testing.T) {
	svc, _, _, guestID, roomID := buildBookingSvc(t)
	from := time.Now()

	created, err := svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(48*time.Hour)))
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)

	// The deactivated booking no longer blocks the window.
	_, err = svc.Create(context.Background(), bookingReq(guestID, roomID, from, from.Add(48*time.Hour)))
	require.NoError(t, err)
}
