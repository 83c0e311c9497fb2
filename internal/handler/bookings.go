package handler

import (
	"net/http"

	"hotelier/internal/apierror"
	"hotelier/internal/dto"
	"hotelier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingsHandler struct{ svc service.BookingService }

func NewBookingsHandler(svc service.BookingService) *BookingsHandler {
	return &BookingsHandler{svc: svc}
}

// Create godoc
// @Summary      Create a booking
// @Description  Reserves a room for a guest over a date range. Rejects overlapping active bookings on the same room.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateBookingRequest true "Booking details"
// @Success      201  {object} dto.BookingResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/bookings [post]
func (h *BookingsHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      200 {object} dto.BookingResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/bookings/{id} [get]
func (h *BookingsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        active   query string false "true | false | all"
// @Param        guest_id query string false "Filter by guest"
// @Param        room_id  query string false "Filter by room"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.BookingListResponse
// @Router       /v1/bookings [get]
func (h *BookingsHandler) List(c *gin.Context) {
	var filter dto.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckIn godoc
// @Summary      Check a booking in
// @Description  Marks the booking checked in and flips the room to occupied.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      200 {object} dto.BookingResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/bookings/{id}/check-in [post]
func (h *BookingsHandler) CheckIn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.CheckIn(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckOut godoc
// @Summary      Check a booking out
// @Description  Deactivates the booking and flips the room to cleaning.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      200 {object} dto.BookingResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/bookings/{id}/check-out [post]
func (h *BookingsHandler) CheckOut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.CheckOut(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
