package handler

import (
	"net/http"

	"hotelier/internal/apierror"
	"hotelier/internal/dto"
	"hotelier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomsHandler struct{ svc service.RoomService }

func NewRoomsHandler(svc service.RoomService) *RoomsHandler { return &RoomsHandler{svc: svc} }

// Create godoc
// @Summary      Add a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateRoomRequest true "Room details"
// @Success      201  {object} dto.RoomResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/rooms [post]
func (h *RoomsHandler) Create(c *gin.Context) {
	var req dto.CreateRoomRequest
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
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room UUID"
// @Success      200 {object} dto.RoomResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/rooms/{id} [get]
func (h *RoomsHandler) Get(c *gin.Context) {
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
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "available | occupied | cleaning | maintenance | all"
// @Param        type   query string false "Room type"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.RoomListResponse
// @Router       /v1/rooms [get]
func (h *RoomsHandler) List(c *gin.Context) {
	var filter dto.RoomFilter
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

// Update godoc
// @Summary      Edit a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                true "Room UUID"
// @Param        body body dto.UpdateRoomRequest true "Fields to change"
// @Success      200  {object} dto.RoomResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/rooms/{id} [put]
func (h *RoomsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateRoomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Retire a room
// @Description  Soft-deletes the room so history stays intact. Occupied rooms cannot be retired.
// @Tags         rooms
// @Security     BearerAuth
// @Param        id path string true "Room UUID"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/rooms/{id} [delete]
func (h *RoomsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Change a room's status
// @Description  Applies an operator-initiated status transition and records it in the room's status log.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "Room UUID"
// @Param        body body dto.UpdateRoomStatusRequest true "New status and reason"
// @Success      200  {object} dto.RoomResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/rooms/{id}/status [put]
func (h *RoomsHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateRoomStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StatusLog godoc
// @Summary      Room status history
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room UUID"
// @Success      200 {array} dto.RoomStatusLogResponse
// @Router       /v1/rooms/{id}/status-log [get]
func (h *RoomsHandler) StatusLog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.StatusLog(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RateByNumber godoc
// @Summary      Public room rate lookup
// @Description  Returns a room's nightly rate and availability by room number. Served from cache when warm.
// @Tags         rooms
// @Produce      json
// @Param        number path string true "Room number"
// @Success      200 {object} dto.RoomRateResponse
// @Failure      404 {object} apierror.APIError
// @Router       /public/rooms/{number}/rate [get]
func (h *RoomsHandler) RateByNumber(c *gin.Context) {
	resp, err := h.svc.RateByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
