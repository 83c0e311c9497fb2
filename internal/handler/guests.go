package handler

import (
	"net/http"

	"hotelier/internal/apierror"
	"hotelier/internal/dto"
	"hotelier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GuestsHandler struct{ svc service.GuestService }

func NewGuestsHandler(svc service.GuestService) *GuestsHandler { return &GuestsHandler{svc: svc} }

// Create godoc
// @Summary      Register a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateGuestRequest true "Guest details"
// @Success      201  {object} dto.GuestResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/guests [post]
func (h *GuestsHandler) Create(c *gin.Context) {
	var req dto.CreateGuestRequest
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
// @Summary      Get a guest
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Guest UUID"
// @Success      200 {object} dto.GuestResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/guests/{id} [get]
func (h *GuestsHandler) Get(c *gin.Context) {
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
// @Summary      List guests
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Match on name, email or phone"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.GuestListResponse
// @Router       /v1/guests [get]
func (h *GuestsHandler) List(c *gin.Context) {
	var filter dto.GuestFilter
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
// @Summary      Edit a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Guest UUID"
// @Param        body body dto.UpdateGuestRequest true "Fields to change"
// @Success      200  {object} dto.GuestResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/guests/{id} [put]
func (h *GuestsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateGuestRequest
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
// @Summary      Remove a guest
// @Description  Soft-deletes the guest so past bookings keep their reference.
// @Tags         guests
// @Security     BearerAuth
// @Param        id path string true "Guest UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/guests/{id} [delete]
func (h *GuestsHandler) Delete(c *gin.Context) {
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
