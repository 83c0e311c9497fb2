package handler

import (
	"net/http"
	"strconv"

	"hotelier/internal/apierror"
	"hotelier/internal/dto"
	"hotelier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentsHandler struct{ svc service.PaymentService }

func NewPaymentsHandler(svc service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

// RecordInitial godoc
// @Summary      Record a booking's first payment
// @Description  Opens the booking's payment ledger, fixing the total bill and room rate for later installments. One per booking.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordInitialPaymentRequest true "Payment details"
// @Success      201  {object} dto.PaymentResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/payments [post]
func (h *PaymentsHandler) RecordInitial(c *gin.Context) {
	var req dto.RecordInitialPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordInitialPayment(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordInstallment godoc
// @Summary      Record an installment
// @Description  Appends a payment to an existing ledger and reconciles the remaining balance against all prior payments.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordInstallmentRequest true "Installment details"
// @Success      201  {object} dto.PaymentResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/payments/installments [post]
func (h *PaymentsHandler) RecordInstallment(c *gin.Context) {
	var req dto.RecordInstallmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordInstallment(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payment UUID"
// @Success      200 {object} dto.PaymentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/payments/{id} [get]
func (h *PaymentsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetPayment(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByBooking godoc
// @Summary      List a booking's payments
// @Description  Returns the booking's payment rows ordered oldest first.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      200 {array} dto.PaymentResponse
// @Router       /v1/bookings/{id}/payments [get]
func (h *PaymentsHandler) ListByBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.ListByBooking(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Edit a payment
// @Description  Patches the supplied fields and re-derives balance and status from the edited row. An explicit status wins over the derived one.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "Payment UUID"
// @Param        body body dto.UpdatePaymentRequest true "Fields to change"
// @Success      200  {object} dto.PaymentResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/payments/{id} [put]
func (h *PaymentsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdatePaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a payment
// @Description  Removes a payment row. The only row of a booking cannot be deleted.
// @Tags         payments
// @Security     BearerAuth
// @Param        id path string true "Payment UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/payments/{id} [delete]
func (h *PaymentsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeletePayment(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats godoc
// @Summary      Payment statistics
// @Description  Totals, per-status and per-mode breakdowns, and the most recent payments.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        recent query int false "How many recent payments to include"
// @Success      200 {object} dto.PaymentStatsResponse
// @Router       /v1/payments/stats [get]
func (h *PaymentsHandler) Stats(c *gin.Context) {
	recent, _ := strconv.Atoi(c.DefaultQuery("recent", "0"))
	resp, err := h.svc.Statistics(c.Request.Context(), recent)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
