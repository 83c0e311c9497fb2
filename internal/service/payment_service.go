package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/dto"
	"hotelier/internal/infra"
	"hotelier/internal/model"
	"hotelier/internal/repository"
	"hotelier/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	statsCacheView = "payments/stats"
	statsCacheTTL  = 5 * time.Minute

	defaultRecentLimit = 5
)

// PaymentService owns the booking payment ledger: it computes balance and
// status on every write and rejects operations that would leave a booking's
// billing record inconsistent.
type PaymentService interface {
	RecordInitialPayment(ctx context.Context, req dto.RecordInitialPaymentRequest) (*dto.PaymentResponse, error)
	RecordInstallment(ctx context.Context, req dto.RecordInstallmentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]dto.PaymentResponse, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context, recentLimit int) (*dto.PaymentStatsResponse, error)
}

type paymentService struct {
	payments   repository.PaymentRepository
	bookings   repository.BookingRepository
	settings   *SettingsService
	cache      *infra.Cache
	dispatcher *worker.Dispatcher
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	settings *SettingsService,
	cache *infra.Cache,
	dispatcher *worker.Dispatcher,
) PaymentService {
	return &paymentService{
		payments:   payments,
		bookings:   bookings,
		settings:   settings,
		cache:      cache,
		dispatcher: dispatcher,
	}
}

// deriveStatus applies the three-way balance rule. A non-positive balance is
// clamped to zero and marks the bill completed; a balance below the total
// bill means a partial payment; anything else is still pending.
func deriveStatus(balance, totalBill decimal.Decimal) (string, decimal.Decimal) {
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		return model.PaymentStatusCompleted, decimal.Zero
	case balance.LessThan(totalBill):
		return model.PaymentStatusPartial, balance
	default:
		return model.PaymentStatusPending, balance
	}
}

// ── RecordInitialPayment ──────────────────────────────────────────────────────
// Opens the booking's ledger. The total bill and room rate recorded here are
// the billing basis every later installment carries unchanged.

func (s *paymentService) RecordInitialPayment(ctx context.Context, req dto.RecordInitialPaymentRequest) (*dto.PaymentResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, invalidf("invalid booking id")
	}

	if _, err := s.bookings.FindByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("booking not found")
		}
		return nil, persistence("payments.record_initial: find booking", err)
	}

	// The billing basis is immutable once the first row exists.
	n, err := s.payments.CountByBooking(ctx, bookingID)
	if err != nil {
		return nil, persistence("payments.record_initial: count", err)
	}
	if n > 0 {
		return nil, conflictf("booking already has a payment record; record an installment instead")
	}

	deposit := decimal.Zero
	if req.DepositPaid != nil {
		deposit = *req.DepositPaid
	}

	// Deposit is informational on the opening row: the balance reflects the
	// total bill minus this payment only.
	status, balance := deriveStatus(req.TotalBill.Sub(req.Amount), req.TotalBill)

	p := &model.Payment{
		BookingID:           bookingID,
		Amount:              req.Amount,
		DepositPaid:         deposit,
		RoomRate:            req.RoomRate,
		TotalBill:           req.TotalBill,
		DiscountType:        req.DiscountType,
		DiscountAmount:      req.DiscountAmount,
		BalanceRemaining:    balance,
		Status:              status,
		PaymentMode:         req.PaymentMode,
		ReceiptNumber:       req.ReceiptNumber,
		MobileMoneyProvider: req.MobileMoneyProvider,
		MobileMoneyNumber:   req.MobileMoneyNumber,
		PaymentDate:         time.Now().UTC(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, persistence("payments.record_initial: create", err)
	}

	s.invalidate(ctx, statsCacheView, "payments", "bookings")
	s.maybeSendReceipt(ctx, p, req.GuestEmail)

	return toPaymentResponse(p), nil
}

// ── RecordInstallment ─────────────────────────────────────────────────────────
// Appends a payment against a booking that already has a ledger. The new
// balance reconciles against the sum of all prior rows.

func (s *paymentService) RecordInstallment(ctx context.Context, req dto.RecordInstallmentRequest) (*dto.PaymentResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, invalidf("invalid booking id")
	}

	if _, err := s.bookings.FindByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("booking not found")
		}
		return nil, persistence("payments.record_installment: find booking", err)
	}

	priors, err := s.payments.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, persistence("payments.record_installment: list prior", err)
	}
	if len(priors) == 0 {
		return nil, notFoundf("booking has no payment record; record the initial payment first")
	}

	// The earliest row fixed the billing basis.
	first := priors[0]

	totalPaid := decimal.Zero
	for _, prior := range priors {
		totalPaid = totalPaid.Add(prior.Amount)
	}

	status, balance := deriveStatus(first.TotalBill.Sub(totalPaid).Sub(req.Amount), first.TotalBill)

	p := &model.Payment{
		BookingID:           bookingID,
		Amount:              req.Amount,
		RoomRate:            first.RoomRate,
		TotalBill:           first.TotalBill,
		BalanceRemaining:    balance,
		Status:              status,
		PaymentMode:         req.PaymentMode,
		ReceiptNumber:       req.ReceiptNumber,
		MobileMoneyProvider: req.MobileMoneyProvider,
		MobileMoneyNumber:   req.MobileMoneyNumber,
		PaymentDate:         time.Now().UTC(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, persistence("payments.record_installment: create", err)
	}

	s.invalidate(ctx, statsCacheView, "payments", "bookings")
	s.maybeSendReceipt(ctx, p, req.GuestEmail)

	return toPaymentResponse(p), nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *paymentService) GetPayment(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("payment not found")
		}
		return nil, persistence("payments.get: find", err)
	}
	return toPaymentResponse(p), nil
}

func (s *paymentService) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, persistence("payments.list_by_booking", err)
	}
	resp := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, *toPaymentResponse(&payments[i]))
	}
	return resp, nil
}

// ── UpdatePayment ─────────────────────────────────────────────────────────────
// Edits re-derive balance and status from the patched row's own fields only;
// sibling rows are not re-summed. A caller-supplied status wins over the
// derived one.

func (s *paymentService) UpdatePayment(ctx context.Context, id uuid.UUID, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("payment not found")
		}
		return nil, persistence("payments.update: find", err)
	}

	recompute := false
	if req.Amount != nil {
		p.Amount = *req.Amount
		recompute = true
	}
	if req.DepositPaid != nil {
		p.DepositPaid = *req.DepositPaid
		recompute = true
	}
	if req.PaymentMode != nil {
		p.PaymentMode = *req.PaymentMode
	}
	if req.ReceiptNumber != nil {
		p.ReceiptNumber = req.ReceiptNumber
	}
	if req.DiscountType != nil {
		p.DiscountType = req.DiscountType
	}
	if req.DiscountAmount != nil {
		p.DiscountAmount = req.DiscountAmount
	}
	if req.MobileMoneyProvider != nil {
		p.MobileMoneyProvider = req.MobileMoneyProvider
	}
	if req.MobileMoneyNumber != nil {
		p.MobileMoneyNumber = req.MobileMoneyNumber
	}

	if recompute {
		p.Status, p.BalanceRemaining = deriveStatus(
			p.TotalBill.Sub(p.Amount).Sub(p.DepositPaid), p.TotalBill)
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := s.payments.Update(ctx, p); err != nil {
		return nil, persistence("payments.update: save", err)
	}

	s.invalidate(ctx, statsCacheView, "payments", "bookings")
	return toPaymentResponse(p), nil
}

// ── DeletePayment ─────────────────────────────────────────────────────────────

func (s *paymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("payment not found")
		}
		return persistence("payments.delete: find", err)
	}

	// The sole row holds the booking's billing basis; deleting it would
	// leave nothing to reconcile installments against.
	n, err := s.payments.CountByBooking(ctx, p.BookingID)
	if err != nil {
		return persistence("payments.delete: count", err)
	}
	if n <= 1 {
		return conflictf("Cannot delete the only payment record for a booking. Edit it instead.")
	}

	if err := s.payments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("payment not found")
		}
		return persistence("payments.delete", err)
	}

	s.invalidate(ctx, statsCacheView, "payments", "bookings")
	return nil
}

// ── Statistics ────────────────────────────────────────────────────────────────
// Pure aggregation; the default-shaped result is cached until the next
// mutating operation invalidates it.

func (s *paymentService) Statistics(ctx context.Context, recentLimit int) (*dto.PaymentStatsResponse, error) {
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
		if s.settings != nil {
			recentLimit = s.settings.Snapshot().StatsRecentLimit
		}
	}

	cacheable := s.cache != nil && s.canCacheStats(recentLimit)
	if cacheable {
		var cached dto.PaymentStatsResponse
		if s.cache.GetJSON(ctx, statsCacheView, &cached) {
			return &cached, nil
		}
	}

	count, total, err := s.payments.TotalAgg(ctx)
	if err != nil {
		return nil, persistence("payments.stats: totals", err)
	}
	byStatus, err := s.payments.AggregateByStatus(ctx)
	if err != nil {
		return nil, persistence("payments.stats: by status", err)
	}
	byMode, err := s.payments.AggregateByMode(ctx)
	if err != nil {
		return nil, persistence("payments.stats: by mode", err)
	}
	recent, err := s.payments.Recent(ctx, recentLimit)
	if err != nil {
		return nil, persistence("payments.stats: recent", err)
	}

	resp := &dto.PaymentStatsResponse{
		TotalCount:  count,
		TotalAmount: total,
		ByStatus:    groupAggMap(byStatus),
		ByMode:      groupAggMap(byMode),
		Recent:      make([]dto.PaymentResponse, 0, len(recent)),
	}
	for i := range recent {
		resp.Recent = append(resp.Recent, *toPaymentResponse(&recent[i]))
	}

	if cacheable {
		s.cache.SetJSON(ctx, statsCacheView, resp, statsCacheTTL)
	}
	return resp, nil
}

// canCacheStats limits caching to the default-shaped query so a custom
// recent-limit never poisons the shared entry.
func (s *paymentService) canCacheStats(recentLimit int) bool {
	def := defaultRecentLimit
	if s.settings != nil {
		def = s.settings.Snapshot().StatsRecentLimit
	}
	return recentLimit == def
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *paymentService) invalidate(ctx context.Context, paths ...string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, paths...)
	}
}

// maybeSendReceipt enqueues a receipt email when the row settles the bill.
// Best-effort: failures never fail the payment.
func (s *paymentService) maybeSendReceipt(ctx context.Context, p *model.Payment, guestEmail *string) {
	if s.dispatcher == nil || guestEmail == nil || *guestEmail == "" {
		return
	}
	if p.Status != model.PaymentStatusCompleted {
		return
	}
	currency := ""
	if s.settings != nil {
		currency = s.settings.Snapshot().Currency + " "
	}
	_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{
		ToEmail: *guestEmail,
		Subject: "Payment received",
		Body: fmt.Sprintf("Payment of %s%s received. Your booking (%s) is fully paid.",
			currency, p.Amount.StringFixed(2), p.BookingID),
	})
}

func toPaymentResponse(p *model.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:                  p.ID.String(),
		BookingID:           p.BookingID.String(),
		Amount:              p.Amount,
		DepositPaid:         p.DepositPaid,
		RoomRate:            p.RoomRate,
		TotalBill:           p.TotalBill,
		DiscountType:        p.DiscountType,
		DiscountAmount:      p.DiscountAmount,
		BalanceRemaining:    p.BalanceRemaining,
		Status:              p.Status,
		PaymentMode:         p.PaymentMode,
		ReceiptNumber:       p.ReceiptNumber,
		MobileMoneyProvider: p.MobileMoneyProvider,
		MobileMoneyNumber:   p.MobileMoneyNumber,
		PaymentDate:         p.PaymentDate.Format(timeLayout),
	}
}

func groupAggMap(rows []repository.GroupAgg) map[string]dto.GroupTotals {
	m := make(map[string]dto.GroupTotals, len(rows))
	for _, r := range rows {
		m[r.Grp] = dto.GroupTotals{Count: r.Count, Total: r.Total}
	}
	return m
}
