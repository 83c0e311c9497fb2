package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecordInitialPaymentRequest opens a booking's ledger: it fixes the billing
// basis (total bill, room rate) every later installment must carry.
type RecordInitialPaymentRequest struct {
	BookingID   string          `json:"booking_id"   validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"       validate:"min=0"`
	PaymentMode string          `json:"payment_mode" validate:"required,oneof=cash card bank_transfer mobile_money"`
	TotalBill   decimal.Decimal `json:"total_bill"   validate:"min=0"`
	RoomRate    decimal.Decimal `json:"room_rate"    validate:"min=0"`
	// DepositPaid is recorded on the row but does not enter the initial
	// balance computation.
	DepositPaid         *decimal.Decimal `json:"deposit_paid"    validate:"omitempty,min=0"`
	DiscountType        *string          `json:"discount_type"   validate:"omitempty,oneof=percentage fixed"`
	DiscountAmount      *decimal.Decimal `json:"discount_amount" validate:"omitempty,min=0"`
	ReceiptNumber       *string          `json:"receipt_number"`
	MobileMoneyProvider *string          `json:"mobile_money_provider"`
	MobileMoneyNumber   *string          `json:"mobile_money_number"`
	// GuestEmail: optional. When present and the payment completes the
	// bill, the receipt worker mails a confirmation.
	GuestEmail *string `json:"guest_email" validate:"omitempty,email"`
}

type RecordInstallmentRequest struct {
	BookingID           string          `json:"booking_id"   validate:"required,uuid"`
	Amount              decimal.Decimal `json:"amount"       validate:"min=0"`
	PaymentMode         string          `json:"payment_mode" validate:"required,oneof=cash card bank_transfer mobile_money"`
	ReceiptNumber       *string         `json:"receipt_number"`
	MobileMoneyProvider *string         `json:"mobile_money_provider"`
	MobileMoneyNumber   *string         `json:"mobile_money_number"`
	GuestEmail          *string         `json:"guest_email" validate:"omitempty,email"`
}

// UpdatePaymentRequest patches a single payment row. Only supplied fields
// change; a supplied status overrides the derived one.
type UpdatePaymentRequest struct {
	Amount              *decimal.Decimal `json:"amount"          validate:"omitempty,min=0"`
	PaymentMode         *string          `json:"payment_mode"    validate:"omitempty,oneof=cash card bank_transfer mobile_money"`
	ReceiptNumber       *string          `json:"receipt_number"`
	DepositPaid         *decimal.Decimal `json:"deposit_paid"    validate:"omitempty,min=0"`
	DiscountType        *string          `json:"discount_type"   validate:"omitempty,oneof=percentage fixed"`
	DiscountAmount      *decimal.Decimal `json:"discount_amount" validate:"omitempty,min=0"`
	MobileMoneyProvider *string          `json:"mobile_money_provider"`
	MobileMoneyNumber   *string          `json:"mobile_money_number"`
	Status              *string          `json:"status" validate:"omitempty,oneof=pending partial completed"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PaymentResponse struct {
	ID                  string           `json:"id"`
	BookingID           string           `json:"booking_id"`
	Amount              decimal.Decimal  `json:"amount"`
	DepositPaid         decimal.Decimal  `json:"deposit_paid"`
	RoomRate            decimal.Decimal  `json:"room_rate"`
	TotalBill           decimal.Decimal  `json:"total_bill"`
	DiscountType        *string          `json:"discount_type,omitempty"`
	DiscountAmount      *decimal.Decimal `json:"discount_amount,omitempty"`
	BalanceRemaining    decimal.Decimal  `json:"balance_remaining"`
	Status              string           `json:"status"`
	PaymentMode         string           `json:"payment_mode"`
	ReceiptNumber       *string          `json:"receipt_number,omitempty"`
	MobileMoneyProvider *string          `json:"mobile_money_provider,omitempty"`
	MobileMoneyNumber   *string          `json:"mobile_money_number,omitempty"`
	PaymentDate         string           `json:"payment_date"`
}

type GroupTotals struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type PaymentStatsResponse struct {
	TotalCount  int64                  `json:"total_count"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	ByStatus    map[string]GroupTotals `json:"by_status"`
	ByMode      map[string]GroupTotals `json:"by_mode"`
	Recent      []PaymentResponse      `json:"recent"`
}
