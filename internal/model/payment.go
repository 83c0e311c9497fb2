package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses derived from balance vs. total bill.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPartial   = "partial"
	PaymentStatusCompleted = "completed"
)

// Payment is one monetary transaction against a booking's total bill.
// A booking may accumulate several rows (installments); every row carries the
// booking's agreed TotalBill and RoomRate, which are fixed once the first row
// exists. BalanceRemaining and Status are derived on every write.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`

	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DepositPaid decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RoomRate    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalBill   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Discounts are recorded for reporting but do not enter the balance
	// formula.
	DiscountType   *string          `gorm:"type:varchar(30)"`
	DiscountAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`

	BalanceRemaining decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status           string          `gorm:"type:varchar(20);not null;default:'pending'"`

	PaymentMode         string  `gorm:"type:varchar(30);not null"`
	ReceiptNumber       *string `gorm:"type:varchar(64)"`
	MobileMoneyProvider *string `gorm:"type:varchar(40)"`
	MobileMoneyNumber   *string `gorm:"type:varchar(30)"`

	PaymentDate time.Time `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Booking *Booking `gorm:"foreignKey:BookingID"`
}
